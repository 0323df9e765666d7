package cli

import (
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mcncl/jsonlens/internal/errors"
)

// readInteractiveInput shows a text area for pasting JSON.
func readInteractiveInput() (string, error) {
	var text string
	if err := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title("jsonlens").
				Description("Paste your JSON and press enter. Use alt+enter for a new line.").
				CharLimit(0).
				Value(&text).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.ErrEmptyInput
					}
					return nil
				}),
		),
	).Run(); err != nil {
		return "", errors.NewInputError("interactive input aborted", err)
	}
	return text, nil
}
