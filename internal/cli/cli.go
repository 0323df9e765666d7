// Package cli defines the jsonlens commands and the input/output plumbing
// they share. Each command is a kong node with a Run method bound to a
// *Context.
package cli

import (
	"bytes"
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/mcncl/jsonlens/internal/analyzer"
	"github.com/mcncl/jsonlens/internal/errors" // Custom errors package
	"github.com/mcncl/jsonlens/internal/parser"
)

// Undefined is printed when a path or query matches nothing.
const Undefined = "undefined"

// ErrInvalidDocument is returned by validate when the document has syntax
// errors or structural findings. The result has already been printed.
var ErrInvalidDocument = stderrors.New("document is invalid")

// Globals are the flags shared by every command
type Globals struct {
	Config      string           `help:"Path to a jsonlens config file. Defaults to the nearest .jsonlens.yml." short:"c" type:"path"`
	Input       string           `help:"Path to input JSON file. If not specified, reads from the argument or stdin." short:"i" type:"path"`
	Output      string           `help:"Path to output file. If not specified, writes to stdout." short:"o" type:"path"`
	Debug       bool             `help:"Enable debug logging." short:"d"`
	Interactive bool             `help:"Prompt for JSON when nothing is piped to stdin." short:"I"`
	Version     kong.VersionFlag `help:"Show version information."`
}

// CLI defines the command-line interface
type CLI struct {
	Globals

	Validate ValidateCmd `cmd:"" help:"Check syntax and structural limits, printing a JSON report."`
	Format   FormatCmd   `cmd:"" help:"Pretty-print JSON."`
	Minify   MinifyCmd   `cmd:"" help:"Strip insignificant whitespace from JSON."`
	Analyze  AnalyzeCmd  `cmd:"" help:"List key paths, types and array lengths."`
	Schema   SchemaCmd   `cmd:"" help:"Infer a JSON Schema from a sample document."`
	Path     PathCmd     `cmd:"" help:"Look up a value by dotted path, e.g. user.tags.[0]."`
	Query    QueryCmd    `cmd:"" help:"Evaluate a gjson query, e.g. items.#.name."`
}

// Context holds the runtime context handed to every command
type Context struct {
	Input       string
	Output      string
	Interactive bool

	Analyzer *analyzer.Analyzer
	Logger   *slog.Logger

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Prompt collects JSON interactively; nil uses the terminal form.
	Prompt func() (string, error)
}

// ValidateCmd reports syntax and structural problems
type ValidateCmd struct {
	JSON string `arg:"" optional:"" help:"JSON text."`
}

// Run prints the validation result and fails with ErrInvalidDocument when
// the document is not valid.
func (c *ValidateCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}

	result := ctx.Analyzer.Validate(text)
	out, err := encodeJSON(result)
	if err != nil {
		return err
	}
	if err := ctx.WriteOutput(out); err != nil {
		return err
	}
	if !result.IsValid {
		return ErrInvalidDocument
	}
	return nil
}

// FormatCmd pretty-prints a document
type FormatCmd struct {
	JSON   string `arg:"" optional:"" help:"JSON text."`
	Indent string `arg:"" optional:"" help:"Spaces per level (0-10). Defaults to format.indent."`
}

// Run formats the document. A lone numeric argument is the indent when the
// document comes from --input or piped stdin.
func (c *FormatCmd) Run(ctx *Context) error {
	jsonArg, indentArg := c.JSON, c.Indent
	if indentArg == "" && jsonArg != "" && ctx.hasOtherInput() {
		if _, err := strconv.Atoi(jsonArg); err == nil {
			jsonArg, indentArg = "", jsonArg
		}
	}

	indent := ctx.Analyzer.Config().Format.Indent
	if indentArg != "" {
		n, err := strconv.Atoi(indentArg)
		if err != nil {
			return errors.NewInputError(fmt.Sprintf("indent must be a number, got '%s'", indentArg), err)
		}
		indent = n
	}

	text, err := ctx.ReadInput(jsonArg)
	if err != nil {
		return err
	}
	out, err := ctx.Analyzer.Format(text, indent)
	if err != nil {
		return err
	}
	return ctx.WriteOutput(out)
}

// MinifyCmd compacts a document
type MinifyCmd struct {
	JSON string `arg:"" optional:"" help:"JSON text."`
}

func (c *MinifyCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}
	out, err := ctx.Analyzer.Minify(text)
	if err != nil {
		return err
	}
	return ctx.WriteOutput(out)
}

// AnalyzeCmd summarizes key paths, types and array lengths
type AnalyzeCmd struct {
	JSON string `arg:"" optional:"" help:"JSON text."`
}

func (c *AnalyzeCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}
	analysis, err := ctx.Analyzer.Analyze(text)
	if err != nil {
		return err
	}
	out, err := encodeJSON(analysis)
	if err != nil {
		return err
	}
	return ctx.WriteOutput(out)
}

// SchemaCmd infers a JSON Schema
type SchemaCmd struct {
	JSON string `arg:"" optional:"" help:"JSON text."`
}

func (c *SchemaCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}
	s, err := ctx.Analyzer.GenerateSchema(text)
	if err != nil {
		return err
	}
	out, err := encodeJSON(s)
	if err != nil {
		return err
	}
	return ctx.WriteOutput(out)
}

// PathCmd resolves a dotted path
type PathCmd struct {
	Path string `arg:"" help:"Dot-separated path; array indexes are their own segment, e.g. items.[0].name."`
	JSON string `arg:"" optional:"" help:"JSON text."`
}

func (c *PathCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}
	value, found, err := ctx.Analyzer.FindByPath(text, c.Path)
	if err != nil {
		return err
	}
	if !found {
		return ctx.WriteOutput(Undefined)
	}
	return ctx.WriteOutput(ctx.Analyzer.Render(value))
}

// QueryCmd evaluates a gjson path expression
type QueryCmd struct {
	Expr string `arg:"" help:"gjson path expression."`
	JSON string `arg:"" optional:"" help:"JSON text."`
}

func (c *QueryCmd) Run(ctx *Context) error {
	text, err := ctx.ReadInput(c.JSON)
	if err != nil {
		return err
	}
	res, err := ctx.Analyzer.Query(text, c.Expr)
	if err != nil {
		return err
	}
	if !res.Found {
		return ctx.WriteOutput(Undefined)
	}
	ctx.Logger.Debug("query matched", "type", res.Type)
	return ctx.WriteOutput(res.Raw)
}

// ReadInput returns the JSON text for a command: the positional argument,
// then --input, then piped stdin, then the interactive prompt.
func (ctx *Context) ReadInput(arg string) (string, error) {
	if arg != "" {
		return arg, nil
	}
	if ctx.Input != "" {
		ctx.Logger.Debug("reading input file", "path", ctx.Input)
		return parser.ReadFile(ctx.Input)
	}

	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		if err != nil {
			return "", errors.NewInputError("failed to access stdin", err)
		}
		if info.Mode()&os.ModeCharDevice != 0 {
			// Terminal is interactive (not piped)
			if ctx.Interactive {
				return ctx.prompt()
			}
			return "", errors.NewInputError("no input provided", errors.ErrNoInput)
		}
	}
	if ctx.Stdin == nil {
		return "", errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	data, err := io.ReadAll(ctx.Stdin)
	if err != nil {
		return "", errors.NewInputError("failed to read from stdin", err)
	}
	if strings.TrimSpace(string(data)) == "" {
		return "", errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}
	return string(data), nil
}

// hasOtherInput reports whether a document is available without a
// positional argument: from --input, or from stdin that is not a terminal.
func (ctx *Context) hasOtherInput() bool {
	if ctx.Input != "" {
		return true
	}
	if ctx.Stdin == nil {
		return false
	}
	if f, ok := ctx.Stdin.(*os.File); ok {
		info, err := f.Stat()
		return err == nil && info.Mode()&os.ModeCharDevice == 0
	}
	return true
}

func (ctx *Context) prompt() (string, error) {
	if ctx.Prompt != nil {
		return ctx.Prompt()
	}
	return readInteractiveInput()
}

// WriteOutput writes s to --output, or to stdout followed by a newline
func (ctx *Context) WriteOutput(s string) error {
	if ctx.Output != "" {
		if err := os.WriteFile(ctx.Output, []byte(s+"\n"), 0644); err != nil {
			return errors.NewOutputError(fmt.Sprintf("failed to write to file '%s'", ctx.Output), err)
		}
		fmt.Fprintf(ctx.Stderr, "Output written to %s\n", ctx.Output)
		return nil
	}

	if _, err := fmt.Fprintln(ctx.Stdout, s); err != nil {
		return errors.NewOutputError("failed to write to stdout", err)
	}
	return nil
}

// encodeJSON renders a result record with two-space indentation and
// without HTML escaping.
func encodeJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", errors.NewOutputError("failed to encode result", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
