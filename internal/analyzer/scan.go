package analyzer

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mcncl/jsonlens/internal/errors"
	"github.com/mcncl/jsonlens/internal/models"
)

// Scan walks v and returns every structural issue found, labelling
// locations from label: array elements as label[i], members as label.key.
// Findings never stop the walk.
func (a *Analyzer) Scan(v models.Value, label string) ([]models.Issue, error) {
	issues := []models.Issue{}
	if err := a.scan(v, label, 0, &issues); err != nil {
		return nil, err
	}
	return issues, nil
}

func (a *Analyzer) scan(v models.Value, label string, level int, issues *[]models.Issue) error {
	limits := a.config.Limits

	switch v.Kind {
	case models.Array:
		if n := len(v.Items); exceeds(n, limits.MaxArrayLength) {
			*issues = append(*issues, models.Issue{Kind: models.IssueArrayTooLarge, Path: label, Count: n, Limit: limits.MaxArrayLength})
		}
		for i, item := range v.Items {
			if err := a.checkDepth(level + 1); err != nil {
				return err
			}
			if err := a.scan(item, label+"["+strconv.Itoa(i)+"]", level+1, issues); err != nil {
				return err
			}
		}

	case models.Object:
		if n := v.Len(); exceeds(n, limits.MaxObjectKeys) {
			*issues = append(*issues, models.Issue{Kind: models.IssueTooManyKeys, Path: label, Count: n, Limit: limits.MaxObjectKeys})
		}
		if v.Members == nil {
			return nil
		}
		// All key names are checked before any member is descended into.
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			keyLabel := label + "." + pair.Key
			if n := utf8.RuneCountInString(pair.Key); exceeds(n, limits.MaxKeyLength) {
				*issues = append(*issues, models.Issue{Kind: models.IssueKeyTooLong, Path: keyLabel, Count: n, Limit: limits.MaxKeyLength})
			}
			if strings.TrimFunc(pair.Key, isTrimSpace) != pair.Key {
				*issues = append(*issues, models.Issue{Kind: models.IssueKeyWhitespace, Path: keyLabel})
			}
		}
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			if err := a.checkDepth(level + 1); err != nil {
				return err
			}
			if err := a.scan(pair.Value, label+"."+pair.Key, level+1, issues); err != nil {
				return err
			}
		}

	case models.String:
		if n := utf8.RuneCountInString(v.Str); exceeds(n, limits.MaxStringLength) {
			*issues = append(*issues, models.Issue{Kind: models.IssueStringTooLong, Path: label, Count: n, Limit: limits.MaxStringLength})
		}

	case models.Null, models.Bool, models.Number:
		// nothing to check
	}
	return nil
}

// isTrimSpace matches ECMAScript whitespace and line terminators. Unlike
// unicode.IsSpace it includes U+FEFF and excludes U+0085.
func isTrimSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', '\u2028', '\u2029', '\ufeff':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}

// exceeds reports whether n is over limit; a zero limit disables the check.
func exceeds(n, limit int) bool {
	return limit > 0 && n > limit
}

// checkDepth fails once a traversal descends past limits.max_depth.
func (a *Analyzer) checkDepth(level int) error {
	if limit := a.config.Limits.MaxDepth; limit > 0 && level > limit {
		return errors.NewDepthError(level, limit)
	}
	return nil
}
