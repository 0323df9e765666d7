package models

import "fmt"

// IssueKind names a structural finding.
type IssueKind string

const (
	IssueArrayTooLarge IssueKind = "array too large"
	IssueTooManyKeys   IssueKind = "too many keys"
	IssueKeyTooLong    IssueKind = "key name too long"
	IssueKeyWhitespace IssueKind = "key has extraneous whitespace"
	IssueStringTooLong IssueKind = "string too long"
)

// Issue is a non-fatal structural finding at a labelled location.
type Issue struct {
	Kind  IssueKind `json:"kind"`
	Path  string    `json:"path"`
	Count int       `json:"count,omitempty"`
	Limit int       `json:"limit,omitempty"`
}

// String renders the finding the way it appears in ValidationResult.Errors.
func (i Issue) String() string {
	switch i.Kind {
	case IssueArrayTooLarge:
		return fmt.Sprintf("%s: array too large (%d elements, max %d)", i.Path, i.Count, i.Limit)
	case IssueTooManyKeys:
		return fmt.Sprintf("%s: too many keys (%d keys, max %d)", i.Path, i.Count, i.Limit)
	case IssueKeyTooLong:
		return fmt.Sprintf("%s: key name too long (%d characters, max %d)", i.Path, i.Count, i.Limit)
	case IssueKeyWhitespace:
		return fmt.Sprintf("%s: key has extraneous whitespace", i.Path)
	case IssueStringTooLong:
		return fmt.Sprintf("%s: string too long (%d characters, max %d)", i.Path, i.Count, i.Limit)
	default:
		return fmt.Sprintf("%s: %s", i.Path, i.Kind)
	}
}
