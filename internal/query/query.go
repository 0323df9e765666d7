// Package query evaluates gjson path expressions against JSON text.
//
// It complements the analyzer's strict dotted-path lookup with gjson's
// richer grammar: numeric segments index arrays ("items.0"), "#" counts or
// maps over arrays ("items.#", "items.#.name"), and "*"/"?" wildcards match
// keys.
package query

import (
	"github.com/tidwall/gjson"
)

// Result is the outcome of a query
type Result struct {
	Found bool   `json:"found"`
	Raw   string `json:"raw,omitempty"`
	Type  string `json:"type,omitempty"`
}

// Run evaluates expr against text. The caller is expected to have checked
// that text is valid JSON; gjson itself is lenient about malformed input.
func Run(text, expr string) Result {
	res := gjson.Get(text, expr)
	if !res.Exists() {
		return Result{}
	}
	return Result{
		Found: true,
		Raw:   res.Raw,
		Type:  typeName(res),
	}
}

// typeName maps gjson result types to JSON type names
func typeName(res gjson.Result) string {
	switch res.Type {
	case gjson.Null:
		return "null"
	case gjson.False, gjson.True:
		return "boolean"
	case gjson.Number:
		return "number"
	case gjson.String:
		return "string"
	case gjson.JSON:
		if res.IsArray() {
			return "array"
		}
		return "object"
	default:
		return "unknown"
	}
}
