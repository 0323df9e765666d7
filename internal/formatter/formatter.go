package formatter

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/mcncl/jsonlens/internal/models"
)

// MaxIndent caps the indent width, as common JSON stringifiers do.
const MaxIndent = 10

// Formatter serializes value trees back to JSON text
type Formatter struct{}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Format renders v with indent spaces per nesting level. An indent of zero
// produces compact output.
func (f *Formatter) Format(v models.Value, indent int) string {
	if indent < 0 {
		indent = 0
	}
	if indent > MaxIndent {
		indent = MaxIndent
	}
	var buf bytes.Buffer
	f.write(&buf, v, strings.Repeat(" ", indent), 0)
	return buf.String()
}

// Minify renders v without insignificant whitespace
func (f *Formatter) Minify(v models.Value) string {
	return f.Format(v, 0)
}

func (f *Formatter) write(buf *bytes.Buffer, v models.Value, indent string, level int) {
	switch v.Kind {
	case models.Null:
		buf.WriteString("null")
	case models.Bool:
		buf.WriteString(strconv.FormatBool(v.Bool))
	case models.Number:
		buf.WriteString(FormatNumber(v.Number))
	case models.String:
		writeString(buf, v.Str)
	case models.Array:
		if len(v.Items) == 0 {
			buf.WriteString("[]")
			return
		}
		buf.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				buf.WriteByte(',')
			}
			newline(buf, indent, level+1)
			f.write(buf, item, indent, level+1)
		}
		newline(buf, indent, level)
		buf.WriteByte(']')
	case models.Object:
		if v.Len() == 0 {
			buf.WriteString("{}")
			return
		}
		buf.WriteByte('{')
		first := true
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			if !first {
				buf.WriteByte(',')
			}
			first = false
			newline(buf, indent, level+1)
			writeString(buf, pair.Key)
			buf.WriteByte(':')
			if indent != "" {
				buf.WriteByte(' ')
			}
			f.write(buf, pair.Value, indent, level+1)
		}
		newline(buf, indent, level)
		buf.WriteByte('}')
	}
}

func newline(buf *bytes.Buffer, indent string, level int) {
	if indent == "" {
		return
	}
	buf.WriteByte('\n')
	for i := 0; i < level; i++ {
		buf.WriteString(indent)
	}
}

// writeString appends s as a JSON string literal without HTML escaping.
// U+2028 and U+2029 are written raw, not as \u escapes.
func writeString(buf *bytes.Buffer, s string) {
	var scratch bytes.Buffer
	enc := json.NewEncoder(&scratch)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	out := bytes.TrimSuffix(scratch.Bytes(), []byte("\n"))

	for i := 0; i < len(out); i++ {
		if out[i] != '\\' || i+1 >= len(out) {
			buf.WriteByte(out[i])
			continue
		}
		// Every backslash starts an escape, so step over pairs whole.
		switch string(out[i+1 : min(i+6, len(out))]) {
		case "u2028":
			buf.WriteString("\u2028")
			i += 5
		case "u2029":
			buf.WriteString("\u2029")
			i += 5
		default:
			buf.Write(out[i : i+2])
			i++
		}
	}
}

// FormatNumber renders n in the shortest form that round-trips. Integral
// values carry no fraction; magnitudes >= 1e21 or < 1e-6 use exponent form.
// Non-finite values render as null.
func FormatNumber(n float64) string {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "null"
	}
	if n == 0 {
		return "0"
	}
	abs := math.Abs(n)
	if abs >= 1e21 || abs < 1e-6 {
		s := strconv.FormatFloat(n, 'e', -1, 64)
		// Go pads the exponent to two digits: 1e-07 -> 1e-7.
		mantissa, exp, _ := strings.Cut(s, "e")
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		return mantissa + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}
