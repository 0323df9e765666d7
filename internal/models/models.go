package models

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Kind tags the variant held by a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// String returns the JSON type name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a parsed JSON value. Exactly one payload field is meaningful,
// selected by Kind. Object members keep document order. The zero Value is
// JSON null.
type Value struct {
	Kind    Kind
	Bool    bool
	Number  float64
	Str     string
	Items   []Value
	Members *orderedmap.OrderedMap[string, Value]
}

// NullValue returns JSON null.
func NullValue() Value { return Value{Kind: Null} }

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{Kind: Bool, Bool: b} }

// NumberValue wraps a number.
func NumberValue(n float64) Value { return Value{Kind: Number, Number: n} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{Kind: String, Str: s} }

// ArrayValue builds an array from items.
func ArrayValue(items ...Value) Value {
	if items == nil {
		items = []Value{}
	}
	return Value{Kind: Array, Items: items}
}

// Member is a key/value pair used to build objects.
type Member struct {
	Key   string
	Value Value
}

// ObjectValue builds an object from members. A repeated key keeps its
// first position and takes the last value.
func ObjectValue(members ...Member) Value {
	m := orderedmap.New[string, Value]()
	for _, member := range members {
		m.Set(member.Key, member.Value)
	}
	return Value{Kind: Object, Members: m}
}

// TypeName returns "null", "boolean", "number", "string", "array" or "object".
func (v Value) TypeName() string {
	return v.Kind.String()
}

// Len returns the number of children of a container, zero otherwise.
func (v Value) Len() int {
	switch v.Kind {
	case Array:
		return len(v.Items)
	case Object:
		if v.Members == nil {
			return 0
		}
		return v.Members.Len()
	default:
		return 0
	}
}

// Keys returns the object's member keys in document order.
func (v Value) Keys() []string {
	if v.Kind != Object || v.Members == nil {
		return nil
	}
	keys := make([]string, 0, v.Members.Len())
	for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Get looks up an object member.
func (v Value) Get(key string) (Value, bool) {
	if v.Kind != Object || v.Members == nil {
		return Value{}, false
	}
	return v.Members.Get(key)
}

// Equal reports whether two trees hold the same JSON value. Object member
// order is not significant.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Null:
		return true
	case Bool:
		return v.Bool == other.Bool
	case Number:
		return v.Number == other.Number
	case String:
		return v.Str == other.Str
	case Array:
		if len(v.Items) != len(other.Items) {
			return false
		}
		for i := range v.Items {
			if !v.Items[i].Equal(other.Items[i]) {
				return false
			}
		}
		return true
	case Object:
		if v.Len() != other.Len() {
			return false
		}
		if v.Members == nil {
			return true
		}
		for pair := v.Members.Oldest(); pair != nil; pair = pair.Next() {
			o, ok := other.Get(pair.Key)
			if !ok || !pair.Value.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// ValidationResult is the outcome of validating a JSON text.
type ValidationResult struct {
	IsValid   bool     `json:"isValid"`
	Errors    []string `json:"errors"`
	Formatted *string  `json:"formatted,omitempty"`
	Size      int      `json:"size"`
	Depth     int      `json:"depth"`
}

// Analysis summarizes the keys, types and array lengths of a document,
// keyed by dotted/bracketed path.
type Analysis struct {
	Keys         []string                               `json:"keys"`
	Types        *orderedmap.OrderedMap[string, string] `json:"types"`
	ArrayLengths *orderedmap.OrderedMap[string, int]    `json:"arrayLengths"`
	Depth        int                                    `json:"depth"`
	Size         int                                    `json:"size"`
}

// NewAnalysis returns an empty Analysis ready to be filled.
func NewAnalysis() Analysis {
	return Analysis{
		Keys:         []string{},
		Types:        orderedmap.New[string, string](),
		ArrayLengths: orderedmap.New[string, int](),
	}
}
