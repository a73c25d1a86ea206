package document

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	// KindNull represents the JSON null value.
	KindNull Kind = iota

	// KindBool represents a JSON boolean.
	KindBool

	// KindNumber represents a JSON number, stored as its decimal literal.
	KindNumber

	// KindString represents a JSON string.
	KindString

	// KindObject represents a JSON object with insertion-ordered members.
	KindObject

	// KindArray represents a JSON array.
	KindArray
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Member is a single key/value pair of an object. Member order is
// significant: it reflects the order in which keys were inserted, which for
// generated schemas mirrors field declaration order.
type Member struct {
	Key   string
	Value *Value
}

// Value is a JSON document node. Exactly one payload field is meaningful,
// selected by Kind. Objects keep their members in insertion order, unlike a
// Go map, which is what makes field-order-sensitive encoding possible.
type Value struct {
	Kind Kind

	// Str holds the payload for KindString.
	Str string

	// Num holds the decimal literal for KindNumber (e.g. "12", "-0.5").
	Num string

	// Bool holds the payload for KindBool.
	Bool bool

	// Members holds the payload for KindObject, in insertion order.
	Members []Member

	// Elems holds the payload for KindArray.
	Elems []*Value
}

// Null returns a null value.
func Null() *Value {
	return &Value{Kind: KindNull}
}

// Bool returns a boolean value.
func Bool(b bool) *Value {
	return &Value{Kind: KindBool, Bool: b}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{Kind: KindString, Str: s}
}

// Int returns a number value holding an integer.
func Int(n int64) *Value {
	return &Value{Kind: KindNumber, Num: strconv.FormatInt(n, 10)}
}

// Number returns a number value from a decimal literal. The literal is
// emitted verbatim, so callers must pass valid JSON number syntax.
func Number(lit string) *Value {
	return &Value{Kind: KindNumber, Num: lit}
}

// Float returns a number value from f. It fails for NaN and infinities,
// which have no JSON representation.
func Float(f float64) (*Value, error) {
	if isNonFinite(f) {
		return nil, fmt.Errorf("document: float %v is not representable in JSON", f)
	}
	return &Value{Kind: KindNumber, Num: strconv.FormatFloat(f, 'g', -1, 64)}, nil
}

// Object returns an object value with the given members.
func Object(members ...Member) *Value {
	return &Value{Kind: KindObject, Members: members}
}

// Array returns an array value with the given elements.
func Array(elems ...*Value) *Value {
	return &Value{Kind: KindArray, Elems: elems}
}

// Set appends a member, or replaces the value in place when the key is
// already present. Insertion order of first appearance is preserved.
func (v *Value) Set(key string, val *Value) *Value {
	for i := range v.Members {
		if v.Members[i].Key == key {
			v.Members[i].Value = val
			return v
		}
	}
	v.Members = append(v.Members, Member{Key: key, Value: val})
	return v
}

// Member returns the value stored under key, if any.
func (v *Value) Member(key string) (*Value, bool) {
	for i := range v.Members {
		if v.Members[i].Key == key {
			return v.Members[i].Value, true
		}
	}
	return nil, false
}

// Append adds elements to an array value.
func (v *Value) Append(elems ...*Value) *Value {
	v.Elems = append(v.Elems, elems...)
	return v
}

// Len returns the number of members or elements, and 0 for scalars.
func (v *Value) Len() int {
	switch v.Kind {
	case KindObject:
		return len(v.Members)
	case KindArray:
		return len(v.Elems)
	default:
		return 0
	}
}

// String renders the value as compact JSON in insertion order.
func (v *Value) String() string {
	return string(Marshal(v, false))
}

// FromAny converts an arbitrary JSON-serializable Go value into a document
// tree. It round-trips through encoding/json, so exactly the values the
// standard library can encode are accepted; map keys come out sorted, struct
// fields in declaration order. Unsupported values (channels, functions,
// non-finite floats, cyclic data) yield an error.
func FromAny(val any) (*Value, error) {
	if val == nil {
		return Null(), nil
	}
	data, err := json.Marshal(val)
	if err != nil {
		return nil, fmt.Errorf("document: value of type %T is not JSON-serializable: %w", val, err)
	}
	return Parse(data)
}

func isNonFinite(f float64) bool {
	return math.IsNaN(f) || math.IsInf(f, 0)
}
