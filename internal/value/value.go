// Package value defines the closed set of values a quill variable can hold.
package value

import (
	"fmt"
	"strconv"
)

// Kind identifies the variant stored in a Value.
type Kind uint8

const (
	// Invalid is the zero Kind; no well-formed binding holds it.
	Invalid Kind = iota
	// Text holds a string.
	Text
	// Integer holds a signed 32-bit integer.
	Integer
	// Decimal holds a 32-bit float.
	Decimal
	// Boolean holds true or false.
	Boolean
)

// String returns a human-readable name for the value kind.
func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case Text:
		return "text"
	case Integer:
		return "int"
	case Decimal:
		return "decimal"
	case Boolean:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Value is an immutable variable value. Copies are independent.
type Value struct {
	Kind Kind
	Str  string  // Text
	Int  int32   // Integer
	Dec  float32 // Decimal
	Bool bool    // Boolean
}

// MakeText creates a text value.
func MakeText(s string) Value { return Value{Kind: Text, Str: s} }

// MakeInt creates an integer value.
func MakeInt(n int32) Value { return Value{Kind: Integer, Int: n} }

// MakeDecimal creates a decimal value.
func MakeDecimal(f float32) Value { return Value{Kind: Decimal, Dec: f} }

// MakeBool creates a boolean value.
func MakeBool(b bool) Value { return Value{Kind: Boolean, Bool: b} }

// IsZero reports whether v is the zero (invalid) value.
func (v Value) IsZero() bool { return v.Kind == Invalid }

// Equal reports whether both values have the same kind and payload.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind {
		return false
	}
	switch v.Kind {
	case Text:
		return v.Str == other.Str
	case Integer:
		return v.Int == other.Int
	case Decimal:
		return v.Dec == other.Dec
	case Boolean:
		return v.Bool == other.Bool
	default:
		return true
	}
}

// String renders the value the way it would be written in source.
func (v Value) String() string {
	switch v.Kind {
	case Text:
		return strconv.Quote(v.Str)
	case Integer:
		return strconv.FormatInt(int64(v.Int), 10)
	case Decimal:
		return strconv.FormatFloat(float64(v.Dec), 'g', -1, 32)
	case Boolean:
		return strconv.FormatBool(v.Bool)
	default:
		return "<invalid>"
	}
}

// Raw returns the payload as a plain Go value (string, int32, float32 or bool),
// or nil for the invalid value.
func (v Value) Raw() any {
	switch v.Kind {
	case Text:
		return v.Str
	case Integer:
		return v.Int
	case Decimal:
		return v.Dec
	case Boolean:
		return v.Bool
	default:
		return nil
	}
}
