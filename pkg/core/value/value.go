package value

import (
	"math"
	"strconv"
	"strings"
)

// Kind is the tag of the active Value variant.
type Kind uint8

const (
	KindInt Kind = iota
	KindFloat
	KindString
	KindList
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "list"
	}
}

// Epsilon is the distance to the nearest integer under which a float
// result is treated as that integer.
const Epsilon = 1e-11

// Value is a runtime datum. The set of variants is closed: Int, Float,
// Str and List.
type Value interface {
	Kind() Kind
	String() string
	sealed()
}

type (
	Int   int64
	Float float64
	Str   string
	List  []Value
)

func (Int) Kind() Kind   { return KindInt }
func (Float) Kind() Kind { return KindFloat }
func (Str) Kind() Kind   { return KindString }
func (List) Kind() Kind  { return KindList }

func (Int) sealed()   {}
func (Float) sealed() {}
func (Str) sealed()   {}
func (List) sealed()  {}

func (i Int) String() string { return strconv.FormatInt(int64(i), 10) }

// String prints up to ten significant digits, like the calculator screen.
func (f Float) String() string { return strconv.FormatFloat(float64(f), 'g', 10, 64) }

func (s Str) String() string { return string(s) }

func (l List) String() string {
	parts := make([]string, len(l))
	for i, el := range l {
		if s, ok := el.(Str); ok {
			parts[i] = `"` + string(s) + `"`
			continue
		}
		parts[i] = el.String()
	}
	return "{" + strings.Join(parts, ",") + "}"
}

// Default is the value an unset variable reads as.
func Default() Value {
	return Int(0)
}

// Bool converts a Go truth value to the calculator's 0/1.
func Bool(b bool) Value {
	if b {
		return Int(1)
	}
	return Int(0)
}

// Normalize turns an arithmetic result into an Int when it lies within
// Epsilon of an integer that int64 can hold.
func Normalize(f float64) Value {
	r := math.Round(f)
	if math.Abs(f-r) < Epsilon && r >= math.MinInt64 && r < math.MaxInt64 {
		return Int(int64(r))
	}
	return Float(f)
}

// IsNumeric reports whether v is an Int or a Float.
func IsNumeric(v Value) bool {
	switch v.(type) {
	case Int, Float:
		return true
	}
	return false
}

// Truthy treats non-zero numbers and non-empty strings and lists as true.
func Truthy(v Value) bool {
	switch v := v.(type) {
	case Int:
		return v != 0
	case Float:
		return v != 0
	case Str:
		return v != ""
	case List:
		return len(v) > 0
	}
	return false
}

// Equal reports whether a and b hold the same variant and payload.
func Equal(a, b Value) bool {
	switch a := a.(type) {
	case Int:
		b, ok := b.(Int)
		return ok && a == b
	case Float:
		b, ok := b.(Float)
		return ok && a == b
	case Str:
		b, ok := b.(Str)
		return ok && a == b
	case List:
		b, ok := b.(List)
		if !ok || len(a) != len(b) {
			return false
		}
		for i := range a {
			if !Equal(a[i], b[i]) {
				return false
			}
		}
		return true
	}
	return false
}
