package value

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrDataType     = errors.New("ERR:DATA TYPE")
	ErrDimMismatch  = errors.New("ERR:DIM MISMATCH")
	ErrDivideByZero = errors.New("ERR:DIVIDE BY 0")
	ErrDomain       = errors.New("ERR:DOMAIN")
	ErrNonReal      = errors.New("ERR:NONREAL ANS")
	ErrOverflow     = errors.New("ERR:OVERFLOW")
)

// CompareOp selects a comparison.
type CompareOp uint8

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpGreater
	OpGreaterEq
	OpLess
	OpLessEq
)

var compareSymbols = [...]string{"=", "!=", ">", ">=", "<", "<="}

func (op CompareOp) String() string {
	if int(op) < len(compareSymbols) {
		return compareSymbols[op]
	}
	return "?"
}

// ScalarFunc combines two non-list values.
type ScalarFunc func(a, b Value) (Value, error)

// Broadcast lifts a scalar operation over lists: a list and a scalar combine
// elementwise, two lists zip and must have the same length. Nested lists
// recurse.
func Broadcast(a, b Value, scalar ScalarFunc) (Value, error) {
	la, aList := a.(List)
	lb, bList := b.(List)

	switch {
	case aList && bList:
		if len(la) != len(lb) {
			return nil, fmt.Errorf("%w: %d and %d elements", ErrDimMismatch, len(la), len(lb))
		}
		out := make(List, len(la))
		for i := range la {
			v, err := Broadcast(la[i], lb[i], scalar)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case aList:
		out := make(List, len(la))
		for i, el := range la {
			v, err := Broadcast(el, b, scalar)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case bList:
		out := make(List, len(lb))
		for i, el := range lb {
			v, err := Broadcast(a, el, scalar)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}
	return scalar(a, b)
}

func Add(a, b Value) (Value, error) { return Broadcast(a, b, addScalar) }
func Sub(a, b Value) (Value, error) { return Broadcast(a, b, subScalar) }
func Mul(a, b Value) (Value, error) { return Broadcast(a, b, mulScalar) }
func Div(a, b Value) (Value, error) { return Broadcast(a, b, divScalar) }
func Pow(a, b Value) (Value, error) { return Broadcast(a, b, powScalar) }

// Compare yields Int 1 or 0, elementwise over lists.
func Compare(op CompareOp, a, b Value) (Value, error) {
	return Broadcast(a, b, func(a, b Value) (Value, error) {
		return compareScalar(op, a, b)
	})
}

// Neg negates numbers, elementwise over lists. Strings cannot be negated.
func Neg(v Value) (Value, error) {
	switch v := v.(type) {
	case Int:
		if v == math.MinInt64 {
			return Normalize(-float64(v)), nil
		}
		return -v, nil
	case Float:
		return -v, nil
	case Str:
		return nil, fmt.Errorf("%w: attempted to negate a string", ErrDataType)
	case List:
		out := make(List, len(v))
		for i, el := range v {
			n, err := Neg(el)
			if err != nil {
				return nil, err
			}
			out[i] = n
		}
		return out, nil
	}
	return nil, ErrDataType
}

func And(a, b Value) Value { return Bool(Truthy(a) && Truthy(b)) }
func Or(a, b Value) Value  { return Bool(Truthy(a) || Truthy(b)) }
func Xor(a, b Value) Value { return Bool(Truthy(a) != Truthy(b)) }
func Not(v Value) Value    { return Bool(!Truthy(v)) }

// Number widens a numeric scalar to float64.
func Number(v Value) (float64, error) {
	switch v := v.(type) {
	case Int:
		return float64(v), nil
	case Float:
		return float64(v), nil
	}
	return 0, fmt.Errorf("%w: expected a number, got %s", ErrDataType, v.Kind())
}

func addScalar(a, b Value) (Value, error) {
	if sa, ok := a.(Str); ok {
		if sb, ok := b.(Str); ok {
			return sa + sb, nil
		}
	}
	return arith(a, b, "+", func(x, y int64) (int64, bool) {
		r := x + y
		return r, (x >= 0) != (y >= 0) || (r >= 0) == (x >= 0)
	}, func(x, y float64) float64 { return x + y })
}

func subScalar(a, b Value) (Value, error) {
	return arith(a, b, "-", func(x, y int64) (int64, bool) {
		r := x - y
		return r, (x >= 0) == (y >= 0) || (r >= 0) == (x >= 0)
	}, func(x, y float64) float64 { return x - y })
}

func mulScalar(a, b Value) (Value, error) {
	return arith(a, b, "*", func(x, y int64) (int64, bool) {
		if x == 0 || y == 0 {
			return 0, true
		}
		r := x * y
		if r/y != x || (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
			return 0, false
		}
		return r, true
	}, func(x, y float64) float64 { return x * y })
}

func divScalar(a, b Value) (Value, error) {
	x, y, err := operands(a, b, "/")
	if err != nil {
		return nil, err
	}
	if y == 0 {
		return nil, ErrDivideByZero
	}
	return Checked(x / y)
}

func powScalar(a, b Value) (Value, error) {
	x, y, err := operands(a, b, "^")
	if err != nil {
		return nil, err
	}
	if x == 0 && y == 0 {
		return nil, fmt.Errorf("%w: 0^0", ErrDomain)
	}
	if x == 0 && y < 0 {
		return nil, ErrDivideByZero
	}
	if base, ok := a.(Int); ok {
		if exp, ok := b.(Int); ok && exp >= 0 {
			if r, ok := intPow(int64(base), int64(exp)); ok {
				return Int(r), nil
			}
		}
	}
	return Checked(math.Pow(x, y))
}

// intPow is exact exponentiation by squaring; false on overflow.
func intPow(base, exp int64) (int64, bool) {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			r := result * base
			if base != 0 && r/base != result {
				return 0, false
			}
			result = r
		}
		exp >>= 1
		if exp > 0 {
			sq := base * base
			if base != 0 && sq/base != base {
				return 0, false
			}
			base = sq
		}
	}
	return result, true
}

func compareScalar(op CompareOp, a, b Value) (Value, error) {
	sa, aStr := a.(Str)
	sb, bStr := b.(Str)
	if aStr || bStr {
		if !aStr || !bStr {
			return nil, fmt.Errorf("%w: cannot compare %s with %s", ErrDataType, a.Kind(), b.Kind())
		}
		switch op {
		case OpEqual:
			return Bool(sa == sb), nil
		case OpNotEqual:
			return Bool(sa != sb), nil
		}
		return nil, fmt.Errorf("%w: strings only support = and !=", ErrDataType)
	}

	if ia, ok := a.(Int); ok {
		if ib, ok := b.(Int); ok {
			return Bool(compareOrdered(op, int64(ia), int64(ib))), nil
		}
	}
	x, y, err := operands(a, b, op.String())
	if err != nil {
		return nil, err
	}
	return Bool(compareOrdered(op, x, y)), nil
}

func compareOrdered[T int64 | float64](op CompareOp, x, y T) bool {
	switch op {
	case OpEqual:
		return x == y
	case OpNotEqual:
		return x != y
	case OpGreater:
		return x > y
	case OpGreaterEq:
		return x >= y
	case OpLess:
		return x < y
	default:
		return x <= y
	}
}

func arith(a, b Value, op string, ints func(x, y int64) (int64, bool), floats func(x, y float64) float64) (Value, error) {
	if ia, ok := a.(Int); ok {
		if ib, ok := b.(Int); ok {
			if r, ok := ints(int64(ia), int64(ib)); ok {
				return Int(r), nil
			}
		}
	}
	x, y, err := operands(a, b, op)
	if err != nil {
		return nil, err
	}
	return Checked(floats(x, y))
}

func operands(a, b Value, op string) (float64, float64, error) {
	x, errA := Number(a)
	y, errB := Number(b)
	if errA != nil || errB != nil {
		return 0, 0, fmt.Errorf("%w: cannot apply %s to %s and %s", ErrDataType, op, a.Kind(), b.Kind())
	}
	return x, y, nil
}

// Checked rejects non-real and infinite results and normalizes the rest.
func Checked(f float64) (Value, error) {
	switch {
	case math.IsNaN(f):
		return nil, ErrNonReal
	case math.IsInf(f, 0):
		return nil, ErrOverflow
	}
	return Normalize(f), nil
}
