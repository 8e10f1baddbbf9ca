package stdlib

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/agenthands/tib/pkg/core/value"
)

var (
	ErrArgument   = errors.New("ERR:ARGUMENT")
	ErrInvalidDim = errors.New("ERR:INVALID DIM")
)

// Func is the Go side of a calculator function.
type Func func(args []value.Value) (value.Value, error)

// Builtin is a registered function with its accepted argument counts.
type Builtin struct {
	Name    string
	MinArgs int
	MaxArgs int
	Fn      Func
}

// Call checks the argument count and runs the function.
func (b Builtin) Call(args []value.Value) (value.Value, error) {
	if len(args) < b.MinArgs || len(args) > b.MaxArgs {
		if b.MinArgs == b.MaxArgs {
			return nil, fmt.Errorf("%w: %s takes %d argument(s), got %d", ErrArgument, b.Name, b.MinArgs, len(args))
		}
		return nil, fmt.Errorf("%w: %s takes %d to %d arguments, got %d", ErrArgument, b.Name, b.MinArgs, b.MaxArgs, len(args))
	}
	return b.Fn(args)
}

var registry = map[string]Builtin{}

func register(name string, minArgs, maxArgs int, fn Func) {
	registry[name] = Builtin{Name: name, MinArgs: minArgs, MaxArgs: maxArgs, Fn: fn}
}

func init() {
	register("abs(", 1, 1, numeric(func(x float64) (float64, error) { return math.Abs(x), nil }))
	register("int(", 1, 1, numeric(func(x float64) (float64, error) { return math.Floor(x), nil }))
	register("iPart(", 1, 1, numeric(func(x float64) (float64, error) { return math.Trunc(x), nil }))
	register("fPart(", 1, 1, numeric(func(x float64) (float64, error) { return x - math.Trunc(x), nil }))
	register("sqrt(", 1, 1, numeric(sqrt))
	register("√(", 1, 1, numeric(sqrt))
	register("round(", 1, 2, Round)
	register("min(", 1, 2, extreme(value.OpLess))
	register("max(", 1, 2, extreme(value.OpGreater))
	register("dim(", 1, 1, Dim)
	register("sum(", 1, 1, Sum)
	register("prod(", 1, 1, Prod)
	register("mean(", 1, 1, Mean)
	register("length(", 1, 1, Length)
	register("sub(", 3, 3, Sub)
	register("inString(", 2, 3, InString)
	register("remainder(", 2, 2, integers(remainder))
	register("gcd(", 2, 2, integers(gcd))
	register("lcm(", 2, 2, integers(lcm))
}

// Lookup finds a function by its token text, opening paren included.
func Lookup(name string) (Builtin, bool) {
	b, ok := registry[name]
	return b, ok
}

// numeric lifts a float function over numbers and lists of numbers.
func numeric(f func(float64) (float64, error)) Func {
	var apply func(v value.Value) (value.Value, error)
	apply = func(v value.Value) (value.Value, error) {
		if l, ok := v.(value.List); ok {
			out := make(value.List, len(l))
			for i, el := range l {
				r, err := apply(el)
				if err != nil {
					return nil, err
				}
				out[i] = r
			}
			return out, nil
		}
		x, err := value.Number(v)
		if err != nil {
			return nil, err
		}
		r, err := f(x)
		if err != nil {
			return nil, err
		}
		return value.Checked(r)
	}
	return func(args []value.Value) (value.Value, error) { return apply(args[0]) }
}

func sqrt(x float64) (float64, error) {
	if x < 0 {
		return 0, value.ErrNonReal
	}
	return math.Sqrt(x), nil
}

// Round rounds to the given number of decimals, nine by default.
func Round(args []value.Value) (value.Value, error) {
	digits := 9.0
	if len(args) == 2 {
		d, err := value.Number(args[1])
		if err != nil {
			return nil, err
		}
		if d < 0 || d > 9 || d != math.Trunc(d) {
			return nil, fmt.Errorf("%w: round( takes 0 to 9 decimals", value.ErrDomain)
		}
		digits = d
	}
	scale := math.Pow(10, digits)
	return numeric(func(x float64) (float64, error) {
		scaled := x * scale
		if math.IsInf(scaled, 0) {
			// Too large to carry any decimals.
			return x, nil
		}
		return math.Round(scaled) / scale, nil
	})(args[:1])
}

// extreme builds min( and max(: one list argument reduces it, two
// arguments compare elementwise.
func extreme(op value.CompareOp) Func {
	pick := func(a, b value.Value) (value.Value, error) {
		keepA, err := value.Compare(op, a, b)
		if err != nil {
			return nil, err
		}
		if value.Truthy(keepA) {
			return a, nil
		}
		return b, nil
	}
	return func(args []value.Value) (value.Value, error) {
		if len(args) == 2 {
			return value.Broadcast(args[0], args[1], pick)
		}
		l, err := numbers(args[0])
		if err != nil {
			return nil, err
		}
		if len(l) == 0 {
			return nil, ErrInvalidDim
		}
		best := l[0]
		for _, el := range l[1:] {
			if best, err = pick(best, el); err != nil {
				return nil, err
			}
		}
		return best, nil
	}
}

// Dim returns the number of elements in a list.
func Dim(args []value.Value) (value.Value, error) {
	l, ok := args[0].(value.List)
	if !ok {
		return nil, fmt.Errorf("%w: dim( expects a list, got %s", value.ErrDataType, args[0].Kind())
	}
	return value.Int(len(l)), nil
}

func Sum(args []value.Value) (value.Value, error) {
	return fold(args[0], value.Int(0), value.Add)
}

func Prod(args []value.Value) (value.Value, error) {
	return fold(args[0], value.Int(1), value.Mul)
}

func Mean(args []value.Value) (value.Value, error) {
	l, err := numbers(args[0])
	if err != nil {
		return nil, err
	}
	if len(l) == 0 {
		return nil, ErrInvalidDim
	}
	total, err := fold(l, value.Int(0), value.Add)
	if err != nil {
		return nil, err
	}
	return value.Div(total, value.Int(len(l)))
}

// Length counts the characters of a string.
func Length(args []value.Value) (value.Value, error) {
	s, err := str(args[0], "length(")
	if err != nil {
		return nil, err
	}
	return value.Int(utf8.RuneCountInString(s)), nil
}

// Sub extracts length characters starting at the 1-based position begin.
func Sub(args []value.Value) (value.Value, error) {
	s, err := str(args[0], "sub(")
	if err != nil {
		return nil, err
	}
	begin, err := position(args[1])
	if err != nil {
		return nil, err
	}
	length, err := position(args[2])
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if begin < 1 || length < 1 || begin > len(runes) || length > len(runes)-(begin-1) {
		return nil, fmt.Errorf("%w: sub( range %d+%d outside a %d character string", value.ErrDomain, begin, length, len(runes))
	}
	return value.Str(string(runes[begin-1 : begin-1+length])), nil
}

// InString finds the 1-based position of needle in s, or 0.
func InString(args []value.Value) (value.Value, error) {
	s, err := str(args[0], "inString(")
	if err != nil {
		return nil, err
	}
	needle, err := str(args[1], "inString(")
	if err != nil {
		return nil, err
	}
	start := 1
	if len(args) == 3 {
		if start, err = position(args[2]); err != nil {
			return nil, err
		}
		if start < 1 {
			return nil, fmt.Errorf("%w: inString( start must be positive", value.ErrDomain)
		}
	}
	runes := []rune(s)
	if start > len(runes) {
		return value.Int(0), nil
	}
	idx := strings.Index(string(runes[start-1:]), needle)
	if idx < 0 {
		return value.Int(0), nil
	}
	return value.Int(start + utf8.RuneCountInString(string(runes[start-1:])[:idx])), nil
}

// integers lifts a function of two whole numbers over lists.
func integers(f func(a, b int64) (int64, error)) Func {
	scalar := func(a, b value.Value) (value.Value, error) {
		x, err := whole(a)
		if err != nil {
			return nil, err
		}
		y, err := whole(b)
		if err != nil {
			return nil, err
		}
		r, err := f(x, y)
		if err != nil {
			return nil, err
		}
		return value.Int(r), nil
	}
	return func(args []value.Value) (value.Value, error) {
		return value.Broadcast(args[0], args[1], scalar)
	}
}

func remainder(a, b int64) (int64, error) {
	if b == 0 {
		return 0, value.ErrDivideByZero
	}
	return a % b, nil
}

func gcd(a, b int64) (int64, error) {
	for b != 0 {
		a, b = b, a%b
	}
	if a == math.MinInt64 {
		return 0, fmt.Errorf("%w: gcd( of %d", value.ErrOverflow, a)
	}
	if a < 0 {
		a = -a
	}
	return a, nil
}

func lcm(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	g, err := gcd(a, b)
	if err != nil {
		return 0, err
	}
	q := a / g
	r := q * b
	if r/b != q || (q == -1 && b == math.MinInt64) || r == math.MinInt64 {
		return 0, fmt.Errorf("%w: lcm( of %d and %d", value.ErrOverflow, a, b)
	}
	if r < 0 {
		r = -r
	}
	return r, nil
}

func fold(v value.Value, start value.Value, op func(a, b value.Value) (value.Value, error)) (value.Value, error) {
	l, err := numbers(v)
	if err != nil {
		return nil, err
	}
	acc := start
	for _, el := range l {
		if acc, err = op(acc, el); err != nil {
			return nil, err
		}
	}
	return acc, nil
}

// numbers expects a flat list of numbers.
func numbers(v value.Value) (value.List, error) {
	l, ok := v.(value.List)
	if !ok {
		return nil, fmt.Errorf("%w: expected a list, got %s", value.ErrDataType, v.Kind())
	}
	for _, el := range l {
		if !value.IsNumeric(el) {
			return nil, fmt.Errorf("%w: list element %s is not a number", value.ErrDataType, el)
		}
	}
	return l, nil
}

func str(v value.Value, fn string) (string, error) {
	s, ok := v.(value.Str)
	if !ok {
		return "", fmt.Errorf("%w: %s expects a string, got %s", value.ErrDataType, fn, v.Kind())
	}
	return string(s), nil
}

func whole(v value.Value) (int64, error) {
	switch v := v.(type) {
	case value.Int:
		return int64(v), nil
	case value.Float:
		return 0, fmt.Errorf("%w: %s is not a whole number", value.ErrDomain, v)
	}
	return 0, fmt.Errorf("%w: expected a number, got %s", value.ErrDataType, v.Kind())
}

func position(v value.Value) (int, error) {
	n, err := whole(v)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}
