package stdlib

import (
	"errors"
	"math"
	"testing"

	"github.com/agenthands/tib/pkg/core/value"
)

func TestBuiltinErrors(t *testing.T) {
	i := func(n int64) value.Value { return value.Int(n) }
	s := func(v string) value.Value { return value.Str(v) }

	tests := []struct {
		name string
		fn   string
		args []value.Value
		want error
	}{
		{"TooFewArgs", "sub(", []value.Value{s("abc"), i(1)}, ErrArgument},
		{"TooManyArgs", "abs(", []value.Value{i(1), i(2)}, ErrArgument},
		{"AbsString", "abs(", []value.Value{s("x")}, value.ErrDataType},
		{"SqrtNegative", "sqrt(", []value.Value{i(-1)}, value.ErrNonReal},
		{"RoundBadDigits", "round(", []value.Value{i(1), i(12)}, value.ErrDomain},
		{"MinEmpty", "min(", []value.Value{value.List{}}, ErrInvalidDim},
		{"MaxScalar", "max(", []value.Value{i(1)}, value.ErrDataType},
		{"MaxStrings", "max(", []value.Value{s("a"), s("b")}, value.ErrDataType},
		{"DimScalar", "dim(", []value.Value{i(3)}, value.ErrDataType},
		{"SumStrings", "sum(", []value.Value{value.List{s("a")}}, value.ErrDataType},
		{"MeanEmpty", "mean(", []value.Value{value.List{}}, ErrInvalidDim},
		{"LengthNumber", "length(", []value.Value{i(3)}, value.ErrDataType},
		{"SubOutOfRange", "sub(", []value.Value{s("abc"), i(2), i(5)}, value.ErrDomain},
		{"SubHugeRange", "sub(", []value.Value{s("abc"), i(math.MaxInt64), i(math.MaxInt64)}, value.ErrDomain},
		{"SubLengthPastEnd", "sub(", []value.Value{s("abc"), i(3), i(math.MaxInt64)}, value.ErrDomain},
		{"SubZeroStart", "sub(", []value.Value{s("abc"), i(0), i(1)}, value.ErrDomain},
		{"InStringZeroStart", "inString(", []value.Value{s("abc"), s("a"), i(0)}, value.ErrDomain},
		{"RemainderByZero", "remainder(", []value.Value{i(1), i(0)}, value.ErrDivideByZero},
		{"GcdFloat", "gcd(", []value.Value{value.Float(1.5), i(3)}, value.ErrDomain},
		{"GcdMinInt", "gcd(", []value.Value{i(math.MinInt64), i(0)}, value.ErrOverflow},
		{"LcmOverflow", "lcm(", []value.Value{i(1 << 62), i(3)}, value.ErrOverflow},
		{"LcmMinInt", "lcm(", []value.Value{i(math.MinInt64), i(1)}, value.ErrOverflow},
		{"AbsInfinite", "abs(", []value.Value{value.Float(math.Inf(-1))}, value.ErrOverflow},
		{"IntNaN", "int(", []value.Value{value.Float(math.NaN())}, value.ErrNonReal},
		{"LcmMismatch", "lcm(", []value.Value{value.List{i(1)}, value.List{i(1), i(2)}}, value.ErrDimMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, _ := Lookup(tt.fn)
			if _, err := b.Call(tt.args); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}
