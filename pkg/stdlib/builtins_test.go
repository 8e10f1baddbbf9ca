package stdlib

import (
	"testing"

	"github.com/agenthands/tib/pkg/compiler/lexer"
	"github.com/agenthands/tib/pkg/core/value"
)

func TestEveryFunctionTokenIsRegistered(t *testing.T) {
	for _, name := range lexer.FunctionNames {
		if _, ok := Lookup(name); !ok {
			t.Errorf("no builtin registered for %q", name)
		}
	}
}

func TestBuiltins(t *testing.T) {
	i := func(n int64) value.Value { return value.Int(n) }
	f := func(x float64) value.Value { return value.Float(x) }
	s := func(v string) value.Value { return value.Str(v) }
	list := func(vs ...value.Value) value.Value { return value.List(vs) }

	tests := []struct {
		name string
		fn   string
		args []value.Value
		want value.Value
	}{
		{"Abs", "abs(", []value.Value{i(-4)}, i(4)},
		{"AbsList", "abs(", []value.Value{list(i(-1), f(-2.5))}, list(i(1), f(2.5))},
		{"IntFloors", "int(", []value.Value{f(-2.5)}, i(-3)},
		{"IPartTruncates", "iPart(", []value.Value{f(-2.5)}, i(-2)},
		{"FPart", "fPart(", []value.Value{f(3.25)}, f(0.25)},
		{"RoundDefault", "round(", []value.Value{f(1.0 / 3.0)}, f(0.333333333)},
		{"RoundDigits", "round(", []value.Value{f(3.14159), i(2)}, f(3.14)},
		{"RoundHuge", "round(", []value.Value{f(1e300)}, f(1e300)},
		{"RoundHugeNegative", "round(", []value.Value{f(-1e307), i(2)}, f(-1e307)},
		{"RoundToInt", "round(", []value.Value{f(2.5), i(0)}, i(3)},
		{"Sqrt", "sqrt(", []value.Value{i(16)}, i(4)},
		{"SqrtSymbol", "√(", []value.Value{i(2)}, f(1.4142135623730951)},
		{"MinList", "min(", []value.Value{list(i(3), i(1), i(2))}, i(1)},
		{"MaxPair", "max(", []value.Value{i(3), f(3.5)}, f(3.5)},
		{"MaxBroadcast", "max(", []value.Value{list(i(1), i(5)), i(3)}, list(i(3), i(5))},
		{"Dim", "dim(", []value.Value{list(i(1), s("a"))}, i(2)},
		{"DimEmpty", "dim(", []value.Value{list()}, i(0)},
		{"Sum", "sum(", []value.Value{list(i(1), i(2), f(0.5))}, f(3.5)},
		{"SumEmpty", "sum(", []value.Value{list()}, i(0)},
		{"Prod", "prod(", []value.Value{list(i(2), i(3), i(4))}, i(24)},
		{"Mean", "mean(", []value.Value{list(i(1), i(2))}, f(1.5)},
		{"Length", "length(", []value.Value{s("héllo")}, i(5)},
		{"Sub", "sub(", []value.Value{s("HELLO"), i(2), i(3)}, s("ELL")},
		{"InString", "inString(", []value.Value{s("banana"), s("an")}, i(2)},
		{"InStringStart", "inString(", []value.Value{s("banana"), s("an"), i(3)}, i(4)},
		{"InStringMissing", "inString(", []value.Value{s("banana"), s("x")}, i(0)},
		{"Remainder", "remainder(", []value.Value{i(17), i(5)}, i(2)},
		{"Gcd", "gcd(", []value.Value{i(12), i(-18)}, i(6)},
		{"Lcm", "lcm(", []value.Value{i(4), i(6)}, i(12)},
		{"LcmNegative", "lcm(", []value.Value{i(-4), i(6)}, i(12)},
		{"LcmLarge", "lcm(", []value.Value{i(1 << 61), i(2)}, i(1 << 61)},
		{"GcdList", "gcd(", []value.Value{list(i(4), i(9)), i(6)}, list(i(2), i(3))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, ok := Lookup(tt.fn)
			if !ok {
				t.Fatalf("%s not registered", tt.fn)
			}
			got, err := b.Call(tt.args)
			if err != nil {
				t.Fatal(err)
			}
			if !value.Equal(got, tt.want) {
				t.Errorf("%s%v) = %#v, want %#v", tt.fn, tt.args, got, tt.want)
			}
		})
	}
}
