package variable_test

import (
	"testing"

	"github.com/agenthands/tib/pkg/core/value"
	"github.com/agenthands/tib/pkg/core/variable"
)

func TestGetRegistersDefault(t *testing.T) {
	s := variable.NewStore()
	if len(s.Names()) != 0 {
		t.Fatal("new store should be empty")
	}
	if v := s.Get("A"); !value.Equal(v, value.Default()) {
		t.Errorf("Get(A) = %v, want default", v)
	}
	if names := s.Names(); len(names) != 1 || names[0] != "A" {
		t.Errorf("reading A should register it, Names() = %v", names)
	}
}

func TestSetRebindsAnyVariant(t *testing.T) {
	s := variable.NewStore()
	values := []value.Value{
		value.Int(5),
		value.Str("hi"),
		value.List{value.Int(1), value.Float(2.5)},
		value.Float(0.5),
	}
	for _, v := range values {
		s.Set("B", v)
		if got := s.Get("B"); !value.Equal(got, v) {
			t.Errorf("Get(B) = %v, want %v", got, v)
		}
	}
}

func TestAns(t *testing.T) {
	s := variable.NewStore()
	s.SetAns(value.Int(9))
	if got := s.Get(variable.AnsName); !value.Equal(got, value.Int(9)) {
		t.Errorf("Get(Ans) = %v", got)
	}
	if len(s.Names()) != 0 {
		t.Error("Ans is not a regular variable")
	}
}

func TestNames(t *testing.T) {
	s := variable.NewStore()
	s.Set("C", value.Int(1))
	s.Get("A")
	s.Set("θ", value.Int(2))
	names := s.Names()
	want := []string{"A", "C", "θ"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v", names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}
