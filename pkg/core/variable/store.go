package variable

import (
	"sort"

	"github.com/agenthands/tib/pkg/core/value"
)

// AnsName is the read-only variable holding the last statement result.
const AnsName = "Ans"

// Store maps variable names to values for one interpreter run.
// It is not safe for concurrent use.
type Store struct {
	vars map[string]value.Value
	ans  value.Value
}

func NewStore() *Store {
	return &Store{
		vars: make(map[string]value.Value),
		ans:  value.Default(),
	}
}

// Get returns the value bound to name. Reading an unset name binds it to
// value.Default first, so the read registers the variable.
func (s *Store) Get(name string) value.Value {
	if name == AnsName {
		return s.ans
	}
	v, ok := s.vars[name]
	if !ok {
		v = value.Default()
		s.vars[name] = v
	}
	return v
}

// Set rebinds name to v regardless of the previous variant.
func (s *Store) Set(name string, v value.Value) {
	s.vars[name] = v
}

func (s *Store) Ans() value.Value {
	return s.ans
}

func (s *Store) SetAns(v value.Value) {
	s.ans = v
}

// Names returns the registered variable names in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.vars))
	for name := range s.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
