package ir

import (
	"sort"
	"strings"

	"golang.org/x/exp/maps"
)

// ValueSet is a set of Values, the working currency of liveness and
// interference.
//
// DESIGN CHOICE: a map keyed by Value, because Value is comparable.
// The dataflow stages spend all their time asking "is v live here" and
// unioning sets; a map answers both with no interning and no ids.
//
// A nil ValueSet is empty for reads; call NewValueSet before adding.
type ValueSet map[Value]struct{}

// NewValueSet returns a set holding the given values.
func NewValueSet(values ...Value) ValueSet {
	s := make(ValueSet, len(values))
	for _, v := range values {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts v and reports whether the set grew.
func (s ValueSet) Add(v Value) bool {
	if _, ok := s[v]; ok {
		return false
	}
	s[v] = struct{}{}
	return true
}

// Contains reports whether v is in the set.
func (s ValueSet) Contains(v Value) bool {
	_, ok := s[v]
	return ok
}

// Remove deletes v from the set.
func (s ValueSet) Remove(v Value) {
	delete(s, v)
}

// Len returns the number of values in the set.
func (s ValueSet) Len() int { return len(s) }

// Clone returns an independent copy of the set.
func (s ValueSet) Clone() ValueSet {
	return maps.Clone(s)
}

// Union adds every value of other and reports whether the set grew.
// The dataflow fixed point uses the report to detect change.
func (s ValueSet) Union(other ValueSet) bool {
	grew := false
	for v := range other {
		if s.Add(v) {
			grew = true
		}
	}
	return grew
}

// Difference returns a new set holding the values of s not in other.
func (s ValueSet) Difference(other ValueSet) ValueSet {
	out := make(ValueSet)
	for v := range s {
		if !other.Contains(v) {
			out[v] = struct{}{}
		}
	}
	return out
}

// Equal reports whether both sets hold exactly the same values.
func (s ValueSet) Equal(other ValueSet) bool {
	if len(s) != len(other) {
		return false
	}
	for v := range s {
		if !other.Contains(v) {
			return false
		}
	}
	return true
}

// Values returns the members in a stable order: by kind, then by the
// kind's identifying field. Map iteration order must never leak into
// dumps or allocation decisions.
func (s ValueSet) Values() []Value {
	values := maps.Keys(s)
	sort.Slice(values, func(i, j int) bool {
		a, b := values[i], values[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		switch a.Kind {
		case ValueVariable:
			return a.Name < b.Name
		case ValueTemporary:
			return a.ID < b.ID
		default:
			return a.Literal < b.Literal
		}
	})
	return values
}

// String returns the set in stable order, for logs and tests.
func (s ValueSet) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, v := range s.Values() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(v.String())
	}
	sb.WriteString("}")
	return sb.String()
}
