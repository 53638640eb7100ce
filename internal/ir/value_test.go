package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hassan/minicc/internal/types"
)

func TestValue_Identity(t *testing.T) {
	assert.Equal(t, Constant(5, types.Int), Constant(5, types.Int))
	assert.Equal(t, Variable("x", types.Int), Variable("x", types.Int))
	assert.Equal(t, Temporary(0, types.Int), Temporary(0, types.Int))

	assert.NotEqual(t, Constant(5, types.Int), Constant(6, types.Int))
	assert.NotEqual(t, Variable("x", types.Int), Variable("y", types.Int))
	assert.NotEqual(t, Temporary(0, types.Int), Temporary(1, types.Int))

	// Kinds never collide, even when the identifying fields are zero.
	assert.NotEqual(t, Constant(0, types.Int), Temporary(0, types.Int))
	assert.NotEqual(t, Variable("", types.Int), Constant(0, types.Int))
}

func TestValue_MapKey(t *testing.T) {
	counts := map[Value]int{}
	counts[Variable("x", types.Int)]++
	counts[Variable("x", types.Int)]++
	counts[Temporary(0, types.Int)]++

	assert.Len(t, counts, 2)
	assert.Equal(t, 2, counts[Variable("x", types.Int)])
}

func TestValue_String(t *testing.T) {
	tests := []struct {
		name     string
		value    Value
		expected string
	}{
		{"constant", Constant(42, types.Int), "42"},
		{"negative constant", Constant(-1, types.Int), "-1"},
		{"variable", Variable("count", types.Int), "count"},
		{"temporary", Temporary(3, types.Int), "t3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.value.String())
		})
	}
}

func TestValue_Allocatable(t *testing.T) {
	assert.False(t, Constant(1, types.Int).Allocatable())
	assert.True(t, Variable("x", types.Int).Allocatable())
	assert.True(t, Temporary(0, types.Int).Allocatable())

	assert.True(t, Constant(1, types.Int).IsConstant())
	assert.False(t, Variable("x", types.Int).IsConstant())
}

func TestValueSet_Basics(t *testing.T) {
	s := NewValueSet()
	x := Variable("x", types.Int)

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.Contains(x))

	assert.True(t, s.Add(x))
	assert.False(t, s.Add(x), "second add of the same value")
	assert.True(t, s.Contains(x))
	assert.Equal(t, 1, s.Len())

	s.Remove(x)
	assert.False(t, s.Contains(x))
	assert.Equal(t, 0, s.Len())
}

func TestValueSet_Union(t *testing.T) {
	x := Variable("x", types.Int)
	y := Variable("y", types.Int)

	s := NewValueSet(x)
	assert.True(t, s.Union(NewValueSet(x, y)), "y is new")
	assert.False(t, s.Union(NewValueSet(x, y)), "nothing new on repeat")
	assert.Equal(t, 2, s.Len())
}

func TestValueSet_Difference(t *testing.T) {
	x := Variable("x", types.Int)
	y := Variable("y", types.Int)
	z := Variable("z", types.Int)

	s := NewValueSet(x, y, z)
	d := s.Difference(NewValueSet(y))

	assert.True(t, d.Contains(x))
	assert.False(t, d.Contains(y))
	assert.True(t, d.Contains(z))
	assert.Equal(t, 3, s.Len(), "difference does not mutate the receiver")
}

func TestValueSet_Equal(t *testing.T) {
	x := Variable("x", types.Int)
	y := Variable("y", types.Int)

	assert.True(t, NewValueSet(x, y).Equal(NewValueSet(y, x)))
	assert.False(t, NewValueSet(x).Equal(NewValueSet(y)))
	assert.False(t, NewValueSet(x).Equal(NewValueSet(x, y)))
	assert.True(t, NewValueSet().Equal(NewValueSet()))
}

func TestValueSet_Clone(t *testing.T) {
	x := Variable("x", types.Int)
	y := Variable("y", types.Int)

	s := NewValueSet(x)
	c := s.Clone()
	c.Add(y)

	assert.False(t, s.Contains(y), "clone is independent")
	assert.True(t, c.Contains(x))
}

func TestValueSet_Values_StableOrder(t *testing.T) {
	s := NewValueSet(
		Temporary(2, types.Int),
		Variable("b", types.Int),
		Constant(7, types.Int),
		Temporary(0, types.Int),
		Variable("a", types.Int),
	)

	expected := []Value{
		Constant(7, types.Int),
		Variable("a", types.Int),
		Variable("b", types.Int),
		Temporary(0, types.Int),
		Temporary(2, types.Int),
	}
	assert.Equal(t, expected, s.Values())
	assert.Equal(t, "{7, a, b, t0, t2}", s.String())
}
