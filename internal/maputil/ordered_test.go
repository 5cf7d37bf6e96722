package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrdered_SetKeepsInsertionOrder(t *testing.T) {
	tests := []struct {
		name     string
		keys     []string
		expected []string
	}{
		{
			name:     "reverse alphabetical",
			keys:     []string{"zebra", "mango", "apple"},
			expected: []string{"zebra", "mango", "apple"},
		},
		{
			name:     "overwrite keeps first position",
			keys:     []string{"a", "b", "a"},
			expected: []string{"a", "b"},
		},
		{
			name:     "empty",
			keys:     nil,
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m Ordered[int]
			for i, k := range tt.keys {
				m.Set(k, i)
			}
			assert.Equal(t, tt.expected, m.Keys())
			assert.Equal(t, len(tt.expected), m.Len())
		})
	}
}

func TestOrdered_GetAndDelete(t *testing.T) {
	m := NewOrdered[string](3)
	m.Set("c", "3")
	m.Set("a", "1")
	m.Set("b", "2")

	v, ok := m.Get("a")
	assert.True(t, ok)
	assert.Equal(t, "1", v)
	assert.True(t, m.Has("b"))

	m.Delete("a")
	m.Delete("missing")
	assert.False(t, m.Has("a"))
	assert.Equal(t, []string{"c", "b"}, m.Keys())
	assert.Equal(t, []string{"3", "2"}, m.Values())
}

func TestOrdered_All(t *testing.T) {
	m := NewOrdered[int](0)
	m.Set("x", 1)
	m.Set("y", 2)
	m.Set("z", 3)

	var keys []string
	sum := 0
	for k, v := range m.All() {
		keys = append(keys, k)
		sum += v
		if k == "y" {
			break
		}
	}
	assert.Equal(t, []string{"x", "y"}, keys)
	assert.Equal(t, 3, sum)
}

func TestOrdered_NilReceiver(t *testing.T) {
	var m *Ordered[int]
	_, ok := m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, m.Len())
	assert.Empty(t, m.Keys())
	for range m.All() {
		t.Fatal("nil map should not yield")
	}
}
