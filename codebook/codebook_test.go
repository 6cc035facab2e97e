package codebook

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodebook(t *testing.T) {
	t.Run("first seen order", func(t *testing.T) {
		cb := New[string]()
		assert.Equal(t, 0, cb.Encode("b"))
		assert.Equal(t, 1, cb.Encode("a"))
		assert.Equal(t, 0, cb.Encode("b"))
		assert.Equal(t, 2, cb.Len())
		assert.Equal(t, []string{"b", "a"}, cb.Values())
	})

	t.Run("lookup without assignment", func(t *testing.T) {
		cb := New[int]()
		_, ok := cb.Code(7)
		assert.False(t, ok)
		assert.Equal(t, 0, cb.Len())

		cb.Encode(7)
		code, ok := cb.Code(7)
		assert.True(t, ok)
		assert.Equal(t, 0, code)
	})

	t.Run("zero value", func(t *testing.T) {
		var cb Codebook[string]
		assert.Equal(t, 0, cb.Encode("x"))
		assert.Equal(t, 1, cb.Encode("y"))
	})

	t.Run("inverse", func(t *testing.T) {
		cb := New[string]()
		in := []string{"x", "y", "x", "z"}
		codes := make([]int, len(in))
		for i, v := range in {
			codes[i] = cb.Encode(v)
		}
		out, err := cb.Decode(codes)
		require.NoError(t, err)
		assert.Equal(t, in, out)

		_, err = cb.Decode([]int{0, 3})
		assert.True(t, errors.Is(err, ErrUnknownCode))

		_, ok := cb.Value(-1)
		assert.False(t, ok)
	})

	t.Run("clone is independent", func(t *testing.T) {
		cb := New[string]()
		cb.Encode("a")
		c := cb.Clone()
		c.Encode("b")
		assert.Equal(t, 1, cb.Len())
		assert.Equal(t, 2, c.Len())
		_, ok := cb.Code("b")
		assert.False(t, ok)
	})

	t.Run("all", func(t *testing.T) {
		cb := New[string]()
		cb.Encode("p")
		cb.Encode("q")
		got := map[string]int{}
		for v, code := range cb.All() {
			got[v] = code
		}
		assert.Equal(t, map[string]int{"p": 0, "q": 1}, got)
	})

	t.Run("values returns a copy", func(t *testing.T) {
		cb := New[string]()
		cb.Encode("a")
		vals := cb.Values()
		vals[0] = "mutated"
		v, _ := cb.Value(0)
		assert.Equal(t, "a", v)
	})
}

func TestFromValues(t *testing.T) {
	cb, err := FromValues([]string{"u", "v"})
	require.NoError(t, err)
	code, ok := cb.Code("v")
	require.True(t, ok)
	assert.Equal(t, 1, code)

	_, err = FromValues([]string{"u", "u"})
	assert.Error(t, err)

	_, err = FromValues([]any{1, []int{2}})
	assert.True(t, errors.Is(err, ErrUnhashable))
}

func TestHashable(t *testing.T) {
	assert.True(t, Hashable(nil))
	assert.True(t, Hashable("s"))
	assert.True(t, Hashable([2]int{1, 2}))
	assert.True(t, Hashable(MustTuple(1, 2)))
	assert.False(t, Hashable([]int{1}))
	assert.False(t, Hashable(map[string]int{}))
	assert.False(t, Hashable([1]any{[]int{1}}))
}
