package xmatch

import (
	"testing"

	"github.com/hupe1980/xmatch/codebook"
	"github.com/hupe1980/xmatch/matcher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumerify(t *testing.T) {
	t.Run("first seen order", func(t *testing.T) {
		codes, cb := Numerify([]string{"b", "a", "b"}, nil)
		assert.Equal(t, []int{0, 1, 0}, codes)
		require.Equal(t, 2, cb.Len())

		code, ok := cb.Code("b")
		require.True(t, ok)
		assert.Equal(t, 0, code)
		code, ok = cb.Code("a")
		require.True(t, ok)
		assert.Equal(t, 1, code)
	})

	t.Run("shared codebook", func(t *testing.T) {
		_, cb := Numerify([]string{"b", "a"}, nil)
		codes, cb2 := Numerify([]string{"c", "a", "c"}, cb)
		assert.Same(t, cb, cb2)
		assert.Equal(t, []int{2, 1, 2}, codes)
		assert.Equal(t, []string{"b", "a", "c"}, cb.Values())
	})

	t.Run("decode inverts", func(t *testing.T) {
		values := []float64{2.5, -1, 2.5, 0, 7}
		codes, cb := Numerify(values, nil)
		back, err := cb.Decode(codes)
		require.NoError(t, err)
		assert.Equal(t, values, back)
	})

	t.Run("empty", func(t *testing.T) {
		codes, cb := Numerify([]string(nil), nil)
		assert.Empty(t, codes)
		assert.Equal(t, 0, cb.Len())
	})
}

func TestNumerifyAny(t *testing.T) {
	t.Run("scalars", func(t *testing.T) {
		codes, cb, err := NumerifyAny([]any{1, "a", 1, nil, int64(1)}, false, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 0, 2, 3}, codes)
		assert.Equal(t, 4, cb.Len())
	})

	t.Run("combine tuples", func(t *testing.T) {
		values := []any{[]int{1, 2}, [2]int{1, 2}, []any{1, 2}, []int{2, 1}, "ab", []string{"a", "b"}}
		codes, cb, err := NumerifyAny(values, true, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 0, 0, 1, 2, 2}, codes)

		v, ok := cb.Value(0)
		require.True(t, ok)
		assert.Equal(t, codebook.MustTuple(1, 2), v)
	})

	t.Run("unhashable", func(t *testing.T) {
		codes, cb, err := NumerifyAny([]any{1, []int{1}}, false, nil)
		assert.ErrorIs(t, err, ErrUnhashable)
		assert.Nil(t, codes)
		assert.Equal(t, 1, cb.Len())
	})

	t.Run("unhashable tuple element", func(t *testing.T) {
		_, _, err := NumerifyAny([]any{[]any{1, map[string]int{}}}, true, nil)
		assert.ErrorIs(t, err, ErrUnhashable)
	})

	t.Run("nil and nested tuple elements", func(t *testing.T) {
		items := []any{
			[]any{"a", nil},
			[][2]int{{1, 2}, {3, 4}},
			[]any{"a", nil},
			[]any{[]int{1, 2}, []int{3, 4}},
		}
		codes, cb, err := NumerifyAny(items, true, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1, 0, 1}, codes)
		assert.Equal(t, 2, cb.Len())
	})

	t.Run("not a sequence", func(t *testing.T) {
		_, _, err := NumerifyAny([]any{[]int{1}, 42}, true, nil)
		assert.ErrorIs(t, err, ErrNotSequence)
	})

	t.Run("metrics", func(t *testing.T) {
		mc := &BasicMetricsCollector{}
		cb := codebook.New[any]()
		_, _, err := NumerifyAny([]any{"x", "y"}, false, cb, WithMetricsCollector(mc))
		require.NoError(t, err)
		_, _, err = NumerifyAny([]any{"y", "z"}, false, cb, WithMetricsCollector(mc))
		require.NoError(t, err)

		stats := mc.GetStats()
		assert.Equal(t, int64(2), stats.NumerifyCount)
		assert.Equal(t, int64(4), stats.NumerifyValues)
		assert.Equal(t, int64(3), stats.NumerifyNewCodes)
	})
}

func TestCrossmatchNonNumeric(t *testing.T) {
	t.Run("strings", func(t *testing.T) {
		inds1, inds2, err := CrossmatchNonNumeric([]any{"a", "b"}, []any{"b", "c"})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, inds1)
		assert.Equal(t, []int{0}, inds2)
	})

	t.Run("invalid utf-8 strings", func(t *testing.T) {
		inds1, inds2, err := CrossmatchNonNumeric([]any{"\xff"}, []any{"\xfe"})
		require.NoError(t, err)
		assert.Empty(t, inds1)
		assert.Empty(t, inds2)

		inds1, inds2, err = CrossmatchNonNumeric([]any{"\xfe", "\xff"}, []any{"\xff", "\uFFFD"})
		require.NoError(t, err)
		assert.Equal(t, []int{1}, inds1)
		assert.Equal(t, []int{0}, inds2)
	})

	t.Run("rows with nil and coordinate pairs", func(t *testing.T) {
		x := []any{[]any{"a", nil}, [][2]int{{1, 2}}}
		y := []any{[]any{[]int{1, 2}}, []any{"a", nil}}
		inds1, inds2, err := CrossmatchNonNumeric(x, y)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, inds1)
		assert.Equal(t, []int{1, 0}, inds2)
	})

	t.Run("rows", func(t *testing.T) {
		x := []any{[]any{1, "a"}, []any{2, "b"}}
		y := []any{[]any{2, "b"}, []any{1, "a"}, []any{3, "c"}}
		inds1, inds2, err := CrossmatchNonNumeric(x, y)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, inds1)
		assert.Equal(t, []int{1, 0}, inds2)
	})

	t.Run("raw matcher order", func(t *testing.T) {
		inds1, inds2, err := CrossmatchNonNumeric(
			[]any{"a", "b", "a"}, []any{"a", "b"},
			WithMatcher(matcher.SortMerge{}),
		)
		require.NoError(t, err)
		assert.Equal(t, []int{0, 2, 1}, inds1)
		assert.Equal(t, []int{0, 0, 1}, inds2)
	})

	t.Run("without tuple combining", func(t *testing.T) {
		inds1, inds2, err := CrossmatchNonNumeric([]any{"ab", 3}, []any{3, "ab"}, WithCombineTuples(false))
		require.NoError(t, err)
		assert.Equal(t, []int{0, 1}, inds1)
		assert.Equal(t, []int{1, 0}, inds2)

		_, _, err = CrossmatchNonNumeric([]any{map[string]int{}}, nil, WithCombineTuples(false))
		assert.ErrorIs(t, err, ErrUnhashable)
	})

	t.Run("duplicates in y", func(t *testing.T) {
		_, _, err := CrossmatchNonNumeric([]any{"a"}, []any{"a", "a"})
		var de *matcher.DuplicateError
		assert.ErrorAs(t, err, &de)
	})

	t.Run("without numerify", func(t *testing.T) {
		inds1, inds2, err := CrossmatchNonNumeric([]any{1, int64(2)}, []any{uint8(2)}, WithNumerify(false))
		require.NoError(t, err)
		assert.Equal(t, []int{1}, inds1)
		assert.Equal(t, []int{0}, inds2)

		_, _, err = CrossmatchNonNumeric([]any{1}, []any{"a"}, WithNumerify(false))
		var nn *ErrNotNumeric
		require.ErrorAs(t, err, &nn)
		assert.Equal(t, "y", nn.Side)
		assert.Equal(t, 0, nn.Index)
		assert.ErrorIs(t, err, ErrInvalidArgument)

		_, _, err = CrossmatchNonNumeric([]any{uint64(1 << 63)}, nil, WithNumerify(false))
		assert.ErrorAs(t, err, &nn)
	})
}

func TestCrossmatchComparable(t *testing.T) {
	type point struct{ X, Y int }

	inds1, inds2, err := CrossmatchComparable(
		[]point{{1, 2}, {3, 4}, {1, 2}},
		[]point{{3, 4}, {1, 2}},
	)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, inds1)
	assert.Equal(t, []int{1, 0, 1}, inds2)
}
