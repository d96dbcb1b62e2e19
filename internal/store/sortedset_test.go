package store

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZAddNewAndUpdate(t *testing.T) {
	z := NewSortedSet()
	isNew, err := z.ZAdd("a", 1.5)
	require.NoError(t, err)
	assert.True(t, isNew)

	isNew, err = z.ZAdd("a", 2.5)
	require.NoError(t, err)
	assert.False(t, isNew)

	score, ok := z.ZScore("a")
	require.True(t, ok)
	assert.Equal(t, 2.5, score)
}

func TestZAddRejectsNaN(t *testing.T) {
	z := NewSortedSet()
	_, err := z.ZAdd("a", math.NaN())
	assert.ErrorIs(t, err, ErrNaNScore)
}

func TestZAddAcceptsInf(t *testing.T) {
	z := NewSortedSet()
	_, err := z.ZAdd("a", math.Inf(1))
	assert.NoError(t, err)
	_, err = z.ZAdd("b", math.Inf(-1))
	assert.NoError(t, err)
}

func TestZRankOrdersByScoreThenMember(t *testing.T) {
	z := NewSortedSet()
	z.ZAdd("b", 1)
	z.ZAdd("a", 1)
	z.ZAdd("c", 2)

	rank, ok := z.ZRank("a")
	require.True(t, ok)
	assert.Equal(t, 0, rank)

	rank, ok = z.ZRank("b")
	require.True(t, ok)
	assert.Equal(t, 1, rank)

	rank, ok = z.ZRank("c")
	require.True(t, ok)
	assert.Equal(t, 2, rank)
}

func TestZRangeInclusive(t *testing.T) {
	z := NewSortedSet()
	z.ZAdd("a", 1)
	z.ZAdd("b", 2)
	z.ZAdd("c", 3)

	assert.Equal(t, []string{"a", "b"}, z.ZRange(0, 1))
	assert.Equal(t, []string{"a", "b", "c"}, z.ZRange(0, 10))
	assert.Equal(t, []string{}, z.ZRange(5, 10))
}

func TestZRangeByScore(t *testing.T) {
	z := NewSortedSet()
	z.ZAdd("a", 1)
	z.ZAdd("b", 2)
	z.ZAdd("c", 3)

	assert.Equal(t, []string{"b", "c"}, z.ZRangeByScore(2, 10))
	assert.Equal(t, []string{}, z.ZRangeByScore(10, 20))
}

func TestZRemAndZCard(t *testing.T) {
	z := NewSortedSet()
	z.ZAdd("a", 1)
	z.ZAdd("b", 2)
	assert.Equal(t, 2, z.ZCard())

	assert.True(t, z.ZRem("a"))
	assert.False(t, z.ZRem("a"))
	assert.Equal(t, 1, z.ZCard())
}
