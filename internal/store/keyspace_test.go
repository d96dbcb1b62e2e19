package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetStringAndGet(t *testing.T) {
	k := NewKeyspace()
	ok := k.SetString("foo", []byte("bar"), 0, SetOptions{})
	require.True(t, ok)

	v, exists := k.Get("foo", 0)
	require.True(t, exists)
	assert.Equal(t, []byte("bar"), v.Str.Get())
}

func TestSetStringNXOnExisting(t *testing.T) {
	k := NewKeyspace()
	k.SetString("foo", []byte("bar"), 0, SetOptions{})
	ok := k.SetString("foo", []byte("baz"), 0, SetOptions{NX: true})
	assert.False(t, ok)

	v, _ := k.Get("foo", 0)
	assert.Equal(t, []byte("bar"), v.Str.Get())
}

func TestSetStringXXOnMissing(t *testing.T) {
	k := NewKeyspace()
	ok := k.SetString("missing", []byte("v"), 0, SetOptions{XX: true})
	assert.False(t, ok)
	assert.False(t, k.Exists("missing", 0))
}

func TestSetStringKeepTTL(t *testing.T) {
	k := NewKeyspace()
	k.SetString("foo", []byte("bar"), 100, SetOptions{ExpiresAt: 200})
	k.SetString("foo", []byte("baz"), 100, SetOptions{KeepTTL: true})

	ttl, exists, hasExpiry := k.TTLSeconds("foo", 150)
	require.True(t, exists)
	require.True(t, hasExpiry)
	assert.Equal(t, int64(50), ttl)
}

func TestLazyExpiration(t *testing.T) {
	k := NewKeyspace()
	k.SetString("foo", []byte("bar"), 0, SetOptions{ExpiresAt: 10})

	assert.True(t, k.Exists("foo", 5))
	assert.False(t, k.Exists("foo", 10))
	assert.False(t, k.Exists("foo", 20))
}

func TestExpirePastDeadlineDeletesImmediately(t *testing.T) {
	k := NewKeyspace()
	k.SetString("foo", []byte("bar"), 0, SetOptions{})
	ok := k.Expire("foo", 5, 10)
	assert.True(t, ok)
	assert.False(t, k.Exists("foo", 10))
}

func TestTTLSecondsNoExpiryKey(t *testing.T) {
	k := NewKeyspace()
	k.SetString("foo", []byte("bar"), 0, SetOptions{})
	ttl, exists, hasExpiry := k.TTLSeconds("foo", 0)
	assert.True(t, exists)
	assert.False(t, hasExpiry)
	assert.Equal(t, int64(0), ttl)
}

func TestTTLSecondsMissingKey(t *testing.T) {
	k := NewKeyspace()
	_, exists, _ := k.TTLSeconds("missing", 0)
	assert.False(t, exists)
}

func TestIncrByOnMissingKey(t *testing.T) {
	k := NewKeyspace()
	newVal, err, wt := k.IncrBy("counter", 5, 0)
	require.NoError(t, err)
	assert.False(t, wt)
	assert.Equal(t, int64(5), newVal)
}

func TestIncrByOverflow(t *testing.T) {
	k := NewKeyspace()
	k.SetString("counter", []byte("9223372036854775807"), 0, SetOptions{})
	_, err, wt := k.IncrBy("counter", 1, 0)
	assert.False(t, wt)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestIncrByNotAnInteger(t *testing.T) {
	k := NewKeyspace()
	k.SetString("key", []byte("notanumber"), 0, SetOptions{})
	_, err, wt := k.IncrBy("key", 1, 0)
	assert.False(t, wt)
	assert.ErrorIs(t, err, ErrNotInteger)
}

func TestIncrByWrongType(t *testing.T) {
	k := NewKeyspace()
	k.MutateOrCreate("key", 0, KindHash, func() *Value { return NewHashValue(NewHash()) }, func(v *Value) {})
	_, _, wt := k.IncrBy("key", 1, 0)
	assert.True(t, wt)
}

func TestMutateOrCreateWrongTypeLeavesValueUntouched(t *testing.T) {
	k := NewKeyspace()
	k.SetString("key", []byte("v"), 0, SetOptions{})
	wt := k.MutateOrCreate("key", 0, KindHash, func() *Value { return NewHashValue(NewHash()) }, func(v *Value) {
		t.Fatal("fn must not run on a type mismatch")
	})
	assert.True(t, wt)
}

func TestMutateExistingDeletesEmptyContainer(t *testing.T) {
	k := NewKeyspace()
	k.MutateOrCreate("h", 0, KindHash, func() *Value { return NewHashValue(NewHash()) }, func(v *Value) {
		v.Hash.Set("f", []byte("v"))
	})
	_, wt := k.MutateExisting("h", 0, KindHash, func(v *Value) bool {
		v.Hash.Del("f")
		return v.Hash.Len() == 0
	})
	assert.False(t, wt)
	assert.False(t, k.Exists("h", 0))
}

func TestDeleteReportsPriorExistence(t *testing.T) {
	k := NewKeyspace()
	assert.False(t, k.Delete("missing", 0))
	k.SetString("foo", []byte("v"), 0, SetOptions{})
	assert.True(t, k.Delete("foo", 0))
	assert.False(t, k.Exists("foo", 0))
}

func TestKeysMatchesGlobAndSkipsExpired(t *testing.T) {
	k := NewKeyspace()
	k.SetString("hello", []byte("v"), 0, SetOptions{})
	k.SetString("help", []byte("v"), 0, SetOptions{})
	k.SetString("world", []byte("v"), 0, SetOptions{})
	k.SetString("helium", []byte("v"), 0, SetOptions{ExpiresAt: 1})

	keys := k.Keys("hel*", 5)
	assert.ElementsMatch(t, []string{"hello", "help"}, keys)
}

func TestAppendCreatesAndGrows(t *testing.T) {
	k := NewKeyspace()
	n, wt := k.Append("s", []byte("abc"), 0)
	require.False(t, wt)
	assert.Equal(t, 3, n)

	n, wt = k.Append("s", []byte("def"), 0)
	require.False(t, wt)
	assert.Equal(t, 6, n)

	v, _ := k.Get("s", 0)
	assert.Equal(t, []byte("abcdef"), v.Str.Get())
}

func TestFlushRemovesEverything(t *testing.T) {
	k := NewKeyspace()
	k.SetString("a", []byte("1"), 0, SetOptions{})
	k.SetString("b", []byte("2"), 0, SetOptions{})
	k.Flush()
	assert.False(t, k.Exists("a", 0))
	assert.False(t, k.Exists("b", 0))
}
