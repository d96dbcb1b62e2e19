package command

import (
	"testing"

	"github.com/armandparser/redicache/internal/resp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func arrayOf(args ...string) resp.Frame {
	items := make([]resp.Frame, len(args))
	for i, a := range args {
		items[i] = resp.BulkString(a)
	}
	return resp.Array(items)
}

func TestParseUnknownCommand(t *testing.T) {
	_, err := Parse(arrayOf("FROBNICATE"))
	assert.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseRejectsNonArrayFrame(t *testing.T) {
	_, err := Parse(resp.SimpleString("PING"))
	assert.ErrorIs(t, err, ErrNotArray)
}

func TestParseWrongArity(t *testing.T) {
	_, err := Parse(arrayOf("GET"))
	assert.ErrorIs(t, err, ErrWrongArity)

	_, err = Parse(arrayOf("GET", "a", "b"))
	assert.ErrorIs(t, err, ErrWrongArity)
}

func TestParseIsCaseInsensitive(t *testing.T) {
	cmd, err := Parse(arrayOf("get", "key"))
	require.NoError(t, err)
	assert.Equal(t, KindGet, cmd.Kind)
	assert.Equal(t, "key", cmd.Key)
}

func TestParseSetOptions(t *testing.T) {
	cmd, err := Parse(arrayOf("SET", "k", "v", "NX", "EX", "10"))
	require.NoError(t, err)
	assert.True(t, cmd.SetMods.NX)
	assert.True(t, cmd.SetMods.HasExpire)
	assert.Equal(t, int64(10), cmd.SetMods.ExpireSeconds)
}

func TestParseSetRejectsConflictingMods(t *testing.T) {
	_, err := Parse(arrayOf("SET", "k", "v", "NX", "XX"))
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestParseIncrByDefersMalformedNumberToDispatch(t *testing.T) {
	cmd, err := Parse(arrayOf("INCRBY", "k", "notanumber"))
	require.NoError(t, err)
	assert.Equal(t, KindIncrBy, cmd.Kind)
	assert.True(t, cmd.NumericError)
}

func TestParseZAddCollectsScoredMembers(t *testing.T) {
	cmd, err := Parse(arrayOf("ZADD", "z", "1", "a", "2", "b"))
	require.NoError(t, err)
	require.Len(t, cmd.ScoredMembers, 2)
	assert.Equal(t, ScoredMember{Score: 1, Member: "a"}, cmd.ScoredMembers[0])
	assert.Equal(t, ScoredMember{Score: 2, Member: "b"}, cmd.ScoredMembers[1])
}

func TestParseZAddWrongArityOnUnevenPairs(t *testing.T) {
	_, err := Parse(arrayOf("ZADD", "z", "1", "a", "2"))
	assert.ErrorIs(t, err, ErrWrongArity)
}

func TestParseLRangeNegativeIndices(t *testing.T) {
	cmd, err := Parse(arrayOf("LRANGE", "l", "-2", "-1"))
	require.NoError(t, err)
	assert.Equal(t, int64(-2), cmd.Start)
	assert.Equal(t, int64(-1), cmd.Stop)
}

func TestParseMSetCollectsPairs(t *testing.T) {
	cmd, err := Parse(arrayOf("MSET", "a", "1", "b", "2"))
	require.NoError(t, err)
	require.Len(t, cmd.MSetPairs, 2)
	assert.Equal(t, "a", cmd.MSetPairs[0].Field)
	assert.Equal(t, []byte("1"), cmd.MSetPairs[0].Value)
}

func TestParseMSetOddArgsIsWrongArity(t *testing.T) {
	_, err := Parse(arrayOf("MSET", "a", "1", "b"))
	assert.ErrorIs(t, err, ErrWrongArity)
}

func TestParseExpireDefersBadSeconds(t *testing.T) {
	cmd, err := Parse(arrayOf("EXPIRE", "k", "soon"))
	require.NoError(t, err)
	assert.True(t, cmd.NumericError)
}
