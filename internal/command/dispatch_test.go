package command

import (
	"testing"

	"github.com/armandparser/redicache/internal/resp"
	"github.com/armandparser/redicache/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState() (*store.Store, *ConnState) {
	return store.NewStore(4), NewConnState()
}

func exec(st *store.Store, conn *ConnState, args ...string) resp.Frame {
	return Execute(st, conn, arrayOf(args...), 0)
}

func TestDispatchSetThenGet(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "SET", "k", "v")
	assert.Equal(t, resp.EncodeOK(), reply)

	reply = exec(st, conn, "GET", "k")
	assert.Equal(t, resp.Bulk([]byte("v")), reply)
}

func TestDispatchGetMissingKeyIsNullBulk(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "GET", "missing")
	assert.True(t, reply.IsNull())
}

func TestDispatchWrongTypeError(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "LPUSH", "k", "v")
	reply := exec(st, conn, "GET", "k")
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Str, "WRONGTYPE")
}

func TestDispatchIncrByOverflowReportsNotInteger(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "SET", "k", "9223372036854775807")
	reply := exec(st, conn, "INCR", "k")
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Str, "not an integer")
}

func TestDispatchIncrByMalformedArgDefersToExecution(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "INCRBY", "k", "notanumber")
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Str, "not an integer")
}

func TestDispatchSelectSwitchesDatabase(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "SET", "k", "db0")
	reply := exec(st, conn, "SELECT", "1")
	assert.Equal(t, resp.EncodeOK(), reply)

	reply = exec(st, conn, "GET", "k")
	assert.True(t, reply.IsNull())

	exec(st, conn, "SELECT", "0")
	reply = exec(st, conn, "GET", "k")
	assert.Equal(t, resp.Bulk([]byte("db0")), reply)
}

func TestDispatchSelectOutOfRange(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "SELECT", "99")
	require.Equal(t, resp.KindError, reply.Kind)
	assert.Contains(t, reply.Str, "invalid DB index")
}

func TestDispatchMGetMSet(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "MSET", "a", "1", "b", "2")
	reply := exec(st, conn, "MGET", "a", "b", "missing")
	require.Equal(t, resp.KindArray, reply.Kind)
	require.Len(t, reply.Array, 3)
	assert.Equal(t, resp.Bulk([]byte("1")), reply.Array[0])
	assert.Equal(t, resp.Bulk([]byte("2")), reply.Array[1])
	assert.True(t, reply.Array[2].IsNull())
}

func TestDispatchExpireAndTTL(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "SET", "k", "v")
	reply := exec(st, conn, "EXPIRE", "k", "100")
	assert.Equal(t, resp.Integer(1), reply)

	reply = exec(st, conn, "TTL", "k")
	require.Equal(t, resp.KindInteger, reply.Kind)
	assert.True(t, reply.Int > 0)
}

func TestDispatchTTLMissingKeyIsMinusTwo(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "TTL", "missing")
	assert.Equal(t, resp.Integer(-2), reply)
}

func TestDispatchRPushLRange(t *testing.T) {
	st, conn := newTestState()
	reply := exec(st, conn, "RPUSH", "l", "a", "b", "c")
	assert.Equal(t, resp.Integer(3), reply)

	reply = exec(st, conn, "LRANGE", "l", "0", "-1")
	require.Equal(t, resp.KindArray, reply.Kind)
	require.Len(t, reply.Array, 3)
	assert.Equal(t, resp.Bulk([]byte("a")), reply.Array[0])
	assert.Equal(t, resp.Bulk([]byte("c")), reply.Array[2])
}

func TestDispatchLPushOrderMatchesRedisSemantics(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "LPUSH", "l", "a", "b", "c")
	reply := exec(st, conn, "LRANGE", "l", "0", "-1")
	require.Len(t, reply.Array, 3)
	assert.Equal(t, resp.Bulk([]byte("c")), reply.Array[0])
	assert.Equal(t, resp.Bulk([]byte("b")), reply.Array[1])
	assert.Equal(t, resp.Bulk([]byte("a")), reply.Array[2])
}

func TestDispatchSAddSInterSUnionSDiff(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "SADD", "s1", "a", "b", "c")
	exec(st, conn, "SADD", "s2", "b", "c", "d")

	reply := exec(st, conn, "SINTER", "s1", "s2")
	assert.ElementsMatch(t, []string{"b", "c"}, frameBulkStrings(reply))

	reply = exec(st, conn, "SUNION", "s1", "s2")
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, frameBulkStrings(reply))

	reply = exec(st, conn, "SDIFF", "s1", "s2")
	assert.ElementsMatch(t, []string{"a"}, frameBulkStrings(reply))
}

func TestDispatchZAddZRangeZScore(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "ZADD", "z", "1", "a", "2", "b", "3", "c")

	reply := exec(st, conn, "ZRANGE", "z", "0", "-1")
	assert.Equal(t, []string{"a", "b", "c"}, frameBulkStrings(reply))

	reply = exec(st, conn, "ZSCORE", "z", "b")
	assert.Equal(t, resp.Bulk([]byte("2")), reply)

	reply = exec(st, conn, "ZRANK", "z", "c")
	assert.Equal(t, resp.Integer(2), reply)
}

func TestDispatchHSetHGetHLen(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "HSET", "h", "f1", "v1")
	exec(st, conn, "HSET", "h", "f2", "v2")

	reply := exec(st, conn, "HGET", "h", "f1")
	assert.Equal(t, resp.Bulk([]byte("v1")), reply)

	reply = exec(st, conn, "HLEN", "h")
	assert.Equal(t, resp.Integer(2), reply)
}

func TestDispatchHDelMultipleFields(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "HSET", "u", "name", "al")
	reply := exec(st, conn, "HDEL", "u", "name", "age")
	assert.Equal(t, resp.Integer(1), reply)

	reply = exec(st, conn, "HEXISTS", "u", "name")
	assert.Equal(t, resp.Integer(0), reply)
}

func TestDispatchDelCountsRemovedKeys(t *testing.T) {
	st, conn := newTestState()
	exec(st, conn, "SET", "a", "1")
	exec(st, conn, "SET", "b", "2")
	reply := exec(st, conn, "DEL", "a", "b", "missing")
	assert.Equal(t, resp.Integer(2), reply)
}

func frameBulkStrings(f resp.Frame) []string {
	out := make([]string, len(f.Array))
	for i, item := range f.Array {
		out[i] = string(item.Bulk)
	}
	return out
}
