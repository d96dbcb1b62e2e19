package resp

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeToString(t *testing.T, f Frame) string {
	t.Helper()
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	require.NoError(t, Encode(w, f))
	require.NoError(t, w.Flush())
	return buf.String()
}

func TestEncodeSimpleString(t *testing.T) {
	assert.Equal(t, "+OK\r\n", encodeToString(t, EncodeOK()))
}

func TestEncodeError(t *testing.T) {
	assert.Equal(t, "-ERR bad\r\n", encodeToString(t, Error("ERR bad")))
}

func TestEncodeInteger(t *testing.T) {
	assert.Equal(t, ":42\r\n", encodeToString(t, Integer(42)))
}

func TestEncodeBulkString(t *testing.T) {
	assert.Equal(t, "$5\r\nhello\r\n", encodeToString(t, BulkString("hello")))
}

func TestEncodeNullBulk(t *testing.T) {
	assert.Equal(t, "$-1\r\n", encodeToString(t, NullBulk()))
}

func TestEncodeArray(t *testing.T) {
	f := Array([]Frame{Integer(1), Integer(2), BulkString("x")})
	assert.Equal(t, "*3\r\n:1\r\n:2\r\n$1\r\nx\r\n", encodeToString(t, f))
}

func TestEncodeNullArray(t *testing.T) {
	assert.Equal(t, "*-1\r\n", encodeToString(t, NullArray()))
}
