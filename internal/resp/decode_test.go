package resp

import (
	"bufio"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeString(t *testing.T, wire string) Frame {
	t.Helper()
	d := NewDecoder(bufio.NewReader(strings.NewReader(wire)))
	f, err := d.Decode()
	require.NoError(t, err)
	return f
}

func TestDecodeSimpleString(t *testing.T) {
	f := decodeString(t, "+OK\r\n")
	assert.Equal(t, KindSimpleString, f.Kind)
	assert.Equal(t, "OK", f.Str)
}

func TestDecodeError(t *testing.T) {
	f := decodeString(t, "-ERR boom\r\n")
	assert.Equal(t, KindError, f.Kind)
	assert.Equal(t, "ERR boom", f.Str)
}

func TestDecodeInteger(t *testing.T) {
	f := decodeString(t, ":1000\r\n")
	assert.Equal(t, KindInteger, f.Kind)
	assert.EqualValues(t, 1000, f.Int)
}

func TestDecodeBulkString(t *testing.T) {
	f := decodeString(t, "$5\r\nhello\r\n")
	assert.Equal(t, KindBulkString, f.Kind)
	assert.False(t, f.BulkNull)
	assert.Equal(t, []byte("hello"), f.Bulk)
}

func TestDecodeNullBulk(t *testing.T) {
	f := decodeString(t, "$-1\r\n")
	assert.True(t, f.IsNull())
}

func TestDecodeCommandArray(t *testing.T) {
	f := decodeString(t, "*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n")
	assert.Equal(t, KindArray, f.Kind)
	require.Len(t, f.Array, 2)
	assert.Equal(t, []byte("GET"), f.Array[0].Bulk)
	assert.Equal(t, []byte("foo"), f.Array[1].Bulk)
}

func TestDecodeNullArray(t *testing.T) {
	f := decodeString(t, "*-1\r\n")
	assert.True(t, f.IsNull())
}

func TestDecodeBulkLengthOverLimitRejected(t *testing.T) {
	d := NewDecoder(bufio.NewReader(strings.NewReader("$999999999999\r\n")))
	_, err := d.Decode()
	assert.Error(t, err)
}
