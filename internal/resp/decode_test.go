package resp_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/duskkv/duskkv/internal/resp"
)

func TestDecodeCommand_Array(t *testing.T) {
	dec := resp.NewDecoder()

	buf := []byte("*2\r\n$3\r\nGET\r\n$3\r\nkey\r\n")
	v, n, err := dec.DecodeCommand(buf)

	assert.NoError(t, err)
	assert.Equal(t, len(buf), n)
	assert.Equal(t, byte(resp.TypeArray), v.Type)
	assert.Len(t, v.Array, 2)
	assert.Equal(t, "GET", string(v.Array[0].String))
	assert.Equal(t, "key", string(v.Array[1].String))
}

func TestDecodeCommand_ArrayPing(t *testing.T) {
	dec := resp.NewDecoder()

	v, n, err := dec.DecodeCommand([]byte("*1\r\n$4\r\nPING\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 14, n)
	assert.Equal(t, "PING", string(v.Array[0].String))
}

func TestDecodeCommand_InlineBareLF(t *testing.T) {
	dec := resp.NewDecoder()

	v, n, err := dec.DecodeCommand([]byte("PING\n"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
	assert.Len(t, v.Array, 1)
	assert.Equal(t, "PING", string(v.Array[0].String))
}

func TestDecodeCommand_InlineMultipleSpaces(t *testing.T) {
	dec := resp.NewDecoder()

	v, n, err := dec.DecodeCommand([]byte("SET  foo   bar\r\n"))
	assert.NoError(t, err)
	assert.Equal(t, 16, n)
	assert.Equal(t, []string{"SET", "foo", "bar"}, valueStrings(v))
}

func TestDecodeCommand_InlineEmptyLine(t *testing.T) {
	dec := resp.NewDecoder()

	_, _, err := dec.DecodeCommand([]byte("\r\n"))
	var protoErr *resp.ProtocolError
	assert.True(t, errors.As(err, &protoErr))
}

func TestDecodeCommand_Incomplete(t *testing.T) {
	dec := resp.NewDecoder()

	cases := [][]byte{
		[]byte(""),
		[]byte("*2\r\n$3\r\nGET\r\n$3\r\nke"),
		[]byte("*2\r\n$3\r\nGET\r\n"),
		[]byte("*2\r\n"),
		[]byte("PING"),
	}

	for _, c := range cases {
		v, n, err := dec.DecodeCommand(c)
		assert.ErrorIs(t, err, resp.ErrIncomplete, "input %q", c)
		assert.Equal(t, 0, n)
		assert.Equal(t, resp.Value{}, v)
	}
}

func TestDecodeCommand_IncrementalAppend(t *testing.T) {
	dec := resp.NewDecoder()

	prefix := []byte("*2\r\n$3\r\nGET\r\n$3\r\nke")
	v, n, err := dec.DecodeCommand(prefix)
	assert.ErrorIs(t, err, resp.ErrIncomplete)
	assert.Equal(t, 0, n)

	full := append(append([]byte{}, prefix...), []byte("y\r\n")...)
	v, n, err = dec.DecodeCommand(full)
	assert.NoError(t, err)
	assert.Equal(t, len(full), n)
	assert.Equal(t, []string{"GET", "key"}, valueStrings(v))
}

func TestDecodeCommand_ArrayHeaderRejectsNegativeOrNonNumeric(t *testing.T) {
	dec := resp.NewDecoder()

	for _, in := range []string{"*-1\r\n", "*abc\r\n"} {
		_, _, err := dec.DecodeCommand([]byte(in))
		var protoErr *resp.ProtocolError
		assert.True(t, errors.As(err, &protoErr), "input %q", in)
	}
}

func TestDecodeCommand_ArrayRejectsBareLF(t *testing.T) {
	dec := resp.NewDecoder()

	_, _, err := dec.DecodeCommand([]byte("*1\n$4\r\nPING\r\n"))
	var protoErr *resp.ProtocolError
	assert.True(t, errors.As(err, &protoErr))
}

func TestDecodeCommand_BulkLengthNegativeOrNonNumeric(t *testing.T) {
	dec := resp.NewDecoder()

	for _, in := range []string{"*1\r\n$-5\r\n", "*1\r\n$xx\r\n"} {
		_, _, err := dec.DecodeCommand([]byte(in))
		var protoErr *resp.ProtocolError
		assert.True(t, errors.As(err, &protoErr), "input %q", in)
	}
}

// TestDecodeCommand_RoundTrip covers P3: encoding an arbitrary command
// vector as an array frame and decoding it again yields the original
// vector and consumes exactly the produced bytes.
func TestDecodeCommand_RoundTrip(t *testing.T) {
	vectors := [][]string{
		{"PING"},
		{"SET", "foo", "bar"},
		{"MSET", "a", "1", "b", "2"},
		{"GET", string([]byte{0x00, 0x01, 0xff, '\r', '\n'})},
	}

	dec := resp.NewDecoder()
	for _, vec := range vectors {
		args := make([]resp.Value, len(vec))
		for i, s := range vec {
			args[i] = resp.MakeBulkStringFromString(s)
		}
		frame, err := resp.SerializeCommand(vec[0], args[1:])
		assert.NoError(t, err)

		v, n, err := dec.DecodeCommand(frame)
		assert.NoError(t, err)
		assert.Equal(t, len(frame), n)
		assert.Equal(t, vec, valueStrings(v))
	}
}

// TestDecodeCommand_Incrementality covers P2: for any split point of a
// valid framed command, feeding the prefix yields Incomplete (or Command
// iff the whole thing is present) and Incomplete never consumes bytes.
func TestDecodeCommand_Incrementality(t *testing.T) {
	frame, err := resp.SerializeCommand("SET", []resp.Value{
		resp.MakeBulkStringFromString("key"),
		resp.MakeBulkStringFromString("value"),
	})
	assert.NoError(t, err)

	dec := resp.NewDecoder()
	for i := 0; i <= len(frame); i++ {
		v, n, err := dec.DecodeCommand(frame[:i])
		if i < len(frame) {
			assert.ErrorIs(t, err, resp.ErrIncomplete, "prefix length %d", i)
			assert.Equal(t, 0, n)
		} else {
			assert.NoError(t, err)
			assert.Equal(t, len(frame), n)
			assert.Equal(t, []string{"SET", "key", "value"}, valueStrings(v))
		}
	}
}

func valueStrings(v resp.Value) []string {
	out := make([]string, len(v.Array))
	for i, el := range v.Array {
		out[i] = string(el.String)
	}
	return out
}
