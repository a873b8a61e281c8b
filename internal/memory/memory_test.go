package memory

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferRoundTrip(t *testing.T) {
	buf := NewBuffer(4)

	for i, c := range []byte("abcd") {
		require.NoError(t, buf.WriteByteAt(i, c))
	}
	assert.Equal(t, []byte("abcd"), buf.Bytes())

	c, err := buf.ReadByteAt(2)
	require.NoError(t, err)
	assert.Equal(t, byte('c'), c)
}

func TestBufferOutOfRange(t *testing.T) {
	buf := NewBuffer(2)

	err := buf.WriteByteAt(2, 'x')
	assert.ErrorIs(t, err, ErrCopyFailed)

	err = buf.WriteByteAt(-1, 'x')
	assert.ErrorIs(t, err, ErrCopyFailed)

	_, err = buf.ReadByteAt(5)
	assert.ErrorIs(t, err, ErrCopyFailed)
}

func TestBufferOf(t *testing.T) {
	p := []byte("hi")
	buf := BufferOf(p)

	require.NoError(t, buf.WriteByteAt(0, 'H'))
	assert.Equal(t, []byte("Hi"), p)
}

func TestWriterSink(t *testing.T) {
	var out bytes.Buffer
	sink := NewWriterSink(&out)

	require.NoError(t, sink.WriteByteAt(0, 'o'))
	require.NoError(t, sink.WriteByteAt(1, 'k'))
	assert.Equal(t, "ok", out.String())
}

func TestReaderSource(t *testing.T) {
	src := NewReaderSource(strings.NewReader("ab"))

	c, err := src.ReadByteAt(0)
	require.NoError(t, err)
	assert.Equal(t, byte('a'), c)

	c, err = src.ReadByteAt(1)
	require.NoError(t, err)
	assert.Equal(t, byte('b'), c)

	_, err = src.ReadByteAt(2)
	assert.ErrorIs(t, err, ErrCopyFailed)
}

func TestFaultSink(t *testing.T) {
	buf := NewBuffer(8)
	sink := &FaultSink{Inner: buf, FailAt: 2}

	require.NoError(t, sink.WriteByteAt(0, 'a'))
	require.NoError(t, sink.WriteByteAt(1, 'b'))

	err := sink.WriteByteAt(2, 'c')
	assert.ErrorIs(t, err, ErrCopyFailed)
	assert.Equal(t, []byte("ab"), buf.Bytes()[:2])
}
