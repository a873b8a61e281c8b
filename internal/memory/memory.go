package memory

import (
	"errors"
	"fmt"
	"io"
)

// ErrCopyFailed reports a rejected byte copy to or from caller memory.
var ErrCopyFailed = errors.New("memory: copy failed")

// Sink receives bytes copied out of the console, one at a time.
// Offset is the logical position within the current transfer.
type Sink interface {
	WriteByteAt(off int, c byte) error
}

// Source provides bytes copied into the console, one at a time.
// Offset is the logical position within the current transfer.
type Source interface {
	ReadByteAt(off int) (byte, error)
}

// Buffer is an in-process byte region usable as both Sink and Source.
// Out-of-range offsets fail with ErrCopyFailed.
type Buffer struct {
	data []byte
}

// NewBuffer creates a zeroed buffer of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// BufferOf wraps existing bytes without copying them.
func BufferOf(p []byte) *Buffer {
	return &Buffer{data: p}
}

// WriteByteAt stores c at offset off.
func (b *Buffer) WriteByteAt(off int, c byte) error {
	if off < 0 || off >= len(b.data) {
		return fmt.Errorf("%w: write offset %d out of range [0,%d)", ErrCopyFailed, off, len(b.data))
	}
	b.data[off] = c
	return nil
}

// ReadByteAt returns the byte at offset off.
func (b *Buffer) ReadByteAt(off int) (byte, error) {
	if off < 0 || off >= len(b.data) {
		return 0, fmt.Errorf("%w: read offset %d out of range [0,%d)", ErrCopyFailed, off, len(b.data))
	}
	return b.data[off], nil
}

// Bytes returns the underlying storage.
func (b *Buffer) Bytes() []byte { return b.data }

// Len returns the buffer size.
func (b *Buffer) Len() int { return len(b.data) }

// WriterSink adapts an io.Writer into a Sink. Bytes arrive in transfer
// order, so the offset is ignored.
type WriterSink struct {
	w io.Writer
}

// NewWriterSink creates a Sink backed by w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w}
}

// WriteByteAt forwards c to the underlying writer.
func (s *WriterSink) WriteByteAt(_ int, c byte) error {
	if _, err := s.w.Write([]byte{c}); err != nil {
		return fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}
	return nil
}

// ReaderSource adapts an io.Reader into a Source. Bytes are consumed in
// transfer order, so the offset is ignored.
type ReaderSource struct {
	r io.Reader
}

// NewReaderSource creates a Source backed by r.
func NewReaderSource(r io.Reader) *ReaderSource {
	return &ReaderSource{r: r}
}

// ReadByteAt returns the next byte from the underlying reader.
func (s *ReaderSource) ReadByteAt(_ int) (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(s.r, buf[:]); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCopyFailed, err)
	}
	return buf[0], nil
}

// FaultSink wraps a Sink and rejects every write at or past FailAt.
// It simulates a copy into a bad caller address.
type FaultSink struct {
	Inner  Sink
	FailAt int
}

// WriteByteAt delegates to the inner sink until the fault offset.
func (s *FaultSink) WriteByteAt(off int, c byte) error {
	if off >= s.FailAt {
		return fmt.Errorf("%w: fault injected at offset %d", ErrCopyFailed, off)
	}
	return s.Inner.WriteByteAt(off, c)
}
