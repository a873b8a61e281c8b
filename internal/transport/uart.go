package transport

import (
	"io"
	"sync"
)

// txRingSize is the capacity of the async transmit ring.
const txRingSize = 32

// UART adapts an io.Writer into a Transmitter with a buffered async path.
//
// SendSync writes straight through, serialized against the drain goroutine
// so bytes never interleave mid-write. SendAsync enqueues into a fixed ring
// drained in the background; a full ring drops the byte and invokes the
// drop callback.
type UART struct {
	mu     sync.Mutex // guards the ring cursors and closed flag
	cond   *sync.Cond
	buf    [txRingSize]byte
	read   uint64
	write  uint64
	closed bool

	wmu    sync.Mutex // serializes writes to w
	w      io.Writer
	onDrop func()
}

// UARTOption configures a UART.
type UARTOption func(*UART)

// WithDropCallback registers fn to run each time an async byte is dropped.
func WithDropCallback(fn func()) UARTOption {
	return func(u *UART) { u.onDrop = fn }
}

// NewUART creates a UART over w and starts its drain goroutine.
func NewUART(w io.Writer, opts ...UARTOption) *UART {
	u := &UART{w: w}
	u.cond = sync.NewCond(&u.mu)
	for _, opt := range opts {
		opt(u)
	}
	go u.drain()
	return u
}

// SendSync transmits c immediately, blocking until the write completes.
func (u *UART) SendSync(c byte) {
	u.wmu.Lock()
	defer u.wmu.Unlock()
	u.w.Write([]byte{c})
}

// SendAsync enqueues c for background transmission. Never blocks; drops
// when the ring is full.
func (u *UART) SendAsync(c byte) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.closed {
		return
	}
	if u.write-u.read == txRingSize {
		if u.onDrop != nil {
			u.onDrop()
		}
		return
	}
	u.buf[u.write%txRingSize] = c
	u.write++
	u.cond.Signal()
}

// drain moves bytes from the ring to the writer until Close.
func (u *UART) drain() {
	u.mu.Lock()
	for {
		for u.read == u.write && !u.closed {
			u.cond.Wait()
		}
		if u.closed && u.read == u.write {
			u.mu.Unlock()
			return
		}
		c := u.buf[u.read%txRingSize]
		u.read++
		u.mu.Unlock()

		u.wmu.Lock()
		u.w.Write([]byte{c})
		u.wmu.Unlock()

		u.mu.Lock()
	}
}

// Close stops the drain goroutine after the ring empties. Subsequent
// SendAsync calls are ignored.
func (u *UART) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.closed = true
	u.cond.Broadcast()
}
