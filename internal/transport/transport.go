package transport

import "sync"

// Transmitter sends single bytes toward the terminal.
type Transmitter interface {
	// SendSync transmits c before returning. It may block at the
	// transport layer.
	SendSync(c byte)

	// SendAsync enqueues c for transmission and returns immediately.
	// The byte is dropped if the transmit ring is full.
	SendAsync(c byte)
}

// Capture is an in-memory Transmitter for tests. Both send paths append to
// the same output, preserving arrival order.
type Capture struct {
	mu  sync.Mutex
	out []byte
}

// NewCapture creates an empty capture transmitter.
func NewCapture() *Capture {
	return &Capture{}
}

// SendSync records c.
func (c *Capture) SendSync(b byte) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = append(c.out, b)
}

// SendAsync records c.
func (c *Capture) SendAsync(b byte) {
	c.SendSync(b)
}

// Output returns a copy of everything sent so far.
func (c *Capture) Output() []byte {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]byte, len(c.out))
	copy(out, c.out)
	return out
}

// String returns the captured output as a string.
func (c *Capture) String() string {
	return string(c.Output())
}

// Reset discards captured output.
func (c *Capture) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.out = c.out[:0]
}
