package transport

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeBuffer is a goroutine-safe bytes.Buffer.
type safeBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *safeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *safeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

// gateWriter blocks every Write until released. entered receives one value
// per Write call as it starts.
type gateWriter struct {
	entered chan struct{}
	release chan struct{}
	out     safeBuffer
}

func newGateWriter() *gateWriter {
	return &gateWriter{
		entered: make(chan struct{}, 64),
		release: make(chan struct{}),
	}
}

func (g *gateWriter) Write(p []byte) (int, error) {
	g.entered <- struct{}{}
	<-g.release
	return g.out.Write(p)
}

func TestUARTSendSync(t *testing.T) {
	var out safeBuffer
	u := NewUART(&out)
	defer u.Close()

	u.SendSync('h')
	u.SendSync('i')

	assert.Equal(t, "hi", out.String())
}

func TestUARTSendAsyncDrains(t *testing.T) {
	var out safeBuffer
	u := NewUART(&out)
	defer u.Close()

	for _, c := range []byte("hello") {
		u.SendAsync(c)
	}

	assert.Eventually(t, func() bool {
		return out.String() == "hello"
	}, time.Second, time.Millisecond)
}

func TestUARTSendAsyncDropsWhenFull(t *testing.T) {
	gate := newGateWriter()

	drops := 0
	var dropMu sync.Mutex
	u := NewUART(gate, WithDropCallback(func() {
		dropMu.Lock()
		drops++
		dropMu.Unlock()
	}))

	// First byte is popped by the drain goroutine, which then blocks in
	// Write. The ring can now hold exactly txRingSize more bytes.
	u.SendAsync('x')
	<-gate.entered

	for i := 0; i < txRingSize; i++ {
		u.SendAsync('y')
	}

	u.SendAsync('z')
	dropMu.Lock()
	assert.Equal(t, 1, drops)
	dropMu.Unlock()

	close(gate.release)

	require.Eventually(t, func() bool {
		return len(gate.out.String()) == 1+txRingSize
	}, time.Second, time.Millisecond)

	u.Close()
}

func TestUARTCloseIgnoresLaterSends(t *testing.T) {
	var out safeBuffer
	u := NewUART(&out)
	u.Close()

	u.SendAsync('x')

	time.Sleep(10 * time.Millisecond)
	assert.NotContains(t, out.String(), "x")
}
