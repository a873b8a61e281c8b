package session

import (
	"errors"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/GriffinCanCode/ConsoleKit/internal/console"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
	"github.com/GriffinCanCode/ConsoleKit/internal/transport"
)

// ErrSessionNotFound reports an unknown session ID.
var ErrSessionNotFound = errors.New("session: not found")

// ErrSessionClosed reports an operation on a terminated session.
var ErrSessionClosed = errors.New("session: closed")

// Session represents an active console session
type Session struct {
	ID         id.SessionID
	Shell      string
	WorkingDir string
	Cols       int
	Rows       int
	StartedAt  time.Time

	// Process management
	cmd  *exec.Cmd
	ptmx *os.File

	// Console plumbing
	dev  *console.Device
	uart *transport.UART
	task *proc.Task

	// Output buffering (echo + shell output)
	out *Buffer

	// Lifecycle
	mu     sync.RWMutex
	closed bool
}

// Device exposes the session's console device.
func (s *Session) Device() *console.Device {
	return s.dev
}

// Closed reports whether the session has terminated.
func (s *Session) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// Buffer is a thread-safe circular buffer for session output. When full,
// the oldest bytes are overwritten.
type Buffer struct {
	data []byte
	size int
	head int
	tail int
	mu   sync.Mutex
}

// NewBuffer creates a new circular output buffer
func NewBuffer(size int) *Buffer {
	return &Buffer{
		data: make([]byte, size),
		size: size,
	}
}

// Write appends data to the buffer
func (b *Buffer) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, c := range p {
		b.data[b.tail] = c
		b.tail = (b.tail + 1) % b.size

		// If buffer is full, move head forward
		if b.tail == b.head {
			b.head = (b.head + 1) % b.size
		}
	}

	return len(p), nil
}

// ReadAll drains all buffered output
func (b *Buffer) ReadAll() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.head == b.tail {
		return []byte{}
	}

	var result []byte
	if b.tail > b.head {
		result = make([]byte, b.tail-b.head)
		copy(result, b.data[b.head:b.tail])
	} else {
		// Buffer wrapped around
		firstPart := b.data[b.head:]
		secondPart := b.data[:b.tail]
		result = make([]byte, len(firstPart)+len(secondPart))
		copy(result, firstPart)
		copy(result[len(firstPart):], secondPart)
	}

	// Clear buffer after reading
	b.head = b.tail

	return result
}

// SessionInfo is the public representation of a session
type SessionInfo struct {
	ID         string    `json:"id"`
	Shell      string    `json:"shell"`
	WorkingDir string    `json:"working_dir"`
	Cols       int       `json:"cols"`
	Rows       int       `json:"rows"`
	StartedAt  time.Time `json:"started_at"`
	Active     bool      `json:"active"`
}
