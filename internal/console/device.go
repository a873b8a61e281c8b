package console

import (
	"errors"
	"sync"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
	"github.com/GriffinCanCode/ConsoleKit/internal/transport"
)

// ErrCancelled reports that a blocking read was abandoned because its
// context was cancelled while waiting for input.
var ErrCancelled = errors.New("console: read cancelled")

// Recorder counts line discipline events. Implemented by
// monitoring.Metrics; a no-op recorder is used when none is configured.
type Recorder interface {
	IncBytesReceived()
	IncLinesCommitted()
	IncBytesDropped()
	IncReadsCancelled()
	IncEOFReads()
	AddEchoBytes(n int)
}

type nopRecorder struct{}

func (nopRecorder) IncBytesReceived()  {}
func (nopRecorder) IncLinesCommitted() {}
func (nopRecorder) IncBytesDropped()   {}
func (nopRecorder) IncReadsCancelled() {}
func (nopRecorder) IncEOFReads()       {}
func (nopRecorder) AddEchoBytes(int)   {}

// Device is one console: the input ring, its lock and wait condition, and
// the transmit channel for echo and writes. Both execution contexts access
// the ring only through this lock.
type Device struct {
	ID id.DeviceID

	mu   sync.Mutex
	cond *sync.Cond
	ring Ring

	tx   transport.Transmitter
	dump func()
	log  *logging.Logger
	rec  Recorder
}

// Option configures a Device.
type Option func(*Device)

// WithLogger sets the device logger.
func WithLogger(log *logging.Logger) Option {
	return func(d *Device) { d.log = log }
}

// WithRecorder sets the metrics recorder.
func WithRecorder(rec Recorder) Option {
	return func(d *Device) { d.rec = rec }
}

// WithDumpHook sets the diagnostics hook invoked on Ctrl-P.
func WithDumpHook(fn func()) Option {
	return func(d *Device) { d.dump = fn }
}

// New creates a console device transmitting on tx. The device lives for
// the remainder of the process; there is no teardown.
func New(tx transport.Transmitter, opts ...Option) *Device {
	d := &Device{
		ID:  id.NewDeviceID(),
		tx:  tx,
		log: logging.NewNop(),
		rec: nopRecorder{},
	}
	d.cond = sync.NewCond(&d.mu)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// wake broadcasts the ring condition. Used by cancellation so a blocked
// reader re-checks its context.
func (d *Device) wake() {
	d.mu.Lock()
	d.cond.Broadcast()
	d.mu.Unlock()
}
