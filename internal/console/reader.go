package console

import (
	"context"

	"github.com/GriffinCanCode/ConsoleKit/internal/memory"
)

// Read blocks until committed input is available, then copies at most one
// line (up to n bytes) into dst. It returns the number of bytes delivered.
//
// End-of-file pairing: when a Ctrl-D follows delivered bytes, the marker is
// pushed back so the next call returns 0 immediately. A Ctrl-D with nothing
// before it is consumed and yields a zero-length read.
//
// Cancellation is cooperative: the context is checked only at the top of
// the wait loop, and cancelling it wakes a blocked reader. A failed copy
// into dst stops the transfer and returns the bytes already moved together
// with the copy error.
func (d *Device) Read(ctx context.Context, dst memory.Sink, n int) (int, error) {
	// Wake the wait loop when the caller gives up.
	stop := context.AfterFunc(ctx, d.wake)
	defer stop()

	d.mu.Lock()
	defer d.mu.Unlock()

	delivered := 0
	for n > 0 {
		for d.ring.Readable() == 0 {
			if ctx.Err() != nil {
				d.rec.IncReadsCancelled()
				return delivered, ErrCancelled
			}
			d.cond.Wait()
		}

		c := d.ring.PopConsumed()

		if c == CtrlD {
			if delivered > 0 {
				// Save the marker for the next call so the
				// caller still gets its zero-byte result.
				d.ring.PushBackConsumed()
			} else {
				d.rec.IncEOFReads()
			}
			break
		}

		if err := dst.WriteByteAt(delivered, c); err != nil {
			return delivered, err
		}
		delivered++
		n--

		if c == '\n' {
			// One read never spans lines.
			break
		}
	}
	return delivered, nil
}
