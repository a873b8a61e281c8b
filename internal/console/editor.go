package console

import "go.uber.org/zap"

// HandleByte is the producer upcall, invoked once per received raw byte.
// It runs in the receive path and never blocks: over-capacity input is
// echoed but silently dropped, since this context cannot fail or sleep.
func (d *Device) HandleByte(c byte) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.rec.IncBytesReceived()

	switch c {
	case CtrlP:
		// Diagnostics only, no buffer mutation.
		if d.dump != nil {
			d.dump()
		}

	case CtrlU:
		// Roll the in-progress line back to its start.
		for d.ring.Editing() > 0 && d.ring.LastPending() != '\n' {
			d.ring.EraseLastPending()
			d.putc(backspace)
		}

	case CtrlH, Del:
		if d.ring.Editing() > 0 {
			d.ring.EraseLastPending()
			d.putc(backspace)
		}

	default:
		if c == 0 {
			return
		}
		if c == '\r' {
			c = '\n'
		}

		// Echo before touching the buffer so the user sees the
		// keystroke even when the append below is dropped.
		d.putc(int(c))

		if d.ring.Free() == 0 {
			d.rec.IncBytesDropped()
			d.log.Debug("input byte dropped, buffer full",
				zap.String("device", d.ID.String()))
			return
		}
		d.ring.AppendPending(c)

		if c == '\n' || c == CtrlD || d.ring.Free() == 0 {
			// A whole line (or forced line) has arrived; hand it
			// to the reader. Signalling with no waiter is safe.
			d.ring.Commit()
			d.rec.IncLinesCommitted()
			d.cond.Signal()
		}
	}
}
