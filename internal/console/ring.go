package console

// InputBufSize is the fixed capacity of the input ring.
const InputBufSize = 128

// Ring is the circular input buffer. Cursors grow without bound; storage
// position for a cursor is its value mod InputBufSize. The ordering
// invariant consumed <= committed <= pending <= consumed+InputBufSize holds
// at all times.
//
// All methods require the owning device's lock. Preconditions are enforced
// by callers, not re-checked here.
type Ring struct {
	buf       [InputBufSize]byte
	consumed  uint64 // next byte to hand to a reader
	committed uint64 // end of the last finished line
	pending   uint64 // next slot the editor writes
}

// Readable returns the number of committed bytes not yet consumed.
func (r *Ring) Readable() int {
	return int(r.committed - r.consumed)
}

// Editing returns the number of pending, uncommitted bytes.
func (r *Ring) Editing() int {
	return int(r.pending - r.committed)
}

// Used returns the total number of buffered bytes.
func (r *Ring) Used() int {
	return int(r.pending - r.consumed)
}

// Free returns the remaining capacity.
func (r *Ring) Free() int {
	return InputBufSize - r.Used()
}

// AppendPending stores c at the pending cursor. Caller must ensure
// Free() > 0.
func (r *Ring) AppendPending(c byte) {
	r.buf[r.pending%InputBufSize] = c
	r.pending++
}

// EraseLastPending removes the most recent pending byte. Caller must
// ensure Editing() > 0; erasing never crosses into committed bytes.
func (r *Ring) EraseLastPending() {
	r.pending--
}

// LastPending returns the byte just before the pending cursor. Caller must
// ensure Editing() > 0.
func (r *Ring) LastPending() byte {
	return r.buf[(r.pending-1)%InputBufSize]
}

// Commit makes all pending bytes visible to readers.
func (r *Ring) Commit() {
	r.committed = r.pending
}

// PopConsumed removes and returns the next reader-visible byte. Caller
// must ensure Readable() > 0.
func (r *Ring) PopConsumed() byte {
	c := r.buf[r.consumed%InputBufSize]
	r.consumed++
	return c
}

// PushBackConsumed re-queues the byte just popped so the next read sees it
// again.
func (r *Ring) PushBackConsumed() {
	r.consumed--
}

// invariantHolds reports whether the cursor ordering invariant is intact.
func (r *Ring) invariantHolds() bool {
	return r.consumed <= r.committed &&
		r.committed <= r.pending &&
		r.pending <= r.consumed+InputBufSize
}
