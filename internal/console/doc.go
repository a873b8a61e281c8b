// Package console implements a cooked-mode console line discipline.
//
// A Device owns a fixed 128-byte circular input buffer shared between two
// execution contexts with incompatible blocking rules:
//
//   - HandleByte is the producer upcall, invoked once per received byte.
//     It applies the editing rules (backspace, kill-line, end-of-file,
//     carriage-return normalization), echoes keystrokes, and never blocks.
//   - Read is the consumer. It blocks until a committed line (or an
//     end-of-file marker) is available, then drains at most one line into
//     a caller-supplied sink.
//
// The buffer is delimited by three monotonically increasing cursors:
// consumed <= committed <= pending <= consumed+128. Bytes in
// [consumed, committed) are visible to readers; [committed, pending) holds
// the line still being typed. A newline, a Ctrl-D, or a full buffer commits
// the pending region and wakes the reader through the device's condition
// variable.
//
// Editing keys:
//   - Ctrl-H / DEL: erase the last pending character
//   - Ctrl-U: erase the whole pending line
//   - Ctrl-D: end of file for the current read
//   - Ctrl-P: invoke the diagnostics hook (task dump)
package console
