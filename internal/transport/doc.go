// Package transport provides the raw byte transmit path for the console.
//
// A Transmitter exposes two sends with different blocking rules:
//   - SendSync may block until the byte is on the wire; the console uses it
//     for echo so typed characters appear immediately.
//   - SendAsync is a best-effort enqueue that never blocks; the console uses
//     it for bulk writes. When the transmit ring is full the byte is dropped.
//
// UART adapts any io.Writer (a pty master, a socket, a file) into this
// split, draining the async ring from a background goroutine.
package transport
