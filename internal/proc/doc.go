// Package proc tracks reader tasks and implements cooperative
// cancellation and the Ctrl-P diagnostics dump.
//
// A Task wraps a context: killing the task cancels it, and a console read
// blocked on that context notices at its next wakeup. Nothing is ever
// interrupted preemptively. The Table holds all live tasks and renders the
// process listing, either into the structured log (the Ctrl-P hook) or as
// a snapshot for the HTTP API.
package proc
