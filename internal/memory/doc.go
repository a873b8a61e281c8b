// Package memory abstracts byte-at-a-time copies between the console core
// and caller-provided destinations or sources.
//
// The console never touches caller memory directly; it moves single bytes
// through the Sink and Source interfaces, which stand in for address-space
// aware copies. A failed copy is recoverable: it ends the current transfer
// but never corrupts console state.
package memory
