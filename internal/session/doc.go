// Package session manages pty-backed console sessions.
//
// Each session owns one console device wired between a client and a shell:
// client keystrokes drive the line editor, echo and shell output share the
// session's output buffer, and a pump goroutine delivers each cooked line
// to the shell's pty. Killing a session cancels its reader task, which a
// blocked read notices on its next wakeup.
//
// Architecture:
//   - keystrokes -> Device.HandleByte (editing, echo)
//   - committed lines -> pump -> pty master -> shell
//   - shell output + echo -> output buffer -> client
package session
