// Package ws bridges WebSocket clients to console sessions.
//
// Each connection attaches to one session: "input" messages feed raw
// keystrokes to the line editor, and a background pump streams the
// session's output buffer (echo plus shell output) back as "output"
// messages. Resize and ping round out the protocol.
package ws
