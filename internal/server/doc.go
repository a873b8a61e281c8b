// Package server exposes the console service over HTTP.
//
// Routes:
//   - GET  /health                health probe
//   - GET  /metrics               Prometheus exposition
//   - GET  /processes             live task listing (same data as Ctrl-P)
//   - POST /sessions              create a console session
//   - GET  /sessions              list sessions
//   - GET  /sessions/:id          session info
//   - POST /sessions/:id/resize   resize the pty
//   - DELETE /sessions/:id        kill a session
//   - GET  /sessions/:id/stream   WebSocket attach
package server
