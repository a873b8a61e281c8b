package ws

import (
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/monitoring"
	"github.com/GriffinCanCode/ConsoleKit/internal/session"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
)

// outputPollInterval is how often the output buffer is drained toward the
// client.
const outputPollInterval = 30 * time.Millisecond

// Message is the wire format for both directions
type Message struct {
	Type string `json:"type"`
	Data string `json:"data,omitempty"`
	Cols int    `json:"cols,omitempty"`
	Rows int    `json:"rows,omitempty"`
}

// Handler manages WebSocket connections to console sessions
type Handler struct {
	sessions *session.Manager
	log      *logging.Logger
	metrics  *monitoring.Metrics
	origins  []string
	upgrader websocket.Upgrader
}

// NewHandler creates a new WebSocket handler. metrics may be nil.
// allowedOrigins lists cross-origin clients permitted to attach;
// same-origin requests always pass, and "*" allows any origin.
func NewHandler(sessions *session.Manager, log *logging.Logger, metrics *monitoring.Metrics, allowedOrigins []string) *Handler {
	if log == nil {
		log = logging.NewNop()
	}
	h := &Handler{
		sessions: sessions,
		log:      log.Named("ws"),
		metrics:  metrics,
		origins:  allowedOrigins,
	}
	h.upgrader = websocket.Upgrader{CheckOrigin: h.checkOrigin}
	return h
}

// checkOrigin admits same-origin requests plus the configured allowlist.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		// Non-browser clients send no Origin header.
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	for _, allowed := range h.origins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}
	return false
}

// HandleConnection upgrades the request and attaches it to the session
// named in the route.
func (h *Handler) HandleConnection(c *gin.Context) {
	sessionID := id.SessionID(c.Param("id"))
	if _, err := h.sessions.GetSession(sessionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()

	if h.metrics != nil {
		h.metrics.IncWSConnections()
		defer h.metrics.DecWSConnections()
	}

	// Serialize writes: the output pump and the control responses share
	// the connection.
	var writeMu sync.Mutex
	send := func(msg Message) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		return conn.WriteJSON(msg)
	}

	send(Message{Type: "system", Data: "attached to " + sessionID.String()})

	done := make(chan struct{})
	defer close(done)
	go h.pumpOutput(sessionID, send, done)

	// Listen for messages
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			h.log.Debug("WebSocket read ended", zap.Error(err))
			return
		}
		if h.metrics != nil {
			h.metrics.RecordWSMessage("in", msg.Type)
		}

		switch msg.Type {
		case "input":
			if err := h.sessions.Write(sessionID, []byte(msg.Data)); err != nil {
				send(Message{Type: "error", Data: err.Error()})
			}
		case "resize":
			if err := h.sessions.Resize(sessionID, msg.Cols, msg.Rows); err != nil {
				send(Message{Type: "error", Data: err.Error()})
			}
		case "ping":
			send(Message{Type: "pong"})
		default:
			send(Message{Type: "error", Data: "unknown message type"})
		}
	}
}

// pumpOutput streams the session output buffer to the client until the
// connection goes away or the session closes.
func (h *Handler) pumpOutput(sessionID id.SessionID, send func(Message) error, done <-chan struct{}) {
	ticker := time.NewTicker(outputPollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			out, err := h.sessions.Read(sessionID)
			if err != nil {
				return
			}
			if len(out) == 0 {
				continue
			}
			if h.metrics != nil {
				h.metrics.RecordWSMessage("out", "output")
			}
			if err := send(Message{Type: "output", Data: string(out)}); err != nil {
				return
			}
		}
	}
}
