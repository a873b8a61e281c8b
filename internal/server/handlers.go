package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/session"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
)

// handlers groups the HTTP endpoints and their dependencies
type handlers struct {
	sessions *session.Manager
	table    *proc.Table
}

func newHandlers(sessions *session.Manager, table *proc.Table) *handlers {
	return &handlers{sessions: sessions, table: table}
}

// Root returns service identity
func (h *handlers) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"service": "consolekit",
		"status":  "running",
	})
}

// Health returns liveness and basic counts
func (h *handlers) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "healthy",
		"sessions": h.sessions.ActiveCount(),
	})
}

// ListProcesses returns the live task table
func (h *handlers) ListProcesses(c *gin.Context) {
	infos := h.table.Snapshot()
	if infos == nil {
		infos = []proc.TaskInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"tasks": infos})
}

type createSessionRequest struct {
	Shell      string            `json:"shell"`
	WorkingDir string            `json:"working_dir"`
	Cols       int               `json:"cols"`
	Rows       int               `json:"rows"`
	Env        map[string]string `json:"env"`
}

// CreateSession spawns a new console session
func (h *handlers) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	info, err := h.sessions.CreateSession(req.Shell, req.WorkingDir, req.Cols, req.Rows, req.Env)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, info)
}

// ListSessions returns all known sessions
func (h *handlers) ListSessions(c *gin.Context) {
	sessions := h.sessions.ListSessions()
	if sessions == nil {
		sessions = []session.SessionInfo{}
	}
	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

// GetSession returns one session's info
func (h *handlers) GetSession(c *gin.Context) {
	info, err := h.sessions.GetSession(id.SessionID(c.Param("id")))
	if err != nil {
		status(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

type resizeRequest struct {
	Cols int `json:"cols" binding:"required"`
	Rows int `json:"rows" binding:"required"`
}

// ResizeSession changes a session's pty dimensions
func (h *handlers) ResizeSession(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.sessions.Resize(id.SessionID(c.Param("id")), req.Cols, req.Rows); err != nil {
		status(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "resized"})
}

// KillSession terminates a session
func (h *handlers) KillSession(c *gin.Context) {
	if err := h.sessions.Kill(id.SessionID(c.Param("id"))); err != nil {
		status(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "killed"})
}

// status maps session errors to HTTP codes
func status(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, session.ErrSessionClosed):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
