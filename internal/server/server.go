package server

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/monitoring"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/session"
	"github.com/GriffinCanCode/ConsoleKit/internal/ws"
)

// Config contains server configuration
type Config struct {
	Host string
	Port string

	// AllowedOrigins is passed to the WebSocket upgrader; same-origin
	// requests always pass.
	AllowedOrigins []string
}

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	sessions *session.Manager
	table    *proc.Table
	log      *logging.Logger
}

// New creates a new server instance. metrics may be nil.
func New(cfg Config, sessions *session.Manager, table *proc.Table, log *logging.Logger, metrics *monitoring.Metrics) *Server {
	if log == nil {
		log = logging.NewNop()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:   router,
		sessions: sessions,
		table:    table,
		log:      log.Named("http"),
	}

	handlers := newHandlers(sessions, table)
	wsHandler := ws.NewHandler(sessions, log, metrics, cfg.AllowedOrigins)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	if metrics != nil {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Diagnostics
	router.GET("/processes", handlers.ListProcesses)

	// Session management
	router.POST("/sessions", handlers.CreateSession)
	router.GET("/sessions", handlers.ListSessions)
	router.GET("/sessions/:id", handlers.GetSession)
	router.POST("/sessions/:id/resize", handlers.ResizeSession)
	router.DELETE("/sessions/:id", handlers.KillSession)

	// WebSocket attach
	router.GET("/sessions/:id/stream", wsHandler.HandleConnection)

	s.http = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Router returns the underlying gin engine. Used by tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Run serves until the listener fails or Close is called.
func (s *Server) Run() error {
	s.log.Info("listening", zap.String("addr", s.http.Addr))
	return s.http.ListenAndServe()
}

// Close shuts the server down gracefully.
func (s *Server) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.http.Shutdown(ctx)
}
