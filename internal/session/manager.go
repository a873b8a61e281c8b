package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/creack/pty"
	"go.uber.org/zap"

	"github.com/GriffinCanCode/ConsoleKit/internal/console"
	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/memory"
	"github.com/GriffinCanCode/ConsoleKit/internal/monitoring"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
	"github.com/GriffinCanCode/ConsoleKit/internal/transport"
)

// outputBufSize is the per-session output buffer capacity.
const outputBufSize = 1024 * 1024

// Defaults supplies fallback parameters for fields a create request
// leaves empty. Zero values fall back to the environment and then to
// built-in constants.
type Defaults struct {
	Shell      string
	WorkingDir string
	Cols       int
	Rows       int
}

// Manager manages console sessions
type Manager struct {
	sessions sync.Map // map[id.SessionID]*Session
	defaults Defaults
	table    *proc.Table
	log      *logging.Logger
	metrics  *monitoring.Metrics

	mu     sync.Mutex
	active int
}

// NewManager creates a new session manager. metrics may be nil.
func NewManager(defaults Defaults, table *proc.Table, log *logging.Logger, metrics *monitoring.Metrics) *Manager {
	if log == nil {
		log = logging.NewNop()
	}
	return &Manager{
		defaults: defaults,
		table:    table,
		log:      log.Named("session"),
		metrics:  metrics,
	}
}

// CreateSession spawns a shell on a pty behind a new console device
func (m *Manager) CreateSession(shell, workingDir string, cols, rows int, env map[string]string) (*SessionInfo, error) {
	// Default shell: configured default, then the environment
	if shell == "" {
		shell = m.defaults.Shell
	}
	if shell == "" {
		shell = os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/bash"
		}
	}

	// Default working directory
	if workingDir == "" {
		workingDir = m.defaults.WorkingDir
	}
	if workingDir == "" {
		workingDir = os.Getenv("HOME")
		if workingDir == "" {
			workingDir = "/tmp"
		}
	}

	// Default dimensions
	if cols <= 0 {
		cols = m.defaults.Cols
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = m.defaults.Rows
	}
	if rows <= 0 {
		rows = 24
	}

	sessionID := id.NewSessionID()

	// Create command
	cmd := exec.Command(shell)
	cmd.Dir = workingDir

	// Set environment variables
	cmd.Env = os.Environ()
	cmd.Env = append(cmd.Env, "TERM=xterm-256color")
	for key, value := range env {
		cmd.Env = append(cmd.Env, fmt.Sprintf("%s=%s", key, value))
	}

	// Start PTY
	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start PTY: %w", err)
	}

	// Console plumbing: echo shares the output buffer with shell output.
	out := NewBuffer(outputBufSize)
	var uartOpts []transport.UARTOption
	devOpts := []console.Option{
		console.WithLogger(m.log),
	}
	if m.table != nil {
		devOpts = append(devOpts, console.WithDumpHook(m.table.Dump))
	}
	if m.metrics != nil {
		uartOpts = append(uartOpts, transport.WithDropCallback(m.metrics.IncTxDropped))
		devOpts = append(devOpts, console.WithRecorder(m.metrics))
	}
	uart := transport.NewUART(out, uartOpts...)
	dev := console.New(uart, devOpts...)

	task := proc.NewTask(context.Background(), "console-"+sessionID.String())
	if m.table != nil {
		m.table.Register(task)
	}

	session := &Session{
		ID:         sessionID,
		Shell:      shell,
		WorkingDir: workingDir,
		Cols:       cols,
		Rows:       rows,
		StartedAt:  time.Now(),
		cmd:        cmd,
		ptmx:       ptmx,
		dev:        dev,
		uart:       uart,
		task:       task,
		out:        out,
	}

	// Store session
	m.sessions.Store(sessionID, session)
	m.setActive(+1)
	if m.metrics != nil {
		m.metrics.IncSessionsTotal()
	}

	// Deliver cooked lines to the shell
	go m.pumpLines(session)

	// Mirror shell output into the session buffer
	go m.readOutput(session)

	// Monitor process
	go m.monitorProcess(session)

	m.log.Info("session created",
		zap.String("session", sessionID.String()),
		zap.String("shell", shell),
	)

	return session.info(true), nil
}

// pumpLines blocks on the console reader and forwards each committed line
// to the shell's stdin.
func (m *Manager) pumpLines(session *Session) {
	sink := memory.NewWriterSink(session.ptmx)
	for {
		n, err := session.dev.Read(session.task.Context(), sink, console.InputBufSize)
		if errors.Is(err, console.ErrCancelled) {
			return
		}
		if err != nil {
			m.log.Warn("line delivery failed",
				zap.String("session", session.ID.String()),
				zap.Error(err),
			)
			return
		}
		if n == 0 {
			// End of file: the client closed its input stream.
			m.log.Info("console EOF",
				zap.String("session", session.ID.String()))
			return
		}
	}
}

// readOutput continuously reads from the PTY and buffers output
func (m *Manager) readOutput(session *Session) {
	buf := make([]byte, 4096)
	for {
		n, err := session.ptmx.Read(buf)
		if n > 0 {
			session.out.Write(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				m.log.Debug("pty read ended",
					zap.String("session", session.ID.String()),
					zap.Error(err),
				)
			}
			return
		}
	}
}

// monitorProcess waits for the shell to exit and cleans up
func (m *Manager) monitorProcess(session *Session) {
	session.cmd.Wait()
	m.teardown(session)
}

// teardown closes a session exactly once.
func (m *Manager) teardown(session *Session) {
	session.mu.Lock()
	if session.closed {
		session.mu.Unlock()
		return
	}
	session.closed = true
	session.mu.Unlock()

	session.task.Kill()
	if m.table != nil {
		m.table.Unregister(session.task.ID)
	}
	session.ptmx.Close()
	session.uart.Close()
	m.setActive(-1)

	m.log.Info("session closed", zap.String("session", session.ID.String()))
}

// Write feeds keystrokes to a session's line editor, one byte at a time
func (m *Manager) Write(sessionID id.SessionID, input []byte) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}
	if session.Closed() {
		return fmt.Errorf("%w: %s", ErrSessionClosed, sessionID)
	}

	for _, c := range input {
		session.dev.HandleByte(c)
	}
	return nil
}

// Read drains buffered output (echo + shell output) from a session
func (m *Manager) Read(sessionID id.SessionID) ([]byte, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return session.out.ReadAll(), nil
}

// Resize changes terminal dimensions
func (m *Manager) Resize(sessionID id.SessionID, cols, rows int) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	session.mu.Lock()
	defer session.mu.Unlock()

	if session.closed {
		return fmt.Errorf("%w: %s", ErrSessionClosed, sessionID)
	}

	session.Cols = cols
	session.Rows = rows

	return pty.Setsize(session.ptmx, &pty.Winsize{
		Rows: uint16(rows),
		Cols: uint16(cols),
	})
}

// Kill terminates a session
func (m *Manager) Kill(sessionID id.SessionID) error {
	session, err := m.lookup(sessionID)
	if err != nil {
		return err
	}

	if session.cmd.Process != nil {
		session.cmd.Process.Kill()
	}
	m.teardown(session)
	m.sessions.Delete(sessionID)

	return nil
}

// ListSessions returns all known sessions
func (m *Manager) ListSessions() []SessionInfo {
	var sessions []SessionInfo

	m.sessions.Range(func(key, value interface{}) bool {
		session := value.(*Session)
		sessions = append(sessions, *session.info(!session.Closed()))
		return true
	})

	return sessions
}

// GetSession retrieves session info
func (m *Manager) GetSession(sessionID id.SessionID) (*SessionInfo, error) {
	session, err := m.lookup(sessionID)
	if err != nil {
		return nil, err
	}
	return session.info(!session.Closed()), nil
}

// ActiveCount returns the number of open sessions.
func (m *Manager) ActiveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.active
}

func (m *Manager) lookup(sessionID id.SessionID) (*Session, error) {
	value, ok := m.sessions.Load(sessionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}
	return value.(*Session), nil
}

func (m *Manager) setActive(delta int) {
	m.mu.Lock()
	m.active += delta
	count := m.active
	m.mu.Unlock()
	if m.metrics != nil {
		m.metrics.SetSessionsActive(count)
	}
}

func (s *Session) info(active bool) *SessionInfo {
	return &SessionInfo{
		ID:         s.ID.String(),
		Shell:      s.Shell,
		WorkingDir: s.WorkingDir,
		Cols:       s.Cols,
		Rows:       s.Rows,
		StartedAt:  s.StartedAt,
		Active:     active,
	}
}
