package session

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ConsoleKit/internal/config"
	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/shared/id"
)

func TestBufferWrapAround(t *testing.T) {
	b := NewBuffer(4)

	b.Write([]byte("abc"))
	assert.Equal(t, []byte("abc"), b.ReadAll())

	// Drained buffer reads empty.
	assert.Empty(t, b.ReadAll())

	// Overfill: only the newest size-1 bytes survive.
	b.Write([]byte("123456"))
	assert.Equal(t, []byte("456"), b.ReadAll())
}

func TestWriteUnknownSession(t *testing.T) {
	m := NewManager(Defaults{}, nil, logging.NewNop(), nil)

	err := m.Write(id.NewSessionID(), []byte("x"))
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = m.Read(id.NewSessionID())
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestConfiguredDefaultsReachSession(t *testing.T) {
	t.Setenv("CONSOLE_SHELL", "/bin/cat")
	t.Setenv("CONSOLE_WORKDIR", "/tmp")
	t.Setenv("CONSOLE_COLS", "100")
	t.Setenv("CONSOLE_ROWS", "40")

	cfg := config.LoadOrDefault()
	m := NewManager(Defaults{
		Shell:      cfg.Console.Shell,
		WorkingDir: cfg.Console.WorkingDir,
		Cols:       cfg.Console.Cols,
		Rows:       cfg.Console.Rows,
	}, nil, logging.NewNop(), nil)

	// Empty request fields fall back to the configured values.
	info, err := m.CreateSession("", "", 0, 0, nil)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer m.Kill(id.SessionID(info.ID))

	assert.Equal(t, "/bin/cat", info.Shell)
	assert.Equal(t, "/tmp", info.WorkingDir)
	assert.Equal(t, 100, info.Cols)
	assert.Equal(t, 40, info.Rows)

	// Explicit request fields still win over the configuration.
	info2, err := m.CreateSession("/bin/cat", "/", 132, 50, nil)
	require.NoError(t, err)
	defer m.Kill(id.SessionID(info2.ID))

	assert.Equal(t, "/", info2.WorkingDir)
	assert.Equal(t, 132, info2.Cols)
	assert.Equal(t, 50, info2.Rows)
}

func TestSessionLifecycle(t *testing.T) {
	table := proc.NewTable(logging.NewNop())
	m := NewManager(Defaults{}, table, logging.NewNop(), nil)

	// cat echoes each cooked line straight back.
	info, err := m.CreateSession("/bin/cat", "/tmp", 80, 24, nil)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	sid := id.SessionID(info.ID)

	assert.Equal(t, 1, m.ActiveCount())
	assert.Len(t, table.Snapshot(), 1)

	sessions := m.ListSessions()
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].Active)

	// Type "hx", erase the x, then "i" and return. The cooked line
	// handed to cat is "hi\n".
	require.NoError(t, m.Write(sid, []byte("hx\bi\r")))

	var mu sync.Mutex
	var collected []byte
	require.Eventually(t, func() bool {
		out, err := m.Read(sid)
		if err != nil {
			return false
		}
		mu.Lock()
		collected = append(collected, out...)
		done := bytes.Contains(collected, []byte("hi"))
		mu.Unlock()
		return done
	}, 5*time.Second, 10*time.Millisecond, "expected echoed line in session output")

	require.NoError(t, m.Kill(sid))

	_, err = m.GetSession(sid)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Eventually(t, func() bool {
		return m.ActiveCount() == 0
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, table.Snapshot())
}

func TestKillCancelsBlockedReader(t *testing.T) {
	table := proc.NewTable(logging.NewNop())
	m := NewManager(Defaults{}, table, logging.NewNop(), nil)

	info, err := m.CreateSession("/bin/cat", "/tmp", 80, 24, nil)
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	sid := id.SessionID(info.ID)

	session, lookupErr := m.lookup(sid)
	require.NoError(t, lookupErr)

	// No input committed: the pump goroutine is blocked in Read.
	require.NoError(t, m.Kill(sid))

	assert.Eventually(t, func() bool {
		return session.task.Killed()
	}, time.Second, 10*time.Millisecond)
	assert.Error(t, session.task.Context().Err())
	assert.ErrorIs(t, session.task.Context().Err(), context.Canceled)
}
