package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
	"github.com/GriffinCanCode/ConsoleKit/internal/proc"
	"github.com/GriffinCanCode/ConsoleKit/internal/session"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := logging.NewNop()
	table := proc.NewTable(log)
	sessions := session.NewManager(session.Defaults{}, table, log, nil)
	return New(Config{Host: "127.0.0.1", Port: "0"}, sessions, table, log, nil)
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestRoot(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "consolekit")
}

func TestListProcessesEmpty(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/processes", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"tasks":[]}`, rec.Body.String())
}

func TestListSessionsEmpty(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"sessions":[]}`, rec.Body.String())
}

func TestGetUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodGet, "/sessions/sess_missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestKillUnknownSession(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodDelete, "/sessions/sess_missing", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestResizeRequiresDimensions(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/sessions/sess_missing/resize", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSessionLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)

	rec := do(t, srv, http.MethodPost, "/sessions", `{"shell":"/bin/cat"}`)
	if rec.Code != http.StatusCreated {
		t.Skipf("pty unavailable: %s", rec.Body.String())
	}

	var info session.SessionInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &info))
	require.NotEmpty(t, info.ID)

	rec = do(t, srv, http.MethodGet, "/sessions/"+info.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/processes", "")
	assert.Contains(t, rec.Body.String(), "console-")

	rec = do(t, srv, http.MethodDelete, "/sessions/"+info.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/sessions/"+info.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
