package ws

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/GriffinCanCode/ConsoleKit/internal/logging"
)

func TestCheckOriginSameHost(t *testing.T) {
	h := NewHandler(nil, logging.NewNop(), nil, nil)

	req := httptest.NewRequest("GET", "/sessions/sess_x/stream", nil)
	req.Host = "console.local:8000"
	req.Header.Set("Origin", "http://console.local:8000")

	assert.True(t, h.checkOrigin(req))
}

func TestCheckOriginRejectsCrossOrigin(t *testing.T) {
	h := NewHandler(nil, logging.NewNop(), nil, nil)

	req := httptest.NewRequest("GET", "/sessions/sess_x/stream", nil)
	req.Host = "console.local:8000"
	req.Header.Set("Origin", "http://evil.example.com")

	assert.False(t, h.checkOrigin(req))
}

func TestCheckOriginAllowlist(t *testing.T) {
	h := NewHandler(nil, logging.NewNop(), nil,
		[]string{"https://ops.example.com"})

	req := httptest.NewRequest("GET", "/sessions/sess_x/stream", nil)
	req.Host = "console.local:8000"
	req.Header.Set("Origin", "https://ops.example.com")
	assert.True(t, h.checkOrigin(req))

	req.Header.Set("Origin", "https://other.example.com")
	assert.False(t, h.checkOrigin(req))
}

func TestCheckOriginWildcard(t *testing.T) {
	h := NewHandler(nil, logging.NewNop(), nil, []string{"*"})

	req := httptest.NewRequest("GET", "/sessions/sess_x/stream", nil)
	req.Host = "console.local:8000"
	req.Header.Set("Origin", "https://anywhere.example.com")

	assert.True(t, h.checkOrigin(req))
}

func TestCheckOriginNoHeader(t *testing.T) {
	h := NewHandler(nil, logging.NewNop(), nil, nil)

	// Non-browser clients omit the header entirely.
	req := httptest.NewRequest("GET", "/sessions/sess_x/stream", nil)
	assert.True(t, h.checkOrigin(req))
}
