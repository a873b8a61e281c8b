package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics
type Metrics struct {
	// Line discipline metrics
	BytesReceived  prometheus.Counter
	LinesCommitted prometheus.Counter
	BytesDropped   prometheus.Counter
	ReadsCancelled prometheus.Counter
	EOFReads       prometheus.Counter
	EchoBytes      prometheus.Counter

	// Transmit metrics
	TxDropped prometheus.Counter

	// Session metrics
	SessionsActive prometheus.Gauge
	SessionsTotal  prometheus.Counter

	// WebSocket metrics
	WSConnections prometheus.Gauge
	WSMessages    *prometheus.CounterVec

	// System metrics
	Uptime    prometheus.Gauge
	startTime time.Time
}

// NewMetrics creates a new metrics collector
func NewMetrics() *Metrics {
	m := &Metrics{
		startTime: time.Now(),

		// Line discipline metrics
		BytesReceived: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_bytes_received_total",
				Help: "Total number of raw bytes received by the line editor",
			},
		),
		LinesCommitted: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_lines_committed_total",
				Help: "Total number of lines committed to readers",
			},
		),
		BytesDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_bytes_dropped_total",
				Help: "Total number of input bytes dropped because the buffer was full",
			},
		),
		ReadsCancelled: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_reads_cancelled_total",
				Help: "Total number of blocking reads cancelled by their task",
			},
		),
		EOFReads: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_eof_reads_total",
				Help: "Total number of reads that returned end-of-file",
			},
		),
		EchoBytes: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_echo_bytes_total",
				Help: "Total number of bytes echoed back to the output channel",
			},
		),

		// Transmit metrics
		TxDropped: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_tx_dropped_total",
				Help: "Total number of async transmit bytes dropped (tx ring full)",
			},
		),

		// Session metrics
		SessionsActive: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_sessions_active",
				Help: "Number of active console sessions",
			},
		),
		SessionsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "console_sessions_total",
				Help: "Total number of console sessions created",
			},
		),

		// WebSocket metrics
		WSConnections: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_ws_connections",
				Help: "Number of active WebSocket connections",
			},
		),
		WSMessages: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "console_ws_messages_total",
				Help: "Total number of WebSocket messages",
			},
			[]string{"direction", "type"},
		),

		// System metrics
		Uptime: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "console_uptime_seconds",
				Help: "Service uptime in seconds",
			},
		),
	}

	// Start uptime updater
	go m.updateUptime()

	return m
}

// updateUptime continuously updates the uptime metric
func (m *Metrics) updateUptime() {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for range ticker.C {
		m.Uptime.Set(time.Since(m.startTime).Seconds())
	}
}

// IncBytesReceived records one raw byte delivered to the line editor
func (m *Metrics) IncBytesReceived() { m.BytesReceived.Inc() }

// IncLinesCommitted records one committed line (or forced commit)
func (m *Metrics) IncLinesCommitted() { m.LinesCommitted.Inc() }

// IncBytesDropped records one input byte dropped on buffer overflow
func (m *Metrics) IncBytesDropped() { m.BytesDropped.Inc() }

// IncReadsCancelled records one cancelled blocking read
func (m *Metrics) IncReadsCancelled() { m.ReadsCancelled.Inc() }

// IncEOFReads records one read that observed end-of-file
func (m *Metrics) IncEOFReads() { m.EOFReads.Inc() }

// AddEchoBytes records bytes echoed to the output channel
func (m *Metrics) AddEchoBytes(n int) { m.EchoBytes.Add(float64(n)) }

// IncTxDropped records one dropped async transmit byte
func (m *Metrics) IncTxDropped() { m.TxDropped.Inc() }

// RecordWSMessage records a WebSocket message
func (m *Metrics) RecordWSMessage(direction, msgType string) {
	m.WSMessages.WithLabelValues(direction, msgType).Inc()
}

// SetSessionsActive sets the number of active sessions
func (m *Metrics) SetSessionsActive(count int) {
	m.SessionsActive.Set(float64(count))
}

// IncSessionsTotal increments the total sessions counter
func (m *Metrics) IncSessionsTotal() {
	m.SessionsTotal.Inc()
}

// IncWSConnections increments WebSocket connections
func (m *Metrics) IncWSConnections() {
	m.WSConnections.Inc()
}

// DecWSConnections decrements WebSocket connections
func (m *Metrics) DecWSConnections() {
	m.WSConnections.Dec()
}
