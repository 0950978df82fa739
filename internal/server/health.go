package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/rickgao/verf-report/internal/health"
)

// timestampLayout renders UTC instants with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type databasePayload struct {
	Name        string `json:"name"`
	Status      string `json:"status"` // "connected" or "disconnected"
	Latency     int64  `json:"latency"`
	Error       string `json:"error,omitempty"`
	LastChecked string `json:"lastChecked"`
}

type healthPayload struct {
	Status    string                     `json:"status"` // "healthy" or "unhealthy"
	Timestamp string                     `json:"timestamp"`
	Databases map[string]databasePayload `json:"databases"`
}

type healthErrorPayload struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Error     string `json:"error"`
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

func newHealthPayload(r health.Report, now time.Time) healthPayload {
	p := healthPayload{
		Status:    "unhealthy",
		Timestamp: formatTimestamp(now),
		Databases: make(map[string]databasePayload, len(r.Targets)),
	}
	if r.Healthy() {
		p.Status = "healthy"
	}

	for _, t := range r.Targets {
		status := "disconnected"
		if t.Connected {
			status = "connected"
		}
		p.Databases[t.Key] = databasePayload{
			Name:        t.Name,
			Status:      status,
			Latency:     t.LatencyMs,
			Error:       t.Error,
			LastChecked: formatTimestamp(t.LastChecked),
		}
	}
	return p
}

// handleHealth probes both databases on every call. Probe failures are
// reported in the body with a 200; only an internal failure yields a 500.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	payload, err := s.checkHealth(r)
	if err != nil {
		s.logger.Error("health check failed", "error", err)
		respondJSON(w, http.StatusInternalServerError, healthErrorPayload{
			Status:    "error",
			Timestamp: formatTimestamp(time.Now()),
			Error:     err.Error(),
		})
		return
	}
	respondJSON(w, http.StatusOK, payload)
}

func (s *Server) checkHealth(r *http.Request) (payload healthPayload, err error) {
	defer func() {
		if v := recover(); v != nil {
			err = fmt.Errorf("%v", v)
		}
	}()
	report := s.deps.Health.CheckNow(r.Context())
	return newHealthPayload(report, time.Now()), nil
}

// handleHealthStream pushes the latest report on connect and on every monitor tick.
func (s *Server) handleHealthStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied.
		s.logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.deps.Health.Subscribe()
	defer unsubscribe()

	pongWait := 2 * s.opts.PingInterval
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// The read loop only services control frames and notices disconnects.
	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	if latest, ok := s.deps.Health.Latest(); ok {
		if err := s.writeHealth(conn, latest); err != nil {
			return
		}
	}

	ticker := time.NewTicker(s.opts.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case report, ok := <-updates:
			if !ok {
				conn.WriteControl(
					websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"),
					time.Now().Add(time.Second),
				)
				return
			}
			if err := s.writeHealth(conn, report); err != nil {
				s.logger.Debug("websocket write failed", "error", err)
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(s.opts.WriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, []byte("keepalive"), deadline); err != nil {
				s.logger.Debug("failed to send ping", "error", err)
				return
			}
		}
	}
}

func (s *Server) writeHealth(conn *websocket.Conn, r health.Report) error {
	data, err := json.Marshal(newHealthPayload(r, r.CheckedAt))
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}
