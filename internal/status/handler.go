package status

import (
	"net/http"
	"time"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/server"
)

// UptimeResponse reports local and upstream uptime. UpstreamSeconds is
// null when the upstream could not be reached; that degradation never
// fails the call.
type UptimeResponse struct {
	StartTime       float64  `json:"start_time"`
	UptimeSeconds   float64  `json:"uptime_seconds"`
	UpstreamSeconds *float64 `json:"upstream_uptime_seconds"`
	GeneratedAt     float64  `json:"generated_at"`
}

// Handler serves the status proxy endpoints.
type Handler struct {
	client    *Client
	startTime time.Time
}

// NewHandler creates a status handler. startTime is when the process
// started, used for local uptime reporting.
func NewHandler(client *Client, startTime time.Time) *Handler {
	return &Handler{client: client, startTime: startTime}
}

// HandleHealth proxies the upstream health probe and reports "ok" as a
// plain text body when it succeeds.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := h.client.Health(r.Context()); err != nil {
		server.WriteError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok"))
}

// HandleStatus proxies the full upstream status envelope. The refresh
// query flag forces a dependency re-probe upstream.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	envelope, err := h.client.Snapshot(r.Context(), refreshRequested(r))
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	server.WriteJSON(w, http.StatusOK, envelope)
}

// HandleDependencies serves just the dependency probe section of the
// status envelope.
func (h *Handler) HandleDependencies(w http.ResponseWriter, r *http.Request) {
	envelope, err := h.client.Snapshot(r.Context(), refreshRequested(r))
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	deps := envelope.Dependencies
	if deps == nil {
		deps = map[string]DependencyStatus{}
	}
	server.WriteJSON(w, http.StatusOK, deps)
}

// HandleUptime reports local uptime plus the upstream's, when reachable.
func (h *Handler) HandleUptime(w http.ResponseWriter, r *http.Request) {
	var upstream *float64
	if seconds, ok := h.client.Uptime(r.Context()); ok {
		upstream = &seconds
	}

	now := time.Now()
	server.WriteJSON(w, http.StatusOK, UptimeResponse{
		StartTime:       float64(h.startTime.UnixNano()) / float64(time.Second),
		UptimeSeconds:   now.Sub(h.startTime).Seconds(),
		UpstreamSeconds: upstream,
		GeneratedAt:     float64(now.UnixNano()) / float64(time.Second),
	})
}

func refreshRequested(r *http.Request) bool {
	switch r.URL.Query().Get("refresh") {
	case "1", "true", "True", "TRUE", "yes", "on":
		return true
	default:
		return false
	}
}
