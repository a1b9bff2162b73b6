package status

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

func TestClientHealth(t *testing.T) {
	t.Run("returns upstream body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/health" {
				t.Errorf("path = %q, want /health", r.URL.Path)
			}
			w.Write([]byte("healthy"))
		}))
		defer srv.Close()

		body, err := NewClient(srv.URL, "").Health(context.Background())
		if err != nil {
			t.Fatalf("Health() error = %v", err)
		}
		if body != "healthy" {
			t.Errorf("body = %q, want healthy", body)
		}
	})

	t.Run("sends bearer credential when configured", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer up-key" {
				t.Errorf("Authorization = %q, want Bearer up-key", got)
			}
			w.Write([]byte("ok"))
		}))
		defer srv.Close()

		if _, err := NewClient(srv.URL, "up-key").Health(context.Background()); err != nil {
			t.Fatalf("Health() error = %v", err)
		}
	})

	t.Run("upstream 5xx maps to bad gateway", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").Health(context.Background())
		if err == nil {
			t.Fatal("expected error")
		}
		if domain.AsAPIError(err).HTTPStatusCode() != http.StatusBadGateway {
			t.Errorf("status = %d, want 502", domain.AsAPIError(err).HTTPStatusCode())
		}
	})

	t.Run("upstream 4xx passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("denied"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").Health(context.Background())
		apiErr := domain.AsAPIError(err)
		if apiErr.HTTPStatusCode() != http.StatusForbidden {
			t.Errorf("status = %d, want 403", apiErr.HTTPStatusCode())
		}
		if apiErr.Message != "denied" {
			t.Errorf("message = %q, want upstream body", apiErr.Message)
		}
	})
}

func TestClientSnapshot(t *testing.T) {
	t.Run("decodes envelope and forwards refresh", func(t *testing.T) {
		var gotRefresh string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotRefresh = r.URL.Query().Get("refresh")
			w.Write([]byte(`{
				"service": {"name": "mcp"},
				"system": {},
				"sessions": {},
				"tools": {},
				"dependencies": {
					"redis": {"status": "ok", "latencyMs": 1.5, "checkedAt": "2026-08-24T00:00:00Z"}
				},
				"generatedAt": "2026-08-24T00:00:00Z"
			}`))
		}))
		defer srv.Close()

		envelope, err := NewClient(srv.URL, "").Snapshot(context.Background(), true)
		if err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
		if gotRefresh != "1" {
			t.Errorf("refresh query = %q, want 1", gotRefresh)
		}
		dep, ok := envelope.Dependencies["redis"]
		if !ok {
			t.Fatal("missing redis dependency")
		}
		if dep.Status != "ok" || dep.LatencyMs != 1.5 {
			t.Errorf("dependency = %+v", dep)
		}
	})

	t.Run("no refresh query by default", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.RawQuery != "" {
				t.Errorf("query = %q, want empty", r.URL.RawQuery)
			}
			w.Write([]byte(`{"generatedAt": "now"}`))
		}))
		defer srv.Close()

		if _, err := NewClient(srv.URL, "").Snapshot(context.Background(), false); err != nil {
			t.Fatalf("Snapshot() error = %v", err)
		}
	})

	t.Run("malformed payload maps to bad gateway", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("not json"))
		}))
		defer srv.Close()

		_, err := NewClient(srv.URL, "").Snapshot(context.Background(), false)
		if err == nil {
			t.Fatal("expected error")
		}
		if domain.AsAPIError(err).Type != domain.ErrorTypeBadGateway {
			t.Errorf("error type = %q, want bad_gateway", domain.AsAPIError(err).Type)
		}
	})
}

func TestClientUptimeDegrades(t *testing.T) {
	t.Run("reports upstream uptime", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"uptimeSeconds": 321.5}`))
		}))
		defer srv.Close()

		seconds, ok := NewClient(srv.URL, "").Uptime(context.Background())
		if !ok {
			t.Fatal("Uptime() ok = false, want true")
		}
		if seconds != 321.5 {
			t.Errorf("seconds = %v, want 321.5", seconds)
		}
	})

	t.Run("unreachable upstream is absent, not an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		srv.Close()

		if _, ok := NewClient(srv.URL, "").Uptime(context.Background()); ok {
			t.Error("Uptime() ok = true for unreachable upstream")
		}
	})

	t.Run("upstream 5xx is absent", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "down", http.StatusInternalServerError)
		}))
		defer srv.Close()

		if _, ok := NewClient(srv.URL, "").Uptime(context.Background()); ok {
			t.Error("Uptime() ok = true for failing upstream")
		}
	})
}
