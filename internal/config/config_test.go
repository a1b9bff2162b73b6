package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Server.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", cfg.Server.Version)
	}
	if cfg.Status.BaseURL != "http://127.0.0.1:8090" {
		t.Errorf("status base url = %q", cfg.Status.BaseURL)
	}
	if cfg.Provider.BaseURL != "https://api.thirdweb.com" {
		t.Errorf("provider base url = %q", cfg.Provider.BaseURL)
	}
	if !cfg.Status.Warmup {
		t.Error("warmup should default to enabled")
	}
	if cfg.StatusTimeout() != 5*time.Second {
		t.Errorf("timeout = %v, want 5s", cfg.StatusTimeout())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("GATEWAY_PORT", "9100")
	t.Setenv("GATEWAY_VERSION", "2.3.4")
	t.Setenv("STATUS_SERVICE_BASE_URL", "http://status.internal:9000/")
	t.Setenv("THIRDWEB_API_BASE_URL", "https://api.example.com/")
	t.Setenv("THIRDWEB_SECRET_KEY", "  sk-trimmed  ")
	t.Setenv("STATUS_SERVICE_WARMUP", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9100 {
		t.Errorf("port = %d, want 9100", cfg.Server.Port)
	}
	if cfg.Server.Version != "2.3.4" {
		t.Errorf("version = %q, want 2.3.4", cfg.Server.Version)
	}
	if cfg.Status.BaseURL != "http://status.internal:9000" {
		t.Errorf("status base url = %q, want trailing slash trimmed", cfg.Status.BaseURL)
	}
	if cfg.Provider.BaseURL != "https://api.example.com" {
		t.Errorf("provider base url = %q, want trailing slash trimmed", cfg.Provider.BaseURL)
	}
	if cfg.Provider.SecretKey != "sk-trimmed" {
		t.Errorf("secret key = %q, want trimmed", cfg.Provider.SecretKey)
	}
	if cfg.Status.Warmup {
		t.Error("warmup should be disabled by STATUS_SERVICE_WARMUP=0")
	}
}

func TestStatusTimeout(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want time.Duration
	}{
		{"default", "", 5 * time.Second},
		{"explicit", "2.5", 2500 * time.Millisecond},
		{"floor enforced", "0.01", 100 * time.Millisecond},
		{"unparsable falls back", "not-a-number", 5 * time.Second},
		{"negative falls back", "-3", 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.raw != "" {
				t.Setenv("STATUS_SERVICE_TIMEOUT", tt.raw)
			}

			cfg, err := Load()
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if got := cfg.StatusTimeout(); got != tt.want {
				t.Errorf("StatusTimeout() = %v, want %v", got, tt.want)
			}
		})
	}
}
