// Package config loads the immutable gateway configuration from an
// optional config.yaml overlaid with environment variables.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// minStatusTimeout is the floor applied to every outbound call timeout.
const minStatusTimeout = 100 * time.Millisecond

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Auth     AuthConfig     `koanf:"auth"`
	Audit    AuditConfig    `koanf:"audit"`
	Status   StatusConfig   `koanf:"status"`
	Provider ProviderConfig `koanf:"provider"`
}

type ServerConfig struct {
	Port    int    `koanf:"port"`
	Version string `koanf:"version"`
}

type AuthConfig struct {
	// APIKeys is a JSON array of key definitions. Empty means no key is
	// accepted and every authenticated endpoint returns 401.
	APIKeys string `koanf:"api_keys"`
}

type AuditConfig struct {
	// DBPath enables the sqlite intent audit trail when non-empty.
	DBPath string `koanf:"db_path"`
}

type StatusConfig struct {
	BaseURL string `koanf:"base_url"`
	APIKey  string `koanf:"api_key"`
	// Timeout is the raw configured value in seconds. Unparsable values
	// fall back to the default rather than failing startup; the parsed
	// result is exposed via Config.StatusTimeout.
	Timeout        string  `koanf:"timeout"`
	TimeoutSeconds float64 `koanf:"-"`
	Warmup         bool    `koanf:"-"`
}

type ProviderConfig struct {
	BaseURL   string `koanf:"base_url"`
	ClientID  string `koanf:"client_id"`
	SecretKey string `koanf:"secret_key"`
}

// envKeys maps the environment variables this service honors onto koanf
// paths. The THIRDWEB_* and STATUS_SERVICE_* names follow the external
// services' documented variables.
var envKeys = map[string]string{
	"GATEWAY_PORT":            "server.port",
	"GATEWAY_VERSION":         "server.version",
	"GATEWAY_API_KEYS":        "auth.api_keys",
	"GATEWAY_AUDIT_DB":        "audit.db_path",
	"STATUS_SERVICE_BASE_URL": "status.base_url",
	"STATUS_SERVICE_API_KEY":  "status.api_key",
	"STATUS_SERVICE_TIMEOUT":  "status.timeout",
	"STATUS_SERVICE_WARMUP":   "status.warmup",
	"THIRDWEB_API_BASE_URL":   "provider.base_url",
	"THIRDWEB_CLIENT_ID":      "provider.client_id",
	"THIRDWEB_SECRET_KEY":     "provider.secret_key",
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Try to load from config.yaml file first
	if err := k.Load(file.Provider("config.yaml"), yaml.Parser()); err != nil {
		// File not found is OK, we'll use env vars
		if !os.IsNotExist(err) {
			return nil, err
		}
	}

	// Load environment variables (can override file config)
	if err := k.Load(env.Provider("", ".", func(s string) string {
		if path, ok := envKeys[s]; ok {
			return path
		}
		return "" // drop unrelated environment variables
	}), nil); err != nil {
		return nil, err
	}

	// Default values
	if !k.Exists("server.port") {
		k.Set("server.port", 8080)
	}
	if !k.Exists("server.version") {
		k.Set("server.version", "1.0.0")
	}
	if !k.Exists("status.base_url") {
		k.Set("status.base_url", "http://127.0.0.1:8090")
	}
	if !k.Exists("provider.base_url") {
		k.Set("provider.base_url", "https://api.thirdweb.com")
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	// Warmup defaults on; only explicit "0"/"false" disable it. Decoded
	// by hand because the raw value may arrive as a bare env string.
	cfg.Status.Warmup = parseWarmup(k.String("status.warmup"))
	cfg.Status.TimeoutSeconds = parseTimeout(cfg.Status.Timeout)

	cfg.Status.BaseURL = strings.TrimSuffix(cfg.Status.BaseURL, "/")
	cfg.Provider.BaseURL = strings.TrimSuffix(cfg.Provider.BaseURL, "/")
	cfg.Status.APIKey = strings.TrimSpace(cfg.Status.APIKey)
	cfg.Provider.ClientID = strings.TrimSpace(cfg.Provider.ClientID)
	cfg.Provider.SecretKey = strings.TrimSpace(cfg.Provider.SecretKey)

	return &cfg, nil
}

func parseTimeout(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 5.0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v <= 0 {
		return 5.0
	}
	return v
}

func parseWarmup(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "0", "false":
		return false
	default:
		return true
	}
}

// StatusTimeout returns the outbound call timeout with the floor applied.
func (c *Config) StatusTimeout() time.Duration {
	d := time.Duration(c.Status.TimeoutSeconds * float64(time.Second))
	if d < minStatusTimeout {
		return minStatusTimeout
	}
	return d
}
