// Package auth loads the configured API key set and derives a
// per-request authentication context from inbound headers.
package auth

import (
	"encoding/json"
	"fmt"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// APIKeyDefinition is one configured API key. Definitions are immutable
// once loaded.
type APIKeyDefinition struct {
	Key            string         `json:"key"`
	Tier           domain.Tier    `json:"tier"`
	Scopes         []string       `json:"scopes"`
	UserID         string         `json:"userId,omitempty"`
	OrganizationID string         `json:"organizationId,omitempty"`
	Label          string         `json:"label,omitempty"`
	Limits         map[string]any `json:"limits,omitempty"`
}

// Store is an immutable lookup over the configured API keys. It is built
// once at startup and shared read-only across requests.
type Store struct {
	keys map[string]*APIKeyDefinition
}

// NewStore parses the configured JSON array of key definitions. An empty
// value yields an empty store (every request then fails auth). A parse or
// schema failure is a hard configuration error; callers treat it as fatal.
// Duplicate keys resolve last-writer-wins.
func NewStore(raw string) (*Store, error) {
	keys := make(map[string]*APIKeyDefinition)
	if raw == "" {
		return &Store{keys: keys}, nil
	}

	var defs []APIKeyDefinition
	if err := json.Unmarshal([]byte(raw), &defs); err != nil {
		return nil, fmt.Errorf("invalid API key set: %w", err)
	}

	for i := range defs {
		def := &defs[i]
		if def.Key == "" {
			return nil, fmt.Errorf("invalid API key set: entry %d has no key", i)
		}
		if !domain.ValidTier(string(def.Tier)) {
			return nil, fmt.Errorf("invalid API key set: entry %d has tier %q", i, def.Tier)
		}
		keys[def.Key] = def
	}

	return &Store{keys: keys}, nil
}

// Lookup returns the definition for key, or nil when unknown.
func (s *Store) Lookup(key string) *APIKeyDefinition {
	return s.keys[key]
}

// Len returns the number of configured keys.
func (s *Store) Len() int {
	return len(s.keys)
}
