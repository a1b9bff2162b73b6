package auth

import (
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// Request headers the resolver understands.
const (
	HeaderAPIKey         = "X-API-Key"
	HeaderTier           = "X-Nex-Tier"
	HeaderRequiredScopes = "X-Nex-Required-Scopes"
	HeaderAgentID        = "X-Nex-Agent-Id"
	HeaderSessionID      = "X-Nex-Session-Id"
	HeaderWalletProvider = "X-Nex-Wallet-Provider"
)

// AuthContext is the authenticated view of a request. It is derived
// solely from headers plus the key store snapshot and never persisted.
type AuthContext struct {
	APIKey         *APIKeyDefinition
	Tier           domain.Tier
	Scopes         []string
	AuthToken      string
	AgentID        string
	SessionID      string
	WalletProvider string
}

// HasScope reports whether the context carries the named scope.
func (a *AuthContext) HasScope(scope string) bool {
	for _, s := range a.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// Resolve derives an AuthContext from the request headers. It is a pure
// function of the headers and the store: identical inputs yield identical
// contexts.
func Resolve(h http.Header, store *Store) (*AuthContext, error) {
	rawKey := h.Get(HeaderAPIKey)
	if rawKey == "" {
		return nil, domain.ErrAuthentication("X-API-Key header required")
	}

	key := store.Lookup(rawKey)
	if key == nil {
		return nil, domain.ErrAuthentication("invalid API key")
	}

	// The tier header is a cross-check, never an override: a mismatch is
	// rejected rather than silently coerced.
	if rawTier := h.Get(HeaderTier); rawTier != "" {
		requested := strings.ToLower(rawTier)
		if !domain.ValidTier(requested) {
			return nil, domain.ErrInvalidRequest(fmt.Sprintf("invalid %s header %q", HeaderTier, rawTier))
		}
		if domain.Tier(requested) != key.Tier {
			return nil, domain.ErrPermission(fmt.Sprintf(
				"API key tier mismatch: expected %q, received %q", key.Tier, requested))
		}
	}

	return &AuthContext{
		APIKey:         key,
		Tier:           key.Tier,
		Scopes:         unionScopes(key.Scopes, h.Get(HeaderRequiredScopes)),
		AuthToken:      extractToken(h.Get("Authorization")),
		AgentID:        h.Get(HeaderAgentID),
		SessionID:      h.Get(HeaderSessionID),
		WalletProvider: h.Get(HeaderWalletProvider),
	}, nil
}

// extractToken pulls the token out of an Authorization header value. A
// "Bearer <token>" value (case-insensitive prefix) yields the token; any
// other non-empty value passes through verbatim.
func extractToken(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if len(trimmed) > 7 && strings.EqualFold(trimmed[:7], "bearer ") {
		return strings.TrimSpace(trimmed[7:])
	}
	return trimmed
}

// unionScopes merges the key's configured scopes with the optional
// comma-separated header, trimming entries and dropping empty ones. The
// result is sorted and de-duplicated so resolution is deterministic.
func unionScopes(configured []string, header string) []string {
	set := make(map[string]bool, len(configured))
	for _, s := range configured {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = true
		}
	}
	for _, s := range strings.Split(header, ",") {
		if s = strings.TrimSpace(s); s != "" {
			set[s] = true
		}
	}

	scopes := make([]string, 0, len(set))
	for s := range set {
		scopes = append(scopes, s)
	}
	sort.Strings(scopes)
	return scopes
}
