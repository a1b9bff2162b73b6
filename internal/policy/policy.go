// Package policy enforces scope and tier requirements before an intent
// is translated or executed.
package policy

import (
	"fmt"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/auth"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// RequireScope fails with a permission error when the authenticated
// context does not carry the named scope.
func RequireScope(authCtx *auth.AuthContext, scope string) error {
	if !authCtx.HasScope(scope) {
		return domain.ErrPermission(fmt.Sprintf("operation requires scope %q", scope))
	}
	return nil
}

// RequirePaidTier fails with a permission error when the API key is on
// the free tier. The feature name is included in the message so callers
// learn what they are gated out of.
func RequirePaidTier(authCtx *auth.AuthContext, feature string) error {
	if authCtx.Tier == domain.TierFree {
		return domain.ErrPermission(fmt.Sprintf("%s is unavailable on the free tier", feature))
	}
	return nil
}
