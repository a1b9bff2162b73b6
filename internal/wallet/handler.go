// Package wallet serves the transaction-intent endpoint: it resolves
// auth, validates the intent, gates it by scope and tier, and dispatches
// the supported kinds to the execution provider.
package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/audit"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/auth"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/policy"
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/server"
)

// Scopes gating the implemented intent kinds.
const (
	ScopeBridge = "wallet:bridge"
	ScopeSwap   = "wallet:swap"
)

// Executor submits translated intents to the execution provider.
type Executor interface {
	ExecuteBridge(ctx context.Context, intent *domain.TransactionIntent) (*domain.TransactionExecutionResult, error)
	ExecuteSwap(ctx context.Context, intent *domain.TransactionIntent) (*domain.TransactionExecutionResult, error)
}

// Handler serves POST /wallets/intents.
type Handler struct {
	keys     *auth.Store
	executor Executor
	trail    *audit.Store
}

// NewHandler creates an intent handler. trail may be nil (audit disabled).
func NewHandler(keys *auth.Store, executor Executor, trail *audit.Store) *Handler {
	return &Handler{
		keys:     keys,
		executor: executor,
		trail:    trail,
	}
}

// HandleExecuteIntent authorizes and executes one transaction intent.
func (h *Handler) HandleExecuteIntent(w http.ResponseWriter, r *http.Request) {
	authCtx, err := auth.Resolve(r.Header, h.keys)
	if err != nil {
		server.WriteError(w, r, err)
		return
	}

	server.AddLogField(r.Context(), "api_key_label", authCtx.APIKey.Label)
	server.AddLogField(r.Context(), "tier", string(authCtx.Tier))

	var intent domain.TransactionIntent
	if err := json.NewDecoder(r.Body).Decode(&intent); err != nil {
		server.WriteError(w, r, domain.ErrInvalidRequest(fmt.Sprintf("invalid intent payload: %v", err)))
		return
	}
	if err := intent.Validate(); err != nil {
		server.WriteError(w, r, err)
		return
	}

	server.AddLogField(r.Context(), "intent_id", intent.ID)
	server.AddLogField(r.Context(), "intent_kind", string(intent.Kind))
	server.AddLogField(r.Context(), "wallet_provider", string(intent.Provider))

	var result *domain.TransactionExecutionResult
	switch intent.Kind {
	case domain.KindBridge:
		if err := policy.RequireScope(authCtx, ScopeBridge); err != nil {
			server.WriteError(w, r, err)
			return
		}
		if err := policy.RequirePaidTier(authCtx, "Cross-chain bridge execution"); err != nil {
			server.WriteError(w, r, err)
			return
		}
		result, err = h.executor.ExecuteBridge(r.Context(), &intent)

	case domain.KindSwap:
		if err := policy.RequireScope(authCtx, ScopeSwap); err != nil {
			server.WriteError(w, r, err)
			return
		}
		if err := policy.RequirePaidTier(authCtx, "Token swap execution"); err != nil {
			server.WriteError(w, r, err)
			return
		}
		result, err = h.executor.ExecuteSwap(r.Context(), &intent)

	default:
		// Policy is never evaluated for unimplemented kinds.
		server.WriteError(w, r, domain.ErrNotImplemented(
			fmt.Sprintf("transaction kind %q is not supported by this service", intent.Kind)))
		return
	}

	if err != nil {
		h.record(r.Context(), &intent, authCtx, nil, err)
		server.WriteError(w, r, err)
		return
	}

	server.AddLogField(r.Context(), "execution_state", string(result.State))
	h.record(r.Context(), &intent, authCtx, result, nil)

	server.WriteJSON(w, http.StatusOK, result)
}

// record appends the execution outcome to the audit trail, best-effort.
func (h *Handler) record(ctx context.Context, intent *domain.TransactionIntent, authCtx *auth.AuthContext, result *domain.TransactionExecutionResult, execErr error) {
	rec := &audit.Record{
		IntentID:    intent.ID,
		Kind:        string(intent.Kind),
		Provider:    string(intent.Provider),
		APIKeyLabel: authCtx.APIKey.Label,
	}
	if result != nil {
		rec.State = string(result.State)
		switch {
		case result.BridgeTraceID != "":
			rec.TransactionID = result.BridgeTraceID
		case result.SwapHash != "":
			rec.TransactionID = result.SwapHash
		case result.TransactionHash != "":
			rec.TransactionID = result.TransactionHash
		}
	} else {
		rec.State = string(domain.StateFailed)
	}
	if execErr != nil {
		rec.Error = execErr.Error()
	}

	h.trail.Add(ctx, rec)
}
