package thirdweb

import (
	"context"

	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// Executor translates intents and submits them to the provider,
// normalizing responses into TransactionExecutionResults.
type Executor struct {
	client *Client
}

// NewExecutor creates an executor backed by the given client.
func NewExecutor(client *Client) *Executor {
	return &Executor{client: client}
}

// ExecuteBridge submits a bridge intent. On a 2xx provider response the
// state is always "submitted"; the full decoded provider body is retained
// under diagnostics for observability.
func (e *Executor) ExecuteBridge(ctx context.Context, intent *domain.TransactionIntent) (*domain.TransactionExecutionResult, error) {
	req, err := TranslateBridge(intent)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Call(ctx, SwapPath, req)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionExecutionResult{
		IntentID:      intent.ID,
		Provider:      intent.Provider,
		State:         domain.StateSubmitted,
		BridgeTraceID: resp.TransactionID,
		Diagnostics:   map[string]any{"provider": resp.Body},
	}, nil
}

// ExecuteSwap submits a swap intent.
func (e *Executor) ExecuteSwap(ctx context.Context, intent *domain.TransactionIntent) (*domain.TransactionExecutionResult, error) {
	req, err := TranslateSwap(intent)
	if err != nil {
		return nil, err
	}

	resp, err := e.client.Call(ctx, SwapPath, req)
	if err != nil {
		return nil, err
	}

	return &domain.TransactionExecutionResult{
		IntentID:    intent.ID,
		Provider:    intent.Provider,
		State:       domain.StateSubmitted,
		SwapHash:    resp.TransactionID,
		Diagnostics: map[string]any{"provider": resp.Body},
	}, nil
}
