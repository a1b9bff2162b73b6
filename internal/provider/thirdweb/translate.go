package thirdweb

import (
	"github.com/nexisdev/mcp-cryptowallet-evm/internal/domain"
)

// TokenIn identifies the token and amount entering a bridge or swap.
type TokenIn struct {
	Address string `json:"address"`
	ChainID int64  `json:"chainId"`
	Amount  string `json:"amount"`
}

// TokenOut identifies the token expected out, with an optional minimum.
type TokenOut struct {
	Address   string `json:"address"`
	ChainID   int64  `json:"chainId"`
	MinAmount string `json:"minAmount,omitempty"`
}

// SwapRequest is the provider's request shape for both bridge and swap
// execution.
type SwapRequest struct {
	From                 string         `json:"from"`
	Exact                string         `json:"exact"`
	TokenIn              TokenIn        `json:"tokenIn"`
	TokenOut             TokenOut       `json:"tokenOut"`
	SlippageToleranceBps *int           `json:"slippageToleranceBps"`
	Metadata             map[string]any `json:"metadata"`
}

// TranslateBridge maps a bridge intent into the provider request shape.
// Bridging is same-token-different-chain only, so tokenIn and tokenOut
// share the resolved token address.
func TranslateBridge(intent *domain.TransactionIntent) (*SwapRequest, error) {
	if intent.Transfer == nil || intent.Bridge == nil {
		return nil, domain.ErrInvalidRequest("bridge intents require transfer and bridge metadata")
	}

	transfer := intent.Transfer
	bridge := intent.Bridge

	tokenAddress := transfer.TokenAddress
	if tokenAddress == "" {
		tokenAddress = domain.NativeTokenSentinel
	}
	destinationAddress := bridge.DestinationAddress
	if destinationAddress == "" {
		destinationAddress = intent.FromAddress
	}

	return &SwapRequest{
		From:  intent.FromAddress,
		Exact: "input",
		TokenIn: TokenIn{
			Address: tokenAddress,
			ChainID: intent.Chain.ChainID,
			Amount:  transfer.Amount,
		},
		TokenOut: TokenOut{
			Address:   tokenAddress,
			ChainID:   bridge.DestinationChainID,
			MinAmount: bridge.MinAmountWei,
		},
		SlippageToleranceBps: bridge.SlippageBps,
		Metadata: mergeMetadata(map[string]any{
			"destinationAddress": destinationAddress,
			"router":             bridge.Router,
			"intentId":           intent.ID,
			"provider":           intent.Provider,
		}, intent.Metadata),
	}, nil
}

// TranslateSwap maps a swap intent into the provider request shape. The
// amount falls back to the transfer amount when the swap metadata does
// not carry one.
func TranslateSwap(intent *domain.TransactionIntent) (*SwapRequest, error) {
	if intent.Swap == nil {
		return nil, domain.ErrInvalidRequest("swap intents require swap metadata")
	}

	swap := intent.Swap
	amountIn := swap.AmountIn
	if amountIn == "" && intent.Transfer != nil {
		amountIn = intent.Transfer.Amount
	}
	if amountIn == "" {
		return nil, domain.ErrInvalidRequest("swap amount is required")
	}

	return &SwapRequest{
		From:  intent.FromAddress,
		Exact: "input",
		TokenIn: TokenIn{
			Address: swap.TokenIn,
			ChainID: intent.Chain.ChainID,
			Amount:  amountIn,
		},
		TokenOut: TokenOut{
			Address:   swap.TokenOut,
			ChainID:   intent.Chain.ChainID,
			MinAmount: swap.MinAmountOut,
		},
		SlippageToleranceBps: swap.SlippageBps,
		Metadata: mergeMetadata(map[string]any{
			"protocol": swap.Protocol,
			"intentId": intent.ID,
			"provider": intent.Provider,
		}, intent.Metadata),
	}, nil
}

// mergeMetadata layers caller-supplied metadata over the base map; caller
// keys win on conflict.
func mergeMetadata(base, caller map[string]any) map[string]any {
	for k, v := range caller {
		base[k] = v
	}
	return base
}
