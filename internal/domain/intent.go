package domain

import (
	"encoding/json"
	"fmt"
)

// NativeTokenSentinel is the reserved address the execution provider uses
// for the chain's native token.
const NativeTokenSentinel = "0xEeeeeEeeeEeEeeEeEeEeeEEEeeeeEeeeeeeeEEeE"

// Tier is the entitlement level attached to an API key.
type Tier string

const (
	TierFree Tier = "free"
	TierPaid Tier = "paid"
)

// ValidTier reports whether s names a known tier.
func ValidTier(s string) bool {
	return Tier(s) == TierFree || Tier(s) == TierPaid
}

// WalletProvider identifies which wallet backend executes an intent.
type WalletProvider string

const (
	ProviderThirdwebEmbedded      WalletProvider = "thirdweb_embedded"
	ProviderThirdwebServer        WalletProvider = "thirdweb_server"
	ProviderThirdwebInApp         WalletProvider = "thirdweb_in_app"
	ProviderWalletConnectExternal WalletProvider = "walletconnect_external"
)

var walletProviders = map[WalletProvider]bool{
	ProviderThirdwebEmbedded:      true,
	ProviderThirdwebServer:        true,
	ProviderThirdwebInApp:         true,
	ProviderWalletConnectExternal: true,
}

// IntentKind enumerates the wallet operations an intent can describe.
type IntentKind string

const (
	KindSignMessage   IntentKind = "sign_message"
	KindSignTypedData IntentKind = "sign_typed_data"
	KindApproveERC20  IntentKind = "approve_erc20"
	KindSendNative    IntentKind = "send_native"
	KindSendToken     IntentKind = "send_token"
	KindBridge        IntentKind = "bridge"
	KindSwap          IntentKind = "swap"
)

var intentKinds = map[IntentKind]bool{
	KindSignMessage:   true,
	KindSignTypedData: true,
	KindApproveERC20:  true,
	KindSendNative:    true,
	KindSendToken:     true,
	KindBridge:        true,
	KindSwap:          true,
}

// ExecutionState is the lifecycle state reported for an executed intent.
type ExecutionState string

const (
	StatePending   ExecutionState = "pending"
	StateSubmitted ExecutionState = "submitted"
	StateConfirmed ExecutionState = "confirmed"
	StateFailed    ExecutionState = "failed"
)

// ChainIdentifier locates a chain by ID, network name, and layer.
type ChainIdentifier struct {
	ChainID int64  `json:"chainId"`
	Network string `json:"network"`
	Layer   string `json:"layer"` // L1, L2, alt
}

// AutomatedMode marks an intent submitted by an agent without human review.
type AutomatedMode struct {
	AgentID      string `json:"agentId"`
	AuditTrailID string `json:"auditTrailId,omitempty"`
}

// ManualMode marks an intent approved by a human operator.
type ManualMode struct {
	ApproverUserID string `json:"approverUserId"`
	ApprovalID     string `json:"approvalId"`
}

// TransactionMode is a tagged union: exactly one of Automated or Manual is
// set, selected by the "kind" tag on the wire.
type TransactionMode struct {
	Kind      string
	Automated *AutomatedMode
	Manual    *ManualMode
}

// UnmarshalJSON decodes the union by peeking at the "kind" tag.
func (m *TransactionMode) UnmarshalJSON(data []byte) error {
	var tag struct {
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return err
	}

	switch tag.Kind {
	case "automated":
		var auto AutomatedMode
		if err := json.Unmarshal(data, &auto); err != nil {
			return err
		}
		*m = TransactionMode{Kind: tag.Kind, Automated: &auto}
		return nil
	case "manual":
		var manual ManualMode
		if err := json.Unmarshal(data, &manual); err != nil {
			return err
		}
		*m = TransactionMode{Kind: tag.Kind, Manual: &manual}
		return nil
	default:
		return fmt.Errorf("mode kind must be 'automated' or 'manual', got %q", tag.Kind)
	}
}

// MarshalJSON re-emits the tagged form.
func (m TransactionMode) MarshalJSON() ([]byte, error) {
	switch m.Kind {
	case "automated":
		return json.Marshal(struct {
			Kind string `json:"kind"`
			*AutomatedMode
		}{m.Kind, m.Automated})
	case "manual":
		return json.Marshal(struct {
			Kind string `json:"kind"`
			*ManualMode
		}{m.Kind, m.Manual})
	default:
		return nil, fmt.Errorf("cannot marshal mode with kind %q", m.Kind)
	}
}

// SignatureIntent carries a message or typed-data signing request.
type SignatureIntent struct {
	Type    string          `json:"type"` // signMessage, signTypedData
	Payload json.RawMessage `json:"payload"`
}

// ApprovalMetadata describes an ERC-20 allowance grant.
type ApprovalMetadata struct {
	Spender string `json:"spender"`
	Token   string `json:"token"`
	Amount  string `json:"amount"`
}

// TransferTarget is a single recipient of a transfer.
type TransferTarget struct {
	Address string `json:"address"`
	Amount  string `json:"amount"`
}

// TransferMetadata describes a native or token transfer. Amounts are wei
// strings and pass through to the provider untouched.
type TransferMetadata struct {
	Type         string           `json:"type"` // native, erc20
	Amount       string           `json:"amount"`
	TokenAddress string           `json:"tokenAddress,omitempty"`
	To           []TransferTarget `json:"to"`
}

// BridgeMetadata describes a same-token cross-chain move.
type BridgeMetadata struct {
	DestinationChainID int64  `json:"destinationChainId"`
	DestinationAddress string `json:"destinationAddress"`
	Router             string `json:"router,omitempty"` // wormhole, relay, celer, layerzero
	SlippageBps        *int   `json:"slippageBps,omitempty"`
	MinAmountWei       string `json:"minAmountWei,omitempty"`
}

// SwapMetadata describes a same-chain token exchange.
type SwapMetadata struct {
	Protocol     string `json:"protocol,omitempty"` // uniswap, pancakeswap, jupiter
	TokenIn      string `json:"tokenIn"`
	TokenOut     string `json:"tokenOut"`
	AmountIn     string `json:"amountIn,omitempty"`
	MinAmountOut string `json:"minAmountOut,omitempty"`
	SlippageBps  *int   `json:"slippageBps,omitempty"`
}

// TransactionIntent is a caller-submitted description of a wallet
// operation. Which sub-object must be populated depends on Kind; the
// executor validates that pairing for the kinds it implements.
type TransactionIntent struct {
	ID          string            `json:"id"`
	Provider    WalletProvider    `json:"provider"`
	Chain       ChainIdentifier   `json:"chain"`
	FromAddress string            `json:"fromAddress"`
	Mode        TransactionMode   `json:"mode"`
	Kind        IntentKind        `json:"kind"`
	Signature   *SignatureIntent  `json:"signature,omitempty"`
	Approval    *ApprovalMetadata `json:"approval,omitempty"`
	Transfer    *TransferMetadata `json:"transfer,omitempty"`
	Bridge      *BridgeMetadata   `json:"bridge,omitempty"`
	Swap        *SwapMetadata     `json:"swap,omitempty"`
	Metadata    map[string]any    `json:"metadata,omitempty"`
}

var bridgeRouters = map[string]bool{
	"wormhole": true, "relay": true, "celer": true, "layerzero": true,
}

var swapProtocols = map[string]bool{
	"uniswap": true, "pancakeswap": true, "jupiter": true,
}

// Validate checks the structural invariants of the intent. Kind-specific
// sub-object presence is checked later by the executor.
func (t *TransactionIntent) Validate() error {
	if t.ID == "" {
		return ErrInvalidRequest("intent id is required")
	}
	if !walletProviders[t.Provider] {
		return ErrInvalidRequest(fmt.Sprintf("unknown wallet provider %q", t.Provider))
	}
	if t.FromAddress == "" {
		return ErrInvalidRequest("fromAddress is required")
	}
	if t.Chain.Network == "" {
		return ErrInvalidRequest("chain.network is required")
	}
	switch t.Chain.Layer {
	case "L1", "L2", "alt":
	default:
		return ErrInvalidRequest(fmt.Sprintf("chain.layer must be L1, L2, or alt, got %q", t.Chain.Layer))
	}
	if err := t.Mode.validate(); err != nil {
		return err
	}
	if !intentKinds[t.Kind] {
		return ErrInvalidRequest(fmt.Sprintf("unknown intent kind %q", t.Kind))
	}
	if t.Transfer != nil {
		if t.Transfer.Type != "native" && t.Transfer.Type != "erc20" {
			return ErrInvalidRequest(fmt.Sprintf("transfer.type must be native or erc20, got %q", t.Transfer.Type))
		}
	}
	if t.Bridge != nil {
		if t.Bridge.Router != "" && !bridgeRouters[t.Bridge.Router] {
			return ErrInvalidRequest(fmt.Sprintf("unknown bridge router %q", t.Bridge.Router))
		}
		if err := validateSlippage(t.Bridge.SlippageBps, "bridge"); err != nil {
			return err
		}
	}
	if t.Swap != nil {
		if t.Swap.Protocol != "" && !swapProtocols[t.Swap.Protocol] {
			return ErrInvalidRequest(fmt.Sprintf("unknown swap protocol %q", t.Swap.Protocol))
		}
		if err := validateSlippage(t.Swap.SlippageBps, "swap"); err != nil {
			return err
		}
	}
	return nil
}

func (m *TransactionMode) validate() error {
	switch m.Kind {
	case "automated":
		if m.Automated == nil || m.Automated.AgentID == "" {
			return ErrInvalidRequest("automated mode requires agentId")
		}
	case "manual":
		if m.Manual == nil || m.Manual.ApproverUserID == "" || m.Manual.ApprovalID == "" {
			return ErrInvalidRequest("manual mode requires approverUserId and approvalId")
		}
	default:
		return ErrInvalidRequest(fmt.Sprintf("mode kind must be 'automated' or 'manual', got %q", m.Kind))
	}
	return nil
}

func validateSlippage(bps *int, field string) error {
	if bps != nil && (*bps < 0 || *bps > 10000) {
		return ErrInvalidRequest(fmt.Sprintf("%s.slippageBps must be between 0 and 10000", field))
	}
	return nil
}

// TransactionExecutionResult is the normalized outcome returned for an
// executed intent. It is created once per request and never mutated.
type TransactionExecutionResult struct {
	IntentID        string         `json:"intentId"`
	Provider        WalletProvider `json:"provider"`
	State           ExecutionState `json:"state"`
	TransactionHash string         `json:"transactionHash,omitempty"`
	ApprovalHash    string         `json:"approvalHash,omitempty"`
	SwapHash        string         `json:"swapHash,omitempty"`
	BridgeTraceID   string         `json:"bridgeTraceId,omitempty"`
	Diagnostics     map[string]any `json:"diagnostics,omitempty"`
}
