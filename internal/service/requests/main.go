package requests

// Key is the identity part of a JSON:API resource.
type Key struct {
	ID   string `json:"id,omitempty"`
	Type string `json:"type"`
}

const (
	OrderType     = "order"
	ExecutionType = "cross_chain_execution"
	SwapType      = "swap"
	BridgeType    = "bridge_transfer"
	TransferType  = "transfer"
	MessageType   = "validated_message"
)

const (
	TransferDeposit = "deposit"
	TransferPayout  = "payout"
)
