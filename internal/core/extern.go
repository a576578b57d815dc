package core

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Failures of external collaborators. Implementations return these so callers
// can classify a failure without knowing the transport behind it.
var (
	ErrSwapFailed     = errors.New("swap failed")
	ErrBridgeFailed   = errors.New("bridge operation failed")
	ErrInvalidMessage = errors.New("message is not attested")
)

// SwapEngine converts amountIn of tokenIn into at least minAmountOut of
// tokenOut at the price quoted at execution time.
type SwapEngine interface {
	Execute(ctx context.Context, tokenIn, tokenOut common.Address, amountIn, minAmountOut *big.Int) (*big.Int, error)
}

// Bridge moves token value to another chain via direct mint/burn bridging and
// returns the hash of the resulting cross-chain message.
type Bridge interface {
	Send(ctx context.Context, token, recipient common.Address, amount *big.Int, targetChain int64) (common.Hash, error)
}

// MessageID identifies an inbound cross-chain message by its origin.
type MessageID struct {
	ChainID int64
	Nonce   uint64
}

// MessageTransport attests inbound messages against the relay layer.
type MessageTransport interface {
	Validate(ctx context.Context, id MessageID, hash common.Hash) error
}

// CapabilityProbe reports whether a token advertises the standard cross-chain
// mint/burn capability.
type CapabilityProbe interface {
	SupportsCrossChainTransfer(ctx context.Context, token common.Address) (bool, error)
}

// Vault holds order funds: amountIn is deposited at creation, refunded on
// cancellation, and swap proceeds are paid out on execution.
type Vault interface {
	Deposit(ctx context.Context, from, token common.Address, amount *big.Int) error
	Payout(ctx context.Context, to, token common.Address, amount *big.Int) error
}
