package data

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Status is the lifecycle state of an order. Executed, Cancelled and Expired
// are terminal; PendingCrossChain must resolve to Executed.
type Status uint8

const (
	StatusNone Status = iota
	StatusActive
	StatusExecuted
	StatusCancelled
	StatusExpired
	StatusPendingCrossChain
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "NONE"
	case StatusActive:
		return "ACTIVE"
	case StatusExecuted:
		return "EXECUTED"
	case StatusCancelled:
		return "CANCELLED"
	case StatusExpired:
		return "EXPIRED"
	case StatusPendingCrossChain:
		return "PENDING_CROSS_CHAIN"
	}
	return "UNKNOWN"
}

var (
	ErrInvalidAmount          = errors.New("amount_in must be positive")
	ErrInvalidExpiry          = errors.New("expiry must be strictly in the future")
	ErrInvalidTargetChains    = errors.New("target_chains must not be empty")
	ErrOrderNotFound          = errors.New("order not found")
	ErrInvalidOrderTransition = errors.New("invalid order status transition")
)

type Order struct {
	ID           int64
	Owner        common.Address
	TokenIn      common.Address
	TokenOut     common.Address
	AmountIn     *big.Int
	MinAmountOut *big.Int
	Expiry       time.Time
	TargetChains []int64
	Status       Status
	// PendingChain is meaningful only while Status is StatusPendingCrossChain
	PendingChain int64
}

// StatusHook observes every successful status transition; prev is the status
// the order had before the change.
type StatusHook func(order Order, prev Status)

type Orders interface {
	// Create validates the order, assigns the next sequential ID, sets it
	// ACTIVE and registers it in the pair index.
	Create(Order) (int64, error)
	Get(id int64) (Order, error)
	// Status is the non-failing probe variant of Get: StatusNone for unknown IDs.
	Status(id int64) Status
	// Transition moves the order along one of the legal lifecycle edges and
	// fires the status hook. pendingChain is stored only when next is
	// StatusPendingCrossChain and cleared otherwise.
	Transition(id int64, next Status, pendingChain int64) (Order, error)
}
