package core

import (
	"context"
	"encoding/binary"
	"math/big"
	"sync"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// pricePrecision is the fixed-point denominator of prices: a price of 1e18
// means one unit of tokenOut per unit of tokenIn.
var pricePrecision = new(big.Int).SetUint64(1_000_000_000_000_000_000)

// executeMessageTag prefixes message-only execution hashes.
var executeMessageTag = []byte("order-coordinator.execute")

// Coordinator drives the order lifecycle. One mutex per instance is the
// atomicity boundary: every public operation appears indivisible to external
// observers, and all coordinated state (store, index, processed-message set,
// resolver cache) lives behind it.
type Coordinator struct {
	mu sync.Mutex

	log      *logan.Entry
	chainID  int64
	orders   data.Orders
	index    data.PairIndex
	seen     data.ProcessedMessages
	resolver *Resolver
	swap     SwapEngine
	bridge   Bridge
	vault    Vault
	notifier Notifier
	now      func() time.Time
}

type CoordinatorOpts struct {
	Log      *logan.Entry
	ChainID  int64
	Orders   data.Orders
	Index    data.PairIndex
	Messages data.ProcessedMessages
	Resolver *Resolver
	Swap     SwapEngine
	Bridge   Bridge
	Vault    Vault
	Notifier Notifier
	// Now overrides the clock, nil means time.Now
	Now func() time.Time
}

func NewCoordinator(opts CoordinatorOpts) *Coordinator {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Coordinator{
		log:      opts.Log,
		chainID:  opts.ChainID,
		orders:   opts.Orders,
		index:    opts.Index,
		seen:     opts.Messages,
		resolver: opts.Resolver,
		swap:     opts.Swap,
		bridge:   opts.Bridge,
		vault:    opts.Vault,
		notifier: opts.Notifier,
		now:      now,
	}
}

// CreateOrder validates and stores a new ACTIVE order and escrows amountIn
// into the vault. The order record is committed before custody moves.
func (c *Coordinator) CreateOrder(ctx context.Context, owner, tokenIn, tokenOut common.Address,
	amountIn, minAmountOut *big.Int, expiry time.Time, targetChains []int64) (int64, error) {

	c.mu.Lock()
	defer c.mu.Unlock()

	id, err := c.orders.Create(data.Order{
		Owner:        owner,
		TokenIn:      tokenIn,
		TokenOut:     tokenOut,
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Expiry:       expiry,
		TargetChains: targetChains,
	})
	if err != nil {
		return 0, err
	}
	log := c.log.WithField("order_id", id)

	if err = c.vault.Deposit(ctx, owner, tokenIn, amountIn); err != nil {
		return id, errors.Wrap(err, "failed to deposit order funds")
	}

	o, err := c.orders.Get(id)
	if err != nil {
		return id, errors.Wrap(err, "failed to get created order")
	}
	c.notify(log, "order-created", func() error { return c.notifier.OrderCreated(o) })
	log.Debug("created order")
	return id, nil
}

// CancelOrder cancels an ACTIVE order of the caller and refunds amountIn.
func (c *Coordinator) CancelOrder(ctx context.Context, caller common.Address, orderID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	o, err := c.orders.Get(orderID)
	if err != nil {
		return err
	}
	if caller != o.Owner {
		return ErrUnauthorized
	}

	o, err = c.orders.Transition(orderID, data.StatusCancelled, 0)
	if err != nil {
		return err
	}

	if err = c.vault.Payout(ctx, o.Owner, o.TokenIn, o.AmountIn); err != nil {
		return errors.Wrap(err, "failed to refund order funds")
	}
	c.log.WithField("order_id", orderID).Info("cancelled order")
	return nil
}

// GetOrder returns the order as stored.
func (c *Coordinator) GetOrder(orderID int64) (data.Order, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders.Get(orderID)
}

// OrderStatus is the non-failing status probe: StatusNone for unknown IDs.
func (c *Coordinator) OrderStatus(orderID int64) data.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.orders.Status(orderID)
}

// SetTokenOverride forcibly pins the resolver's answer for the token.
func (c *Coordinator) SetTokenOverride(caller, token common.Address, bridgeable bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolver.SetOverride(caller, token, bridgeable)
}

// OnPriceEvent matches every eligible order on the pair against the quoted
// price and executes the satisfied ones, locally or on a remote target chain.
// Expiry is enforced lazily, only when an order is touched here.
func (c *Coordinator) OnPriceEvent(ctx context.Context, tokenIn, tokenOut common.Address, price *big.Int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	ids := c.index.Query(tokenIn, tokenOut)
	log := c.log.WithFields(logan.F{
		"token_in":  tokenIn.String(),
		"token_out": tokenOut.String(),
		"price":     price.String(),
	})
	log.WithField("candidates", len(ids)).Debug("handling price event")

	for _, id := range ids {
		o, err := c.orders.Get(id)
		if err != nil {
			return errors.Wrap(err, "failed to get candidate order", logan.F{"order_id": id})
		}
		if o.Status != data.StatusActive {
			continue
		}
		if !o.Expiry.After(c.now()) {
			if _, err = c.orders.Transition(id, data.StatusExpired, 0); err != nil {
				return errors.Wrap(err, "failed to expire order", logan.F{"order_id": id})
			}
			continue
		}

		expectedOut := new(big.Int).Mul(o.AmountIn, price)
		expectedOut.Div(expectedOut, pricePrecision)
		if expectedOut.Cmp(o.MinAmountOut) < 0 {
			continue
		}

		if containsChain(o.TargetChains, c.chainID) {
			err = c.executeLocal(ctx, o)
		} else {
			err = c.executeRemote(ctx, o)
		}
		if err != nil {
			return errors.Wrap(err, "failed to execute order", logan.F{"order_id": id})
		}
	}
	return nil
}

// ExecuteInbound performs the local execution requested by a validated
// inbound message. The hash is marked processed before execution, so a
// replay fails even if this attempt errors afterwards.
func (c *Coordinator) ExecuteInbound(ctx context.Context, id MessageID, hash common.Hash, orderID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.seen.Seen(hash) {
		return ErrMessageAlreadyProcessed
	}
	c.seen.Mark(hash)

	o, err := c.orders.Get(orderID)
	if err != nil {
		return err
	}
	switch o.Status {
	case data.StatusExecuted:
		return ErrOrderAlreadyExecuted
	case data.StatusCancelled:
		return ErrOrderAlreadyCancelled
	case data.StatusExpired:
		return ErrOrderExpired
	}
	// a PENDING_CROSS_CHAIN order completes regardless of expiry: its remote
	// leg was initiated while the order was still live
	if o.Status == data.StatusActive && !o.Expiry.After(c.now()) {
		if _, err = c.orders.Transition(orderID, data.StatusExpired, 0); err != nil {
			return errors.Wrap(err, "failed to expire order")
		}
		return ErrOrderExpired
	}

	if _, err = c.orders.Transition(orderID, data.StatusExecuted, 0); err != nil {
		return err
	}
	out, err := c.swap.Execute(ctx, o.TokenIn, o.TokenOut, o.AmountIn, o.MinAmountOut)
	if err != nil {
		return errors.Wrap(err, "failed to execute swap")
	}
	if err = c.vault.Payout(ctx, o.Owner, o.TokenOut, out); err != nil {
		return errors.Wrap(err, "failed to pay out swap proceeds")
	}

	log := c.log.WithFields(logan.F{"order_id": orderID, "message_hash": hash.String()})
	c.notify(log, "cross-chain-completed", func() error {
		return c.notifier.CrossChainCompleted(orderID, id.ChainID, hash)
	})
	return nil
}

// executeLocal flips the order to EXECUTED before the swap call, so a
// reentrant event cannot match the same order again. A failing swap leaves
// the committed transition in place and propagates.
func (c *Coordinator) executeLocal(ctx context.Context, o data.Order) error {
	if _, err := c.orders.Transition(o.ID, data.StatusExecuted, 0); err != nil {
		return err
	}
	out, err := c.swap.Execute(ctx, o.TokenIn, o.TokenOut, o.AmountIn, o.MinAmountOut)
	if err != nil {
		return errors.Wrap(err, "failed to execute swap")
	}
	if err = c.vault.Payout(ctx, o.Owner, o.TokenOut, out); err != nil {
		return errors.Wrap(err, "failed to pay out swap proceeds")
	}
	c.log.WithField("order_id", o.ID).Info("executed order locally")
	return nil
}

func (c *Coordinator) executeRemote(ctx context.Context, o data.Order) error {
	target := remoteTarget(o.TargetChains, c.chainID)
	log := c.log.WithFields(logan.F{"order_id": o.ID, "target_chain": target})

	bridgeable, err := c.resolver.IsBridgeable(ctx, o.TokenIn)
	if err != nil {
		return errors.Wrap(err, "failed to resolve token compatibility")
	}

	if !bridgeable {
		// message-only path: no completion callback exists for it, the order
		// stays ACTIVE and the attempt is observable only by its hash
		hash := ExecuteMessageHash(o.ID, c.chainID)
		c.notify(log, "cross-chain-initiated", func() error {
			return c.notifier.CrossChainInitiated(o.ID, target, hash)
		})
		log.WithField("message_hash", hash.String()).Warn("initiated message-only remote execution")
		return nil
	}

	if _, err = c.orders.Transition(o.ID, data.StatusPendingCrossChain, target); err != nil {
		return err
	}
	hash, err := c.bridge.Send(ctx, o.TokenIn, o.Owner, o.AmountIn, target)
	if err != nil {
		return errors.Wrap(err, "failed to send bridge transfer")
	}
	c.notify(log, "cross-chain-initiated", func() error {
		return c.notifier.CrossChainInitiated(o.ID, target, hash)
	})
	log.WithField("message_hash", hash.String()).Info("initiated bridge remote execution")
	return nil
}

func (c *Coordinator) notify(log *logan.Entry, event string, fn func() error) {
	if err := fn(); err != nil {
		log.WithError(err).WithField("event", event).Warn("failed to notify observers")
	}
}

// ExecuteMessageHash derives the hash identifying a message-only execution
// request. It covers (tag, order id, origin chain id) and carries no nonce:
// repeated attempts for one order produce the same hash.
func ExecuteMessageHash(orderID, chainID int64) common.Hash {
	var buf [16]byte
	binary.BigEndian.PutUint64(buf[:8], uint64(orderID))
	binary.BigEndian.PutUint64(buf[8:], uint64(chainID))
	return crypto.Keccak256Hash(executeMessageTag, buf[:])
}

func containsChain(chains []int64, chainID int64) bool {
	for _, c := range chains {
		if c == chainID {
			return true
		}
	}
	return false
}

// remoteTarget picks the first target chain that is not the current one,
// deterministic and order-preserving. The caller guarantees the current chain
// is not the only entry.
func remoteTarget(chains []int64, current int64) int64 {
	for _, c := range chains {
		if c != current {
			return c
		}
	}
	return 0
}
