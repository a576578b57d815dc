package core

import (
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
)

// Notifier receives coordinator lifecycle notifications for external
// observers. Notifier failures are logged by the emitter and never fail the
// operation that produced them.
type Notifier interface {
	OrderCreated(o data.Order) error
	OrderStatusChanged(o data.Order, prev data.Status) error
	CrossChainInitiated(orderID, targetChain int64, hash common.Hash) error
	CrossChainCompleted(orderID, srcChain int64, hash common.Hash) error
}

type multiNotifier []Notifier

// NewMultiNotifier fans every notification out to all given notifiers. All of
// them are invoked even if one fails; the first error is reported.
func NewMultiNotifier(notifiers ...Notifier) Notifier {
	return multiNotifier(notifiers)
}

func (m multiNotifier) OrderCreated(o data.Order) error {
	return m.each(func(n Notifier) error { return n.OrderCreated(o) })
}

func (m multiNotifier) OrderStatusChanged(o data.Order, prev data.Status) error {
	return m.each(func(n Notifier) error { return n.OrderStatusChanged(o, prev) })
}

func (m multiNotifier) CrossChainInitiated(orderID, targetChain int64, hash common.Hash) error {
	return m.each(func(n Notifier) error { return n.CrossChainInitiated(orderID, targetChain, hash) })
}

func (m multiNotifier) CrossChainCompleted(orderID, srcChain int64, hash common.Hash) error {
	return m.each(func(n Notifier) error { return n.CrossChainCompleted(orderID, srcChain, hash) })
}

func (m multiNotifier) each(fn func(Notifier) error) error {
	var first error
	for _, n := range m {
		if err := fn(n); err != nil && first == nil {
			first = err
		}
	}
	return first
}

type logNotifier struct {
	log *logan.Entry
}

func NewLogNotifier(log *logan.Entry) Notifier {
	return logNotifier{log: log}
}

func (n logNotifier) OrderCreated(o data.Order) error {
	n.log.WithFields(logan.F{
		"order_id": o.ID,
		"owner":    o.Owner.String(),
		"token_in": o.TokenIn.String(),
	}).Info("order created")
	return nil
}

func (n logNotifier) OrderStatusChanged(o data.Order, prev data.Status) error {
	n.log.WithFields(logan.F{
		"order_id":   o.ID,
		"old_status": prev.String(),
		"new_status": o.Status.String(),
	}).Info("order status changed")
	return nil
}

func (n logNotifier) CrossChainInitiated(orderID, targetChain int64, hash common.Hash) error {
	n.log.WithFields(logan.F{
		"order_id":     orderID,
		"target_chain": targetChain,
		"message_hash": hash.String(),
	}).Info("cross-chain execution initiated")
	return nil
}

func (n logNotifier) CrossChainCompleted(orderID, srcChain int64, hash common.Hash) error {
	n.log.WithFields(logan.F{
		"order_id":     orderID,
		"src_chain":    srcChain,
		"message_hash": hash.String(),
	}).Info("cross-chain execution completed")
	return nil
}
