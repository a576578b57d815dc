package service

import (
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/Swapica/order-coordinator-svc/internal/data/postgres"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// mirror persists coordinator notifications into the service's own postgres.
type mirror struct {
	orders     *postgres.Orders
	executions *postgres.Executions
}

func newMirror(orders *postgres.Orders, executions *postgres.Executions) *mirror {
	return &mirror{orders: orders, executions: executions}
}

func (m *mirror) OrderCreated(o data.Order) error {
	return errors.Wrap(m.orders.Insert(o), "failed to mirror created order")
}

func (m *mirror) OrderStatusChanged(o data.Order, _ data.Status) error {
	return errors.Wrap(m.orders.UpdateStatus(o), "failed to mirror order status")
}

func (m *mirror) CrossChainInitiated(orderID, targetChain int64, hash common.Hash) error {
	err := m.executions.Insert(data.ExecutionInitiated, orderID, targetChain, hash)
	return errors.Wrap(err, "failed to mirror initiated execution")
}

func (m *mirror) CrossChainCompleted(orderID, srcChain int64, hash common.Hash) error {
	err := m.executions.Insert(data.ExecutionCompleted, orderID, srcChain, hash)
	return errors.Wrap(err, "failed to mirror completed execution")
}
