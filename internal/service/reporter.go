package service

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/Swapica/order-coordinator-svc/internal/service/requests"
	"github.com/ethereum/go-ethereum/common"
	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/json-api-connector/cerrors"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// reporter mirrors coordinator notifications into the collector service.
type reporter struct {
	log       *logan.Entry
	collector *jsonapi.Connector
	chainID   int64
}

func newReporter(log *logan.Entry, collector *jsonapi.Connector, chainID int64) *reporter {
	return &reporter{log: log, collector: collector, chainID: chainID}
}

func (r *reporter) OrderCreated(o data.Order) error {
	body := requests.NewAddOrder(o, r.chainID)
	u, _ := url.Parse("/orders")

	err := r.collector.PostJSON(u, body, context.Background(), nil)
	if isConflict(err) {
		r.log.WithField("order_id", o.ID).Warn("order already exists in collector DB, skipping it")
		return nil
	}
	return errors.Wrap(err, "failed to add order into collector service")
}

func (r *reporter) OrderStatusChanged(o data.Order, _ data.Status) error {
	body := requests.NewUpdateOrder(o)
	u, _ := url.Parse(strconv.FormatInt(r.chainID, 10) + "/orders")
	err := r.collector.PatchJSON(u, body, context.Background(), nil)
	return errors.Wrap(err, "failed to update order in collector service")
}

func (r *reporter) CrossChainInitiated(orderID, targetChain int64, hash common.Hash) error {
	err := r.addExecution(data.ExecutionInitiated, orderID, targetChain, hash)
	return errors.Wrap(err, "failed to add initiated execution into collector service")
}

func (r *reporter) CrossChainCompleted(orderID, srcChain int64, hash common.Hash) error {
	err := r.addExecution(data.ExecutionCompleted, orderID, srcChain, hash)
	return errors.Wrap(err, "failed to add completed execution into collector service")
}

func (r *reporter) addExecution(kind string, orderID, chainID int64, hash common.Hash) error {
	body := requests.NewAddExecution(kind, orderID, chainID, hash)
	u, _ := url.Parse("/cross_chain_executions")

	err := r.collector.PostJSON(u, body, context.Background(), nil)
	if isConflict(err) {
		r.log.WithField("message_hash", hash.String()).Warn("execution already exists in collector DB, skipping it")
		return nil
	}
	return err
}

func isConflict(err error) bool {
	c, ok := err.(cerrors.Error)
	return ok && c.Status() == http.StatusConflict
}
