package service

import (
	"context"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/core"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

func (l *listener) handleOrderRequested(ctx context.Context, eventName string, log *types.Log) error {
	var event orderRequestedEvent
	if err := l.contractAbi.UnpackIntoInterface(&event, eventName, log.Data); err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{"event": eventName})
	}

	targetChains := make([]int64, 0, len(event.TargetChains))
	for _, c := range event.TargetChains {
		targetChains = append(targetChains, c.Int64())
	}

	id, err := l.coordinator.CreateOrder(ctx, event.Owner, event.TokenIn, event.TokenOut,
		event.AmountIn, event.MinAmountOut, time.Unix(event.Expiry.Int64(), 0), targetChains)
	switch err {
	case nil:
	case data.ErrInvalidAmount, data.ErrInvalidExpiry, data.ErrInvalidTargetChains:
		// stale or malformed requests are expected on catch-up
		l.log.WithError(err).WithField("owner", event.Owner.String()).Warn("skipping invalid order request")
		return nil
	default:
		return errors.Wrap(err, "failed to create order")
	}

	l.log.WithField("order_id", id).Debug("created requested order")
	return nil
}

func (l *listener) handleOrderCancelRequested(ctx context.Context, eventName string, log *types.Log) error {
	var event orderCancelRequestedEvent
	if err := l.contractAbi.UnpackIntoInterface(&event, eventName, log.Data); err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{"event": eventName})
	}

	orderID := event.OrderId.Int64()
	err := l.coordinator.CancelOrder(ctx, event.Owner, orderID)
	switch err {
	case nil:
	case data.ErrOrderNotFound, data.ErrInvalidOrderTransition, core.ErrUnauthorized:
		l.log.WithError(err).WithField("order_id", orderID).Warn("skipping cancel request")
		return nil
	default:
		return errors.Wrap(err, "failed to cancel order")
	}

	return nil
}

func (l *listener) handlePriceUpdated(ctx context.Context, eventName string, log *types.Log) error {
	var event priceUpdatedEvent
	if err := l.contractAbi.UnpackIntoInterface(&event, eventName, log.Data); err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{"event": eventName})
	}

	err := l.coordinator.OnPriceEvent(ctx, event.TokenIn, event.TokenOut, event.Price)
	return errors.Wrap(err, "failed to handle price event")
}

func (l *listener) handleMessageDelivered(ctx context.Context, eventName string, log *types.Log) error {
	var event messageDeliveredEvent
	if err := l.contractAbi.UnpackIntoInterface(&event, eventName, log.Data); err != nil {
		return errors.Wrap(err, "failed to unpack event", logan.F{"event": eventName})
	}

	id := core.MessageID{ChainID: event.SrcChainId.Int64(), Nonce: event.Nonce.Uint64()}
	hash := common.BytesToHash(event.MessageHash[:])

	err := l.processor.Process(ctx, id, hash, event.OrderId.Int64())
	switch err {
	case nil:
	case core.ErrMessageAlreadyProcessed, core.ErrOrderAlreadyExecuted, core.ErrOrderAlreadyCancelled,
		core.ErrOrderExpired, data.ErrOrderNotFound:
		// replays and state conflicts converge on the first outcome
		l.log.WithError(err).WithField("message_hash", hash.String()).Warn("skipping delivered message")
		return nil
	default:
		return errors.Wrap(err, "failed to process message")
	}

	return nil
}
