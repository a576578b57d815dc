package core

import (
	"context"
	"testing"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gitlab.com/distributed_lab/logan/v3"
)

type fakeTransport struct {
	err   error
	calls int
}

func (f *fakeTransport) Validate(_ context.Context, _ MessageID, _ common.Hash) error {
	f.calls++
	return f.err
}

var inboundID = MessageID{ChainID: 9, Nonce: 42}

func TestProcessExecutesOrder(t *testing.T) {
	e := newEnv(1, nil)
	proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
	id := e.createOrder(t, eth(1), 1, 2)
	hash := common.HexToHash("0x01")

	require.NoError(t, proc.Process(context.Background(), inboundID, hash, id))

	assert.Equal(t, data.StatusExecuted, e.coord.OrderStatus(id))
	assert.Equal(t, 1, e.swap.calls)
	require.Len(t, e.notifier.completed, 1)
	assert.Equal(t, ccEvent{orderID: id, chainID: 9, hash: hash}, e.notifier.completed[0])
}

func TestProcessRejectsReplay(t *testing.T) {
	e := newEnv(1, nil)
	proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
	first := e.createOrder(t, eth(1), 1)
	second := e.createOrder(t, eth(1), 1)
	hash := common.HexToHash("0x02")
	ctx := context.Background()

	require.NoError(t, proc.Process(ctx, inboundID, hash, first))
	require.ErrorIs(t, proc.Process(ctx, inboundID, hash, first), ErrMessageAlreadyProcessed)

	// the hash is spent even when referenced from another order
	require.ErrorIs(t, proc.Process(ctx, inboundID, hash, second), ErrMessageAlreadyProcessed)
	assert.Equal(t, data.StatusActive, e.coord.OrderStatus(second))
}

func TestProcessInvalidMessage(t *testing.T) {
	e := newEnv(1, nil)
	transport := &fakeTransport{err: ErrInvalidMessage}
	proc := NewProcessor(logan.New(), transport, e.coord)
	id := e.createOrder(t, eth(1), 1)
	hash := common.HexToHash("0x03")
	ctx := context.Background()

	require.Error(t, proc.Process(ctx, inboundID, hash, id))
	assert.Equal(t, data.StatusActive, e.coord.OrderStatus(id))
	assert.Zero(t, e.swap.calls)

	// a rejected message does not spend the hash
	transport.err = nil
	require.NoError(t, proc.Process(ctx, inboundID, hash, id))
	assert.Equal(t, data.StatusExecuted, e.coord.OrderStatus(id))
}

func TestProcessStatusConflicts(t *testing.T) {
	ctx := context.Background()

	t.Run("executed", func(t *testing.T) {
		e := newEnv(1, nil)
		proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
		id := e.createOrder(t, eth(1), 1)
		require.NoError(t, e.coord.OnPriceEvent(ctx, tokenIn, tokenOut, eth(1)))

		err := proc.Process(ctx, inboundID, common.HexToHash("0x04"), id)
		require.ErrorIs(t, err, ErrOrderAlreadyExecuted)
	})

	t.Run("cancelled", func(t *testing.T) {
		e := newEnv(1, nil)
		proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
		id := e.createOrder(t, eth(1), 1)
		require.NoError(t, e.coord.CancelOrder(ctx, owner, id))

		err := proc.Process(ctx, inboundID, common.HexToHash("0x05"), id)
		require.ErrorIs(t, err, ErrOrderAlreadyCancelled)
	})

	t.Run("expired lazily", func(t *testing.T) {
		e := newEnv(1, nil)
		proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
		id := e.createOrder(t, eth(1), 1)
		e.now = e.now.Add(2 * time.Hour)

		hash := common.HexToHash("0x06")
		err := proc.Process(ctx, inboundID, hash, id)
		require.ErrorIs(t, err, ErrOrderExpired)
		assert.Equal(t, data.StatusExpired, e.coord.OrderStatus(id))

		// the failed attempt still spent the hash
		err = proc.Process(ctx, inboundID, hash, id)
		require.ErrorIs(t, err, ErrMessageAlreadyProcessed)
	})

	t.Run("not found", func(t *testing.T) {
		e := newEnv(1, nil)
		proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)

		err := proc.Process(ctx, inboundID, common.HexToHash("0x07"), 404)
		require.ErrorIs(t, err, data.ErrOrderNotFound)
	})
}

func TestProcessCompletesPendingOrderPastExpiry(t *testing.T) {
	e := newEnv(1, []common.Address{tokenIn})
	proc := NewProcessor(logan.New(), &fakeTransport{}, e.coord)
	ctx := context.Background()

	id, err := e.coord.CreateOrder(ctx, owner, tokenIn, tokenOut,
		eth(1), eth(1), e.now.Add(time.Hour), []int64{2})
	require.NoError(t, err)
	require.NoError(t, e.coord.OnPriceEvent(ctx, tokenIn, tokenOut, eth(1)))
	require.Equal(t, data.StatusPendingCrossChain, e.coord.OrderStatus(id))

	// the remote leg was initiated while the order was live
	e.now = e.now.Add(2 * time.Hour)
	require.NoError(t, proc.Process(ctx, inboundID, e.notifier.initiated[0].hash, id))
	assert.Equal(t, data.StatusExecuted, e.coord.OrderStatus(id))
}
