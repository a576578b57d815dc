package mem

import (
	"math/big"
	"testing"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testOwner = common.HexToAddress("0x00000000000000000000000000000000000000c0")
	sellToken = common.HexToAddress("0x0000000000000000000000000000000000000301")
	buyToken  = common.HexToAddress("0x0000000000000000000000000000000000000302")
)

type hookCall struct {
	id   int64
	prev data.Status
	next data.Status
}

func newTestOrders(now time.Time) (*Orders, *PairIndex, *[]hookCall) {
	index := NewPairIndex()
	calls := new([]hookCall)
	orders := NewOrders(index, func(o data.Order, prev data.Status) {
		*calls = append(*calls, hookCall{id: o.ID, prev: prev, next: o.Status})
	}, func() time.Time { return now })
	return orders, index, calls
}

func validOrder(now time.Time) data.Order {
	return data.Order{
		Owner:        testOwner,
		TokenIn:      sellToken,
		TokenOut:     buyToken,
		AmountIn:     big.NewInt(100),
		MinAmountOut: big.NewInt(90),
		Expiry:       now.Add(time.Hour),
		TargetChains: []int64{1},
	}
}

func TestOrdersCreate(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, index, _ := newTestOrders(now)

	for want := int64(1); want <= 3; want++ {
		id, err := orders.Create(validOrder(now))
		require.NoError(t, err)
		assert.Equal(t, want, id)
	}

	o, err := orders.Get(1)
	require.NoError(t, err)
	assert.Equal(t, data.StatusActive, o.Status)
	assert.Equal(t, []int64{1, 2, 3}, index.Query(sellToken, buyToken))
	assert.Empty(t, index.Query(buyToken, sellToken), "pairs are directional")
}

func TestOrdersCreateValidation(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, index, _ := newTestOrders(now)

	o := validOrder(now)
	o.AmountIn = big.NewInt(0)
	_, err := orders.Create(o)
	require.ErrorIs(t, err, data.ErrInvalidAmount)

	o = validOrder(now)
	o.Expiry = now
	_, err = orders.Create(o)
	require.ErrorIs(t, err, data.ErrInvalidExpiry)

	o = validOrder(now)
	o.TargetChains = nil
	_, err = orders.Create(o)
	require.ErrorIs(t, err, data.ErrInvalidTargetChains)

	o = validOrder(now)
	o.MinAmountOut = nil
	_, err = orders.Create(o)
	require.ErrorIs(t, err, data.ErrInvalidAmount)

	o = validOrder(now)
	o.MinAmountOut = big.NewInt(-1)
	_, err = orders.Create(o)
	require.ErrorIs(t, err, data.ErrInvalidAmount)

	assert.Empty(t, index.Query(sellToken, buyToken))
}

func TestOrdersGetUnknown(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, _, _ := newTestOrders(now)

	_, err := orders.Get(1)
	require.ErrorIs(t, err, data.ErrOrderNotFound)
	assert.Equal(t, data.StatusNone, orders.Status(1))
}

func TestOrdersTransitionEdges(t *testing.T) {
	now := time.Unix(1700000000, 0)

	legal := []struct {
		name string
		path []data.Status
	}{
		{"execute", []data.Status{data.StatusExecuted}},
		{"cancel", []data.Status{data.StatusCancelled}},
		{"expire", []data.Status{data.StatusExpired}},
		{"bridge then execute", []data.Status{data.StatusPendingCrossChain, data.StatusExecuted}},
	}
	for _, tc := range legal {
		t.Run(tc.name, func(t *testing.T) {
			orders, _, _ := newTestOrders(now)
			id, err := orders.Create(validOrder(now))
			require.NoError(t, err)

			for _, next := range tc.path {
				_, err = orders.Transition(id, next, 2)
				require.NoError(t, err)
			}
		})
	}

	illegal := []struct {
		name string
		from data.Status
		to   data.Status
	}{
		{"executed is terminal", data.StatusExecuted, data.StatusActive},
		{"cancelled is terminal", data.StatusCancelled, data.StatusExecuted},
		{"expired is terminal", data.StatusExpired, data.StatusActive},
		{"pending cannot cancel", data.StatusPendingCrossChain, data.StatusCancelled},
		{"pending cannot expire", data.StatusPendingCrossChain, data.StatusExpired},
	}
	for _, tc := range illegal {
		t.Run(tc.name, func(t *testing.T) {
			orders, _, _ := newTestOrders(now)
			id, err := orders.Create(validOrder(now))
			require.NoError(t, err)

			if tc.from != data.StatusActive {
				_, err = orders.Transition(id, tc.from, 2)
				require.NoError(t, err)
			}

			_, err = orders.Transition(id, tc.to, 0)
			require.ErrorIs(t, err, data.ErrInvalidOrderTransition)
		})
	}
}

func TestOrdersPendingChainBookkeeping(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, _, _ := newTestOrders(now)
	id, err := orders.Create(validOrder(now))
	require.NoError(t, err)

	o, err := orders.Transition(id, data.StatusPendingCrossChain, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), o.PendingChain)

	o, err = orders.Transition(id, data.StatusExecuted, 0)
	require.NoError(t, err)
	assert.Zero(t, o.PendingChain, "pending chain is cleared on leaving the pending state")
}

func TestOrdersStatusHook(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, _, calls := newTestOrders(now)
	id, err := orders.Create(validOrder(now))
	require.NoError(t, err)

	_, err = orders.Transition(id, data.StatusPendingCrossChain, 2)
	require.NoError(t, err)
	_, err = orders.Transition(id, data.StatusExecuted, 0)
	require.NoError(t, err)

	require.Equal(t, []hookCall{
		{id: id, prev: data.StatusActive, next: data.StatusPendingCrossChain},
		{id: id, prev: data.StatusPendingCrossChain, next: data.StatusExecuted},
	}, *calls)
}

func TestOrdersRestore(t *testing.T) {
	now := time.Unix(1700000000, 0)
	orders, index, calls := newTestOrders(now)

	o := validOrder(now)
	o.ID = 7
	o.Status = data.StatusPendingCrossChain
	o.PendingChain = 2
	require.NoError(t, orders.Restore(o))
	require.Error(t, orders.Restore(o), "restoring the same ID twice must fail")

	got, err := orders.Get(7)
	require.NoError(t, err)
	assert.Equal(t, data.StatusPendingCrossChain, got.Status)
	assert.Equal(t, int64(2), got.PendingChain)
	assert.Equal(t, []int64{7}, index.Query(sellToken, buyToken))
	assert.Empty(t, *calls, "restore fires no status hooks")

	id, err := orders.Create(validOrder(now))
	require.NoError(t, err)
	assert.Equal(t, int64(8), id, "ID sequence continues past restored orders")
}

func TestMessagesAppendOnly(t *testing.T) {
	msgs := NewMessages()
	hash := common.HexToHash("0xaa")

	assert.False(t, msgs.Seen(hash))
	msgs.Mark(hash)
	assert.True(t, msgs.Seen(hash))
	assert.False(t, msgs.Seen(common.HexToHash("0xbb")))
}
