package mem

import (
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/data"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Orders keeps order records in memory. It is deliberately not safe for
// concurrent use on its own: the execution coordinator owns it and serializes
// every access behind its operation lock.
type Orders struct {
	index    data.PairIndex
	onStatus data.StatusHook
	now      func() time.Time

	nextID int64
	byID   map[int64]*data.Order
}

func NewOrders(index data.PairIndex, onStatus data.StatusHook, now func() time.Time) *Orders {
	if now == nil {
		now = time.Now
	}
	return &Orders{
		index:    index,
		onStatus: onStatus,
		now:      now,
		nextID:   1,
		byID:     make(map[int64]*data.Order),
	}
}

func (q *Orders) Create(o data.Order) (int64, error) {
	if o.AmountIn == nil || o.AmountIn.Sign() <= 0 {
		return 0, data.ErrInvalidAmount
	}
	if o.MinAmountOut == nil || o.MinAmountOut.Sign() < 0 {
		return 0, data.ErrInvalidAmount
	}
	if !o.Expiry.After(q.now()) {
		return 0, data.ErrInvalidExpiry
	}
	if len(o.TargetChains) == 0 {
		return 0, data.ErrInvalidTargetChains
	}

	o.ID = q.nextID
	q.nextID++
	o.Status = data.StatusActive
	o.PendingChain = 0

	stored := o
	q.byID[o.ID] = &stored
	q.index.Register(o.TokenIn, o.TokenOut, o.ID)
	return o.ID, nil
}

// Restore inserts a previously persisted order as is, preserving its ID,
// status and pending chain. Used to rebuild state from the mirror on startup;
// fires no status hooks.
func (q *Orders) Restore(o data.Order) error {
	if _, ok := q.byID[o.ID]; ok {
		return errors.Errorf("order %d is already restored", o.ID)
	}

	stored := o
	q.byID[o.ID] = &stored
	if o.ID >= q.nextID {
		q.nextID = o.ID + 1
	}
	q.index.Register(o.TokenIn, o.TokenOut, o.ID)
	return nil
}

func (q *Orders) Get(id int64) (data.Order, error) {
	o, ok := q.byID[id]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	return *o, nil
}

func (q *Orders) Status(id int64) data.Status {
	o, ok := q.byID[id]
	if !ok {
		return data.StatusNone
	}
	return o.Status
}

func (q *Orders) Transition(id int64, next data.Status, pendingChain int64) (data.Order, error) {
	o, ok := q.byID[id]
	if !ok {
		return data.Order{}, data.ErrOrderNotFound
	}
	if !legalEdge(o.Status, next) {
		return data.Order{}, data.ErrInvalidOrderTransition
	}

	prev := o.Status
	o.Status = next
	if next == data.StatusPendingCrossChain {
		o.PendingChain = pendingChain
	} else {
		o.PendingChain = 0
	}

	updated := *o
	if q.onStatus != nil {
		q.onStatus(updated, prev)
	}
	return updated, nil
}

func legalEdge(from, to data.Status) bool {
	switch from {
	case data.StatusActive:
		return to == data.StatusExecuted || to == data.StatusCancelled ||
			to == data.StatusExpired || to == data.StatusPendingCrossChain
	case data.StatusPendingCrossChain:
		return to == data.StatusExecuted
	}
	return false
}
