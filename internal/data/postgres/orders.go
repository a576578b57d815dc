package postgres

import (
	"math/big"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"github.com/fatih/structs"
	"github.com/lib/pq"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const ordersTable = "orders"

type orderRow struct {
	OrderID      int64         `structs:"order_id" db:"order_id"`
	SrcChain     int64         `structs:"src_chain" db:"src_chain"`
	Owner        string        `structs:"owner" db:"owner"`
	TokenIn      string        `structs:"token_in" db:"token_in"`
	TokenOut     string        `structs:"token_out" db:"token_out"`
	AmountIn     string        `structs:"amount_in" db:"amount_in"`
	MinAmountOut string        `structs:"min_amount_out" db:"min_amount_out"`
	ExpiresAt    time.Time     `structs:"expires_at" db:"expires_at"`
	TargetChains pq.Int64Array `structs:"target_chains" db:"target_chains"`
	Status       uint8         `structs:"status" db:"status"`
	PendingChain int64         `structs:"pending_chain" db:"pending_chain"`
}

// Orders mirrors coordinator order records into postgres. Written from status
// notifications for indexing and UI consumers, and read back once on startup
// to rebuild the in-memory state.
type Orders struct {
	db       *pgdb.DB
	srcChain int64
}

func NewOrders(db *pgdb.DB, srcChain int64) *Orders {
	return &Orders{db: db, srcChain: srcChain}
}

func (q *Orders) Insert(o data.Order) error {
	stmt := squirrel.Insert(ordersTable).SetMap(structs.Map(newOrderRow(o, q.srcChain)))
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert order")
}

func (q *Orders) UpdateStatus(o data.Order) error {
	stmt := squirrel.Update(ordersTable).
		SetMap(map[string]interface{}{"status": uint8(o.Status), "pending_chain": o.PendingChain}).
		Where(squirrel.Eq{"order_id": o.ID, "src_chain": q.srcChain})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update order status")
}

// Select returns every mirrored order of the chain in ID order.
func (q *Orders) Select() ([]data.Order, error) {
	var rows []orderRow
	stmt := squirrel.Select("*").From(ordersTable).
		Where(squirrel.Eq{"src_chain": q.srcChain}).
		OrderBy("order_id")

	if err := q.db.Select(&rows, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select orders")
	}

	orders := make([]data.Order, 0, len(rows))
	for _, r := range rows {
		o, err := r.toOrder()
		if err != nil {
			return nil, errors.Wrap(err, "failed to restore mirrored order")
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func newOrderRow(o data.Order, srcChain int64) orderRow {
	return orderRow{
		OrderID:      o.ID,
		SrcChain:     srcChain,
		Owner:        o.Owner.String(),
		TokenIn:      o.TokenIn.String(),
		TokenOut:     o.TokenOut.String(),
		AmountIn:     o.AmountIn.String(),
		MinAmountOut: o.MinAmountOut.String(),
		ExpiresAt:    o.Expiry.UTC(),
		TargetChains: pq.Int64Array(o.TargetChains),
		Status:       uint8(o.Status),
		PendingChain: o.PendingChain,
	}
}

func (r orderRow) toOrder() (data.Order, error) {
	amountIn, ok := new(big.Int).SetString(r.AmountIn, 10)
	if !ok {
		return data.Order{}, errors.Errorf("invalid amount_in %q of the order %d", r.AmountIn, r.OrderID)
	}
	minAmountOut, ok := new(big.Int).SetString(r.MinAmountOut, 10)
	if !ok {
		return data.Order{}, errors.Errorf("invalid min_amount_out %q of the order %d", r.MinAmountOut, r.OrderID)
	}

	return data.Order{
		ID:           r.OrderID,
		Owner:        common.HexToAddress(r.Owner),
		TokenIn:      common.HexToAddress(r.TokenIn),
		TokenOut:     common.HexToAddress(r.TokenOut),
		AmountIn:     amountIn,
		MinAmountOut: minAmountOut,
		Expiry:       r.ExpiresAt,
		TargetChains: []int64(r.TargetChains),
		Status:       data.Status(r.Status),
		PendingChain: r.PendingChain,
	}, nil
}
