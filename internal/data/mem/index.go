package mem

import (
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
)

type pairKey struct {
	tokenIn  common.Address
	tokenOut common.Address
}

// PairIndex is the in-memory eligibility index. Append-only: terminal orders
// stay registered and are filtered by readers.
type PairIndex struct {
	byPair map[pairKey][]int64
}

func NewPairIndex() *PairIndex {
	return &PairIndex{byPair: make(map[pairKey][]int64)}
}

func (q *PairIndex) Register(tokenIn, tokenOut common.Address, orderID int64) {
	k := pairKey{tokenIn: tokenIn, tokenOut: tokenOut}
	q.byPair[k] = append(q.byPair[k], orderID)
}

func (q *PairIndex) Query(tokenIn, tokenOut common.Address) []int64 {
	ids := q.byPair[pairKey{tokenIn: tokenIn, tokenOut: tokenOut}]
	return append([]int64(nil), ids...)
}

var _ data.PairIndex = (*PairIndex)(nil)
