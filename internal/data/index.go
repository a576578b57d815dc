package data

import "github.com/ethereum/go-ethereum/common"

// PairIndex maps a (tokenIn, tokenOut) pair to every order ever registered
// for it, in insertion order. Entries are never removed: the index is a
// coarse candidate set, and readers filter terminal orders by status.
type PairIndex interface {
	Register(tokenIn, tokenOut common.Address, orderID int64)
	Query(tokenIn, tokenOut common.Address) []int64
}
