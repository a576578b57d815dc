package mem

import (
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
)

// Messages is the in-memory processed-message set.
type Messages struct {
	seen map[common.Hash]bool
}

func NewMessages() *Messages {
	return &Messages{seen: make(map[common.Hash]bool)}
}

func (q *Messages) Seen(hash common.Hash) bool {
	return q.seen[hash]
}

func (q *Messages) Mark(hash common.Hash) {
	q.seen[hash] = true
}

var _ data.ProcessedMessages = (*Messages)(nil)
