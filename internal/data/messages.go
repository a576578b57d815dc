package data

import "github.com/ethereum/go-ethereum/common"

// ProcessedMessages is the append-only replay-protection set of inbound
// cross-chain message hashes. Marked hashes are never cleared.
type ProcessedMessages interface {
	Seen(hash common.Hash) bool
	Mark(hash common.Hash)
}
