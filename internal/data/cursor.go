package data

import "github.com/ethereum/go-ethereum/common"

// CursorPos is the next chain log position the listener has to process:
// logs of earlier blocks and logs of Block with an index below LogIndex are
// already handled.
type CursorPos struct {
	Block    uint64
	LogIndex uint
}

// Cursor persists the listener position so a restarted service resumes
// exactly after the last handled log instead of replaying or skipping the
// remainder of a block.
type Cursor interface {
	Set(pos CursorPos) error
	Get() (*CursorPos, error)
}

// HandledLogs is the persisted identity set of dispatched chain logs. It
// covers the window between a handled log and the cursor update: a log marked
// here is never dispatched again even when the cursor still points at it.
type HandledLogs interface {
	Seen(txHash common.Hash, logIndex uint) (bool, error)
	Mark(txHash common.Hash, logIndex uint) error
}
