package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const handledLogsTable = "handled_logs"

// handledLogs records every dispatched chain log by its (tx hash, log index)
// identity, per chain. Append-only.
type handledLogs struct {
	db      *pgdb.DB
	chainID int64
}

func NewHandledLogs(db *pgdb.DB, chainID int64) data.HandledLogs {
	return handledLogs{db: db, chainID: chainID}
}

func (q handledLogs) Seen(txHash common.Hash, logIndex uint) (bool, error) {
	var result struct {
		One int `db:"one"`
	}
	stmt := squirrel.Select("1 AS one").From(handledLogsTable).Where(squirrel.Eq{
		"chain_id":  q.chainID,
		"tx_hash":   txHash.String(),
		"log_index": logIndex,
	})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, errors.Wrap(err, "failed to select handled log")
	}
	return true, nil
}

func (q handledLogs) Mark(txHash common.Hash, logIndex uint) error {
	stmt := squirrel.Insert(handledLogsTable).SetMap(map[string]interface{}{
		"chain_id":  q.chainID,
		"tx_hash":   txHash.String(),
		"log_index": logIndex,
	})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert handled log")
}
