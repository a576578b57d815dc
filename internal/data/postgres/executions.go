package postgres

import (
	"github.com/Masterminds/squirrel"
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const executionsTable = "cross_chain_executions"

// Executions records cross-chain execution attempts by message hash, one row
// per initiated/completed notification.
type Executions struct {
	db *pgdb.DB
}

func NewExecutions(db *pgdb.DB) *Executions {
	return &Executions{db: db}
}

func (q *Executions) Insert(kind string, orderID, chainID int64, hash common.Hash) error {
	stmt := squirrel.Insert(executionsTable).SetMap(map[string]interface{}{
		"kind":         kind,
		"order_id":     orderID,
		"chain_id":     chainID,
		"message_hash": hash.String(),
	})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert execution")
}

// SelectHashes returns the message hashes of every recorded execution of the
// given kind.
func (q *Executions) SelectHashes(kind string) ([]common.Hash, error) {
	var rows []struct {
		MessageHash string `db:"message_hash"`
	}
	stmt := squirrel.Select("message_hash").From(executionsTable).Where(squirrel.Eq{"kind": kind})

	if err := q.db.Select(&rows, stmt); err != nil {
		return nil, errors.Wrap(err, "failed to select executions")
	}

	hashes := make([]common.Hash, 0, len(rows))
	for _, r := range rows {
		hashes = append(hashes, common.HexToHash(r.MessageHash))
	}
	return hashes, nil
}
