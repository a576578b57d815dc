package postgres

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"gitlab.com/distributed_lab/kit/pgdb"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const cursorsTable = "listener_cursors"
const cursorChainCol = "chain_id"

type cursor struct {
	db      *pgdb.DB
	chainID int64
}

func NewCursor(db *pgdb.DB, chainID int64) (data.Cursor, error) {
	q := cursor{db: db, chainID: chainID}
	if err := q.init(); err != nil {
		return cursor{}, errors.Wrap(err, "failed to initialize listener cursor storage")
	}
	return q, nil
}

func (q cursor) init() error {
	pos, err := q.Get()
	if err != nil {
		return errors.Wrap(err, "failed to check cursor existence")
	}
	if pos != nil {
		return nil
	}

	stmt := squirrel.Insert(cursorsTable).
		Columns("block", "log_index", cursorChainCol).
		Values(0, 0, q.chainID)
	err = q.db.Exec(stmt)
	return errors.Wrap(err, "failed to insert listener cursor")
}

func (q cursor) Set(pos data.CursorPos) error {
	stmt := squirrel.Update(cursorsTable).
		Set("block", pos.Block).
		Set("log_index", pos.LogIndex).
		Where(squirrel.Eq{cursorChainCol: q.chainID})
	err := q.db.Exec(stmt)
	return errors.Wrap(err, "failed to update listener cursor")
}

func (q cursor) Get() (*data.CursorPos, error) {
	var result struct {
		Block    uint64 `db:"block"`
		LogIndex uint   `db:"log_index"`
	}
	stmt := squirrel.Select("block", "log_index").From(cursorsTable).Where(squirrel.Eq{cursorChainCol: q.chainID})

	if err := q.db.Get(&result, stmt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, errors.Wrap(err, "failed to select listener cursor")
	}

	return &data.CursorPos{Block: result.Block, LogIndex: result.LogIndex}, nil
}
