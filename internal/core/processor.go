package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Processor feeds validated inbound cross-chain messages into the
// coordinator. It is the path that finalizes PENDING_CROSS_CHAIN orders after
// the remote chain has processed the bridge transfer.
type Processor struct {
	log       *logan.Entry
	transport MessageTransport
	coord     *Coordinator
}

func NewProcessor(log *logan.Entry, transport MessageTransport, coord *Coordinator) *Processor {
	return &Processor{log: log, transport: transport, coord: coord}
}

// Process executes the order referenced by an inbound message at most once.
// The transport attests the identifier/hash pair first; a replayed hash fails
// with ErrMessageAlreadyProcessed.
func (p *Processor) Process(ctx context.Context, id MessageID, hash common.Hash, orderID int64) error {
	if err := p.transport.Validate(ctx, id, hash); err != nil {
		return errors.Wrap(err, "failed to validate message")
	}

	if err := p.coord.ExecuteInbound(ctx, id, hash, orderID); err != nil {
		return err
	}

	p.log.WithFields(logan.F{
		"order_id":     orderID,
		"src_chain":    id.ChainID,
		"message_hash": hash.String(),
	}).Info("processed cross-chain message")
	return nil
}
