package service

import (
	"context"
	"math/big"
	"strings"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/core"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

const coordinatorABI = `[
{"anonymous":false,"inputs":[{"indexed":false,"internalType":"address","name":"owner","type":"address"},{"indexed":false,"internalType":"address","name":"tokenIn","type":"address"},{"indexed":false,"internalType":"address","name":"tokenOut","type":"address"},{"indexed":false,"internalType":"uint256","name":"amountIn","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"minAmountOut","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"expiry","type":"uint256"},{"indexed":false,"internalType":"uint256[]","name":"targetChains","type":"uint256[]"}],"name":"OrderRequested","type":"event"},
{"anonymous":false,"inputs":[{"indexed":false,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":false,"internalType":"address","name":"owner","type":"address"}],"name":"OrderCancelRequested","type":"event"},
{"anonymous":false,"inputs":[{"indexed":false,"internalType":"address","name":"tokenIn","type":"address"},{"indexed":false,"internalType":"address","name":"tokenOut","type":"address"},{"indexed":false,"internalType":"uint256","name":"price","type":"uint256"}],"name":"PriceUpdated","type":"event"},
{"anonymous":false,"inputs":[{"indexed":false,"internalType":"uint256","name":"srcChainId","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"nonce","type":"uint256"},{"indexed":false,"internalType":"uint256","name":"orderId","type":"uint256"},{"indexed":false,"internalType":"bytes32","name":"messageHash","type":"bytes32"}],"name":"MessageDelivered","type":"event"}]`

type handler func(ctx context.Context, eventName string, log *types.Log) error

// listener feeds coordinator-contract events into the execution coordinator
// and the message processor. On start it catches up from the persisted cursor
// before subscribing to new logs. Each log is dispatched at most once: the
// cursor tracks the exact (block, index) position, and the handled-log set
// covers the window between a dispatched log and the cursor update.
type listener struct {
	log            *logan.Entry
	eth            *ethclient.Client
	contract       common.Address
	cursor         data.Cursor
	handled        data.HandledLogs
	requestTimeout time.Duration

	coordinator *core.Coordinator
	processor   *core.Processor

	contractAbi abi.ABI
	handlers    map[string]handler
}

func newListener(log *logan.Entry, eth *ethclient.Client, contract common.Address, requestTimeout time.Duration,
	cursor data.Cursor, handled data.HandledLogs, coordinator *core.Coordinator, processor *core.Processor) *listener {

	contractAbi, err := abi.JSON(strings.NewReader(coordinatorABI))
	if err != nil {
		panic(errors.Wrap(err, "failed to parse coordinator ABI"))
	}

	l := &listener{
		log:            log,
		eth:            eth,
		contract:       contract,
		cursor:         cursor,
		handled:        handled,
		requestTimeout: requestTimeout,
		coordinator:    coordinator,
		processor:      processor,
		contractAbi:    contractAbi,
	}
	l.handlers = map[string]handler{
		"OrderRequested":       l.handleOrderRequested,
		"OrderCancelRequested": l.handleOrderCancelRequested,
		"PriceUpdated":         l.handlePriceUpdated,
		"MessageDelivered":     l.handleMessageDelivered,
	}
	return l
}

func (l *listener) run(ctx context.Context) error {
	pos, err := l.cursor.Get()
	if err != nil {
		return errors.Wrap(err, "failed to get listener cursor")
	}
	var from data.CursorPos
	if pos != nil {
		from = *pos
	}

	current, err := l.latestBlock(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get the latest block from the network")
	}
	if from.Block <= current {
		if err = l.catchUp(ctx, from, current); err != nil {
			return errors.Wrap(err, "failed to catch up on past events")
		}
	}

	events := make(chan types.Log, 256)
	sub, err := l.eth.SubscribeFilterLogs(ctx, l.filters(), events)
	if err != nil {
		return errors.Wrap(err, "failed to subscribe to logs")
	}
	defer sub.Unsubscribe()

	l.log.Infof("listening coordinator events from the block %d", current+1)
	for {
		select {
		case evt := <-events:
			if err = l.process(ctx, &evt); err != nil {
				return errors.Wrap(err, "failed to handle event")
			}
		case err = <-sub.Err():
			return errors.Wrap(err, "subscription error occurred")
		case <-ctx.Done():
			return nil
		}
	}
}

func (l *listener) catchUp(ctx context.Context, from data.CursorPos, to uint64) error {
	child, cancel := context.WithTimeout(ctx, l.requestTimeout)
	defer cancel()

	q := l.filters()
	q.FromBlock = new(big.Int).SetUint64(from.Block)
	q.ToBlock = new(big.Int).SetUint64(to)

	logs, err := l.eth.FilterLogs(child, q)
	if err != nil {
		return errors.Wrap(err, "failed to filter logs")
	}
	for i := range logs {
		if behindCursor(from, &logs[i]) {
			continue
		}
		if err = l.process(ctx, &logs[i]); err != nil {
			return errors.Wrap(err, "failed to handle past event")
		}
	}

	err = l.cursor.Set(data.CursorPos{Block: to + 1})
	return errors.Wrap(err, "failed to save listener cursor")
}

// process dispatches one log at most once. A log already in the handled set
// is skipped; otherwise it is handled, marked, and only then the cursor
// advances past it.
func (l *listener) process(ctx context.Context, evt *types.Log) error {
	seen, err := l.handled.Seen(evt.TxHash, evt.Index)
	if err != nil {
		return errors.Wrap(err, "failed to check handled logs")
	}
	if seen {
		l.log.WithFields(logan.F{
			"tx_hash":   evt.TxHash.String(),
			"log_index": evt.Index,
		}).Debug("skipping already handled log")
	} else {
		if err = l.dispatch(ctx, evt); err != nil {
			return err
		}
		if err = l.handled.Mark(evt.TxHash, evt.Index); err != nil {
			return errors.Wrap(err, "failed to mark handled log")
		}
	}

	err = l.cursor.Set(data.CursorPos{Block: evt.BlockNumber, LogIndex: evt.Index + 1})
	return errors.Wrap(err, "failed to save listener cursor")
}

func (l *listener) latestBlock(ctx context.Context) (uint64, error) {
	child, cancel := context.WithTimeout(ctx, l.requestTimeout)
	defer cancel()

	n, err := l.eth.BlockNumber(child)
	return n, errors.Wrap(err, "failed to get eth_blockNumber")
}

func (l *listener) filters() ethereum.FilterQuery {
	topics := make([]common.Hash, 0, len(l.handlers))
	for eventName := range l.handlers {
		topics = append(topics, l.contractAbi.Events[eventName].ID)
	}

	return ethereum.FilterQuery{
		Addresses: []common.Address{l.contract},
		Topics:    [][]common.Hash{topics},
	}
}

func (l *listener) dispatch(ctx context.Context, evt *types.Log) error {
	if len(evt.Topics) == 0 {
		return nil
	}
	event, err := l.contractAbi.EventByID(evt.Topics[0])
	if err != nil {
		l.log.WithField("topic", evt.Topics[0].String()).Debug("skipping unknown event")
		return nil
	}

	h, ok := l.handlers[event.Name]
	if !ok {
		return nil
	}
	return h(ctx, event.Name, evt)
}

func behindCursor(pos data.CursorPos, evt *types.Log) bool {
	return evt.BlockNumber < pos.Block ||
		(evt.BlockNumber == pos.Block && evt.Index < pos.LogIndex)
}
