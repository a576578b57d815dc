package service

import (
	"context"
	"time"

	"github.com/Swapica/order-coordinator-svc/internal/config"
	"github.com/Swapica/order-coordinator-svc/internal/core"
	"github.com/Swapica/order-coordinator-svc/internal/data"
	"github.com/Swapica/order-coordinator-svc/internal/data/mem"
	"github.com/Swapica/order-coordinator-svc/internal/data/postgres"
	"gitlab.com/distributed_lab/logan/v3"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/distributed_lab/running"
)

type service struct {
	log      *logan.Entry
	listener *listener
}

func (s *service) run() error {
	s.log.Info("service started")
	running.WithBackOff(context.Background(), s.log, "listener", s.listener.run, time.Second, time.Second, time.Minute)

	return nil
}

func newService(cfg config.Config) *service {
	log := cfg.Log()
	network := cfg.Network()
	tokens := cfg.Tokens()

	cursor, err := postgres.NewCursor(cfg.DB(), network.ChainID)
	if err != nil {
		panic(errors.Wrap(err, "failed to instantiate listener cursor DB API"))
	}
	handled := postgres.NewHandledLogs(cfg.DB(), network.ChainID)
	mirrorOrders := postgres.NewOrders(cfg.DB(), network.ChainID)
	executions := postgres.NewExecutions(cfg.DB())

	relayer := newRelayer(log, cfg.Relayer(), network.ChainID)
	probe := newCapabilityProbe(network.EthClient, network.RequestTimeout)
	resolver := core.NewResolver(probe, tokens.Bridgeable, tokens.Admin)

	notifier := core.NewMultiNotifier(
		core.NewLogNotifier(log),
		newMirror(mirrorOrders, executions),
		newReporter(log, cfg.Collector(), network.ChainID),
	)

	index := mem.NewPairIndex()
	orders := mem.NewOrders(index, func(o data.Order, prev data.Status) {
		if err := notifier.OrderStatusChanged(o, prev); err != nil {
			log.WithError(err).WithField("order_id", o.ID).Warn("failed to notify status change")
		}
	}, nil)
	messages := mem.NewMessages()

	restoreState(log, mirrorOrders, executions, orders, messages)

	coordinator := core.NewCoordinator(core.CoordinatorOpts{
		Log:      log,
		ChainID:  network.ChainID,
		Orders:   orders,
		Index:    index,
		Messages: messages,
		Resolver: resolver,
		Swap:     relayer,
		Bridge:   relayer,
		Vault:    relayer,
		Notifier: notifier,
	})
	for token, bridgeable := range tokens.Overrides {
		if err = coordinator.SetTokenOverride(tokens.Admin, token, bridgeable); err != nil {
			panic(errors.Wrap(err, "failed to apply token override"))
		}
	}

	processor := core.NewProcessor(log, relayer, coordinator)

	return &service{
		log: log,
		listener: newListener(log, network.EthClient, network.Contract, network.RequestTimeout,
			cursor, handled, coordinator, processor),
	}
}

// restoreState rebuilds the in-memory order store and processed-message set
// from the postgres mirror, so a restarted service keeps previously ACTIVE
// and PENDING_CROSS_CHAIN orders instead of resuming with empty state.
func restoreState(log *logan.Entry, mirrorOrders *postgres.Orders, executions *postgres.Executions,
	orders *mem.Orders, messages *mem.Messages) {

	stored, err := mirrorOrders.Select()
	if err != nil {
		panic(errors.Wrap(err, "failed to load mirrored orders"))
	}
	for _, o := range stored {
		if err = orders.Restore(o); err != nil {
			panic(errors.Wrap(err, "failed to restore mirrored order"))
		}
	}

	hashes, err := executions.SelectHashes(data.ExecutionCompleted)
	if err != nil {
		panic(errors.Wrap(err, "failed to load completed executions"))
	}
	for _, h := range hashes {
		messages.Mark(h)
	}

	log.WithFields(logan.F{
		"orders":   len(stored),
		"messages": len(hashes),
	}).Info("restored coordinator state from the mirror")
}

func Run(cfg config.Config) {
	if err := newService(cfg).run(); err != nil {
		panic(err)
	}
}
