package core

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

// Resolver answers whether a token can be moved to another chain via direct
// mint/burn bridging.
//
// Only positive answers are memoized: a token may gain the capability after
// deployment, so a negative probe result is recomputed on every call. An
// authorized override pins either value, including false.
//
// The resolver is owned by the coordinator and accessed only behind its lock.
type Resolver struct {
	probe    CapabilityProbe
	registry map[common.Address]struct{}
	cache    map[common.Address]bool
	admin    common.Address
}

func NewResolver(probe CapabilityProbe, registry []common.Address, admin common.Address) *Resolver {
	known := make(map[common.Address]struct{}, len(registry))
	for _, token := range registry {
		known[token] = struct{}{}
	}
	return &Resolver{
		probe:    probe,
		registry: known,
		cache:    make(map[common.Address]bool),
		admin:    admin,
	}
}

func (r *Resolver) IsBridgeable(ctx context.Context, token common.Address) (bool, error) {
	if v, ok := r.cache[token]; ok {
		return v, nil
	}
	if _, ok := r.registry[token]; ok {
		r.cache[token] = true
		return true, nil
	}

	ok, err := r.probe.SupportsCrossChainTransfer(ctx, token)
	if err != nil {
		return false, errors.Wrap(err, "failed to probe token capability")
	}
	if ok {
		r.cache[token] = true
	}
	return ok, nil
}

// SetOverride forcibly sets the cached value for the token. Restricted to the
// coordinator's admin identity.
func (r *Resolver) SetOverride(caller, token common.Address, bridgeable bool) error {
	if caller != r.admin {
		return ErrUnauthorized
	}
	r.cache[token] = bridgeable
	return nil
}
