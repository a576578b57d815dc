package config

import (
	"github.com/ethereum/go-ethereum/common"
	"gitlab.com/distributed_lab/figure/v3"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
)

type Tokens struct {
	// Admin is the coordinator identity allowed to override token compatibility
	Admin common.Address
	// Bridgeable is the known-bridgeable token registry
	Bridgeable []common.Address
	// Overrides pins compatibility values at startup, including false
	Overrides map[common.Address]bool
}

func (c *config) Tokens() Tokens {
	return c.tokensOnce.Do(func() interface{} {
		var cfg struct {
			Admin             common.Address `fig:"admin,required"`
			Bridgeable        []string       `fig:"bridgeable"`
			ForceBridgeable   []string       `fig:"force_bridgeable"`
			ForceUnbridgeable []string       `fig:"force_unbridgeable"`
		}

		err := figure.Out(&cfg).
			With(figure.BaseHooks, figure.EthereumHooks).
			From(kv.MustGetStringMap(c.getter, "tokens")).
			Please()
		if err != nil {
			panic(errors.Wrap(err, "failed to figure out tokens"))
		}

		tokens := Tokens{
			Admin:      cfg.Admin,
			Bridgeable: mustAddresses(cfg.Bridgeable),
			Overrides:  make(map[common.Address]bool),
		}
		for _, token := range mustAddresses(cfg.ForceBridgeable) {
			tokens.Overrides[token] = true
		}
		for _, token := range mustAddresses(cfg.ForceUnbridgeable) {
			tokens.Overrides[token] = false
		}

		return tokens
	}).(Tokens)
}

func mustAddresses(raw []string) []common.Address {
	addresses := make([]common.Address, 0, len(raw))
	for _, r := range raw {
		if !common.IsHexAddress(r) {
			panic(errors.Errorf("invalid token address %s", r))
		}
		addresses = append(addresses, common.HexToAddress(r))
	}
	return addresses
}
