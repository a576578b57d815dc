package config

import (
	"net/http"
	"net/url"
	"time"

	"gitlab.com/distributed_lab/figure/v3"
	jsonapi "gitlab.com/distributed_lab/json-api-connector"
	"gitlab.com/distributed_lab/kit/kv"
	"gitlab.com/distributed_lab/logan/v3/errors"
	"gitlab.com/tokend/connectors/signed"
)

// Collector is the aggregator service that mirrors orders and executions for
// UI and indexing consumers.
func (c *config) Collector() *jsonapi.Connector {
	return c.collectorOnce.Do(func() interface{} {
		return c.connector("collector")
	}).(*jsonapi.Connector)
}

// Relayer executes the out-of-scope mechanics: swaps, bridge transfers,
// custody moves and message attestation.
func (c *config) Relayer() *jsonapi.Connector {
	return c.relayerOnce.Do(func() interface{} {
		return c.connector("relayer")
	}).(*jsonapi.Connector)
}

func (c *config) connector(section string) *jsonapi.Connector {
	var cfg struct {
		Endpoint       *url.URL      `fig:"endpoint,required"`
		RequestTimeout time.Duration `fig:"request_timeout"`
	}
	err := figure.Out(&cfg).
		From(kv.MustGetStringMap(c.getter, section)).
		Please()
	if err != nil {
		panic(errors.Wrap(err, "failed to figure out "+section))
	}

	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	return jsonapi.NewConnector(signed.NewClient(&http.Client{Timeout: cfg.RequestTimeout}, cfg.Endpoint))
}
