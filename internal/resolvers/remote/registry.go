// internal/resolvers/remote/registry.go
package remote

import (
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/httpclient"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/registry"
)

// Auto-registro de la estrategia al importar el package
func init() {
	if err := registry.Global().Register(
		"remote",
		factory,
		ports.ResolverMetadata{
			Name:           "remote",
			Description:    "Batched remote address-to-country lookup",
			NeedsNetwork:   true,
			NeedsLocalData: false,
		},
	); err != nil {
		logx.New().Warn("failed to register remote resolver", "error", err.Error())
	}
}

func factory(cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error) {
	batchURL := registry.GetStringConfig(cfg.Custom, "batch_url", "http://ip-api.com/batch")
	batchLimit := registry.GetIntConfig(cfg.Custom, "batch_limit", defaultBatchLimit)

	client := httpclient.New(httpclient.Config{
		Timeout:        cfg.Timeout,
		RateLimit:      float64(cfg.RateLimit),
		RateLimitBurst: 1,
	}, logger)

	return New(Options{
		Client:     client,
		BatchURL:   batchURL,
		BatchLimit: batchLimit,
		Timeout:    cfg.Timeout,
		Logger:     logger,
	}), nil
}
