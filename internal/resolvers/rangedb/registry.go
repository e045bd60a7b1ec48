// internal/resolvers/rangedb/registry.go
package rangedb

import (
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/registry"
)

// Auto-registro de la estrategia al importar el package
func init() {
	if err := registry.Global().Register(
		"rangedb",
		factory,
		ports.ResolverMetadata{
			Name:           "rangedb",
			Description:    "Binary search over a sorted (start_ip, end_ip, country) CSV range table",
			NeedsNetwork:   false,
			NeedsLocalData: true,
		},
	); err != nil {
		logx.New().Warn("failed to register rangedb resolver", "error", err.Error())
	}
}

func factory(cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error) {
	csvPath := registry.GetStringConfig(cfg.Custom, "csv_path", "dbip-country-lite.csv")
	return New(csvPath, logger)
}
