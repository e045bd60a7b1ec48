// internal/resolvers/geodb/registry.go
package geodb

import (
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/registry"
)

// Auto-registro de la estrategia al importar el package
func init() {
	if err := registry.Global().Register(
		"geodb",
		factory,
		ports.ResolverMetadata{
			Name:           "geodb",
			Description:    "Lookup against a local MaxMind-format binary country database",
			NeedsNetwork:   false,
			NeedsLocalData: true,
		},
	); err != nil {
		logx.New().Warn("failed to register geodb resolver", "error", err.Error())
	}
}

func factory(cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error) {
	dbPath := registry.GetStringConfig(cfg.Custom, "db_path", "country.mmdb")
	return New(dbPath, logger)
}
