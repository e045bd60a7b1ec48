// internal/resolvers/tag/registry.go
package tag

import (
	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/logx"
	"ipsift/internal/platform/registry"
)

// Auto-registro de la estrategia al importar el package
func init() {
	if err := registry.Global().Register(
		"tag",
		factory,
		ports.ResolverMetadata{
			Name:           "tag",
			Description:    "Substring match of #cc tags against the recognized vocabulary",
			NeedsNetwork:   false,
			NeedsLocalData: false,
		},
	); err != nil {
		// Log error but don't panic - allow application to start
		logx.New().Warn("failed to register tag resolver", "error", err.Error())
	}
}

func factory(cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error) {
	countries := domain.DefaultPriority
	if registry.GetBoolConfig(cfg.Custom, "include_cn", false) {
		countries = domain.PriorityWithCN
	}
	return New(countries, logger), nil
}
