// internal/resolvers/tag/tag.go
package tag

import (
	"context"
	"strings"

	"ipsift/internal/core/domain"
	"ipsift/internal/platform/logx"
)

// Resolver clasifica una línea por sus tags "#cc" contra el vocabulario
// reconocido. Cuando una línea matchea varios tags gana el primero según el
// orden de prioridad de países: decisión de producto, no un accidente.
type Resolver struct {
	countries []domain.Country
	logger    logx.Logger
}

// New crea un resolver de tags sobre el vocabulario dado.
func New(countries []domain.Country, logger logx.Logger) *Resolver {
	if len(countries) == 0 {
		countries = domain.DefaultPriority
	}
	if logger == nil {
		logger = logx.New()
	}
	return &Resolver{
		countries: countries,
		logger:    logger.With("resolver", "tag"),
	}
}

// Name retorna el nombre de la estrategia.
func (r *Resolver) Name() string {
	return "tag"
}

// Resolve busca el primer tag del vocabulario presente en la línea,
// case-insensitive. La dirección extraída no se usa en esta estrategia.
func (r *Resolver) Resolve(_ context.Context, line, _ string) (domain.Country, error) {
	low := strings.ToLower(line)
	for _, c := range r.countries {
		if strings.Contains(low, "#"+string(c)) {
			return c, nil
		}
	}
	return domain.CountryUnresolved, nil
}

// Close no tiene recursos que liberar.
func (r *Resolver) Close() error {
	return nil
}
