// internal/core/usecases/collector.go
package usecases

import (
	"context"
	"strings"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/iputil"
	"ipsift/internal/platform/logx"
)

// Collector deduplica el texto crudo y lo convierte en candidatos ordenados.
// Política canónica: dedup por línea cruda (trimmed, byte a byte), gana la
// primera ocurrencia; el primer país resuelto es definitivo.
type Collector struct {
	logger logx.Logger
}

// pendingLine es una línea que sobrevivió al filtrado pero aún no tiene país.
type pendingLine struct {
	idx     int
	line    string
	address string
}

// NewCollector crea una nueva instancia del collector.
func NewCollector(logger logx.Logger) *Collector {
	if logger == nil {
		logger = logx.New()
	}
	return &Collector{
		logger: logger.With("component", "collector"),
	}
}

// Collect produce la lista ordenada de candidatos que sobreviven:
// línea no vacía, no duplicada, con IPv4 válida y país reconocido.
// Un fallo del resolver degrada a "línea descartada", nunca aborta el batch.
func (c *Collector) Collect(ctx context.Context, rawText string, countries domain.CountrySet, resolver ports.CountryResolver) []domain.Candidate {
	seen := make(map[string]struct{})
	pendings := make([]pendingLine, 0, 64)

	dropped := struct{ blank, dup, noAddr, unresolved int }{}

	for idx, raw := range strings.Split(rawText, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			dropped.blank++
			continue
		}

		if _, ok := seen[line]; ok {
			dropped.dup++
			continue
		}
		seen[line] = struct{}{}

		address, ok := iputil.ExtractIPv4(line)
		if !ok {
			dropped.noAddr++
			continue
		}

		pendings = append(pendings, pendingLine{idx: idx, line: line, address: address})
	}

	// estrategias por lotes clasifican todas las direcciones de una vez
	batch := c.batchResolve(ctx, resolver, pendings)

	candidates := make([]domain.Candidate, 0, len(pendings))
	for _, p := range pendings {
		var country domain.Country
		if batch != nil {
			country = batch[p.address]
		} else {
			var err error
			country, err = resolver.Resolve(ctx, p.line, p.address)
			if err != nil {
				c.logger.Debug("resolver failed, dropping line",
					"resolver", resolver.Name(),
					"address", p.address,
					"error", err.Error(),
				)
				dropped.unresolved++
				continue
			}
		}

		if country == domain.CountryUnresolved || !countries.Contains(country) {
			dropped.unresolved++
			continue
		}

		candidates = append(candidates, domain.Candidate{
			Index:   p.idx,
			RawLine: p.line,
			Address: p.address,
			Country: country,
		})
	}

	c.logger.Info("collection completed",
		"candidates", len(candidates),
		"dropped_blank", dropped.blank,
		"dropped_duplicate", dropped.dup,
		"dropped_no_address", dropped.noAddr,
		"dropped_unresolved", dropped.unresolved,
	)

	return candidates
}

// batchResolve clasifica las direcciones únicas en lotes cuando la estrategia
// lo soporta. Retorna nil si la estrategia solo resuelve de a una.
func (c *Collector) batchResolve(ctx context.Context, resolver ports.CountryResolver, pendings []pendingLine) map[string]domain.Country {
	br, ok := resolver.(ports.BatchResolver)
	if !ok || len(pendings) == 0 {
		return nil
	}

	uniq := make(map[string]struct{}, len(pendings))
	addresses := make([]string, 0, len(pendings))
	for _, p := range pendings {
		if _, ok := uniq[p.address]; ok {
			continue
		}
		uniq[p.address] = struct{}{}
		addresses = append(addresses, p.address)
	}

	result, err := br.ResolveBatch(ctx, addresses)
	if err != nil {
		// lote incompleto: lo clasificado se aprovecha, el resto se descarta
		c.logger.Warn("batch resolution incomplete",
			"resolver", resolver.Name(),
			"classified", len(result),
			"requested", len(addresses),
			"error", err.Error(),
		)
	}
	if result == nil {
		result = make(map[string]domain.Country)
	}
	return result
}
