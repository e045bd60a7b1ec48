// internal/resolvers/cached/cached.go
package cached

import (
	"context"
	"time"

	"ipsift/internal/core/domain"
	"ipsift/internal/core/ports"
	"ipsift/internal/platform/cache"
	"ipsift/internal/platform/logx"
)

// Resolver es un decorator que cachea resoluciones por dirección sobre
// cualquier estrategia. Feeds con direcciones repetidas en corridas cercanas
// evitan repetir lookups de red o de disco.
type Resolver struct {
	inner  ports.CountryResolver
	cache  *cache.MemoryCache
	ttl    time.Duration
	logger logx.Logger
}

// Wrap envuelve un resolver con un cache LRU+TTL de la capacidad dada.
// Si la estrategia interna soporta lotes, el decorator también: los hits
// salen del cache y solo los misses viajan en el lote.
func Wrap(inner ports.CountryResolver, capacity int, ttl time.Duration, logger logx.Logger) ports.CountryResolver {
	if logger == nil {
		logger = logx.New()
	}
	r := &Resolver{
		inner:  inner,
		cache:  cache.NewMemoryCache(capacity),
		ttl:    ttl,
		logger: logger.With("resolver", "cached("+inner.Name()+")"),
	}
	if br, ok := inner.(ports.BatchResolver); ok {
		return &batchResolver{Resolver: r, batch: br}
	}
	return r
}

// Name retorna el nombre del resolver decorado.
func (r *Resolver) Name() string {
	return r.inner.Name()
}

// Resolve consulta el cache por dirección antes de delegar.
// Solo se cachean resoluciones exitosas: un error del inner no envenena
// el cache y el retry natural queda en la próxima línea con esa dirección.
func (r *Resolver) Resolve(ctx context.Context, line, address string) (domain.Country, error) {
	if v, ok := r.cache.Get(address); ok {
		return v.(domain.Country), nil
	}

	country, err := r.inner.Resolve(ctx, line, address)
	if err != nil {
		return country, err
	}

	r.cache.Set(address, country, r.ttl)
	return country, nil
}

// Close libera el resolver decorado.
func (r *Resolver) Close() error {
	r.cache.Clear()
	return r.inner.Close()
}

// batchResolver es la variante para estrategias con soporte de lotes.
type batchResolver struct {
	*Resolver
	batch ports.BatchResolver
}

// ResolveBatch responde desde el cache lo que puede y delega solo los misses.
func (r *batchResolver) ResolveBatch(ctx context.Context, addresses []string) (map[string]domain.Country, error) {
	out := make(map[string]domain.Country, len(addresses))
	misses := make([]string, 0, len(addresses))

	for _, addr := range addresses {
		if v, ok := r.cache.Get(addr); ok {
			out[addr] = v.(domain.Country)
			continue
		}
		misses = append(misses, addr)
	}

	if len(misses) == 0 {
		return out, nil
	}

	resolved, err := r.batch.ResolveBatch(ctx, misses)
	for addr, country := range resolved {
		r.cache.Set(addr, country, r.ttl)
		out[addr] = country
	}
	return out, err
}

// BatchLimit delega en la estrategia interna.
func (r *batchResolver) BatchLimit() int {
	return r.batch.BatchLimit()
}
