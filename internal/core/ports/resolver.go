// internal/core/ports/resolver.go
package ports

import (
	"context"
	"time"

	"ipsift/internal/core/domain"
)

// CountryResolver es el port para las estrategias de resolución de país.
// Cualquier estrategia (tag, tabla de rangos, base geo local, lookup remoto)
// debe implementar esta interfaz; el core solo depende de ella.
type CountryResolver interface {
	// Name retorna el nombre único de la estrategia (ej: "tag", "rangedb")
	Name() string

	// Resolve clasifica una línea. Recibe tanto la línea completa como la
	// dirección extraída porque algunas estrategias consumen una u otra.
	// Retorna domain.CountryUnresolved cuando no puede clasificar; un error
	// se degrada a "sin resolver" aguas arriba, nunca aborta el batch.
	Resolve(ctx context.Context, line, address string) (domain.Country, error)

	// Close libera recursos (handles de archivo, conexiones, etc.)
	Close() error
}

// BatchResolver lo implementan las estrategias que soportan lookup por lotes
// (hasta BatchLimit direcciones por llamada). Se detecta por type assertion.
type BatchResolver interface {
	CountryResolver

	// ResolveBatch clasifica varias direcciones en una sola llamada.
	ResolveBatch(ctx context.Context, addresses []string) (map[string]domain.Country, error)

	// BatchLimit retorna el máximo de direcciones por llamada.
	BatchLimit() int
}

// ResolverConfig contiene la configuración específica de una estrategia.
type ResolverConfig struct {
	// Enabled indica si la estrategia está habilitada
	Enabled bool

	// Timeout tiempo máximo por lookup
	Timeout time.Duration

	// RateLimit límite de peticiones por segundo (0 = sin límite)
	RateLimit int

	// CacheTTL tiempo de vida de entradas cacheadas (0 = sin cache)
	CacheTTL time.Duration

	// CacheSize capacidad del cache de resoluciones
	CacheSize int

	// Custom configuración específica (paths de base de datos, URLs, etc.)
	Custom map[string]interface{}
}

// DefaultResolverConfig retorna una configuración por defecto.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		Enabled:   true,
		Timeout:   10 * time.Second,
		RateLimit: 0,
		CacheTTL:  0,
		CacheSize: 4096,
		Custom:    make(map[string]interface{}),
	}
}

// ResolverMetadata contiene metadatos sobre una estrategia.
type ResolverMetadata struct {
	Name        string
	Description string
	// NeedsNetwork indica si la estrategia hace I/O de red
	NeedsNetwork bool
	// NeedsLocalData indica si requiere un archivo de datos local
	NeedsLocalData bool
}
