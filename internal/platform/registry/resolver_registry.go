// internal/platform/registry/resolver_registry.go
package registry

import (
	"fmt"
	"sort"
	"sync"

	"ipsift/internal/core/ports"
	"ipsift/internal/platform/logx"
)

// ResolverRegistry gestiona el registro y construcción de estrategias de
// resolución de país. Implementa el patrón Registry + Factory para desacoplar
// la creación de resolvers del código de aplicación.
type ResolverRegistry struct {
	mu        sync.RWMutex
	factories map[string]ResolverFactory
	metadata  map[string]ports.ResolverMetadata
	logger    logx.Logger
}

// ResolverFactory es una función que crea una instancia de CountryResolver.
type ResolverFactory func(cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error)

// globalRegistry es la instancia global del registry.
var globalRegistry *ResolverRegistry
var once sync.Once

// Global retorna la instancia global del registry.
func Global() *ResolverRegistry {
	once.Do(func() {
		globalRegistry = NewResolverRegistry(logx.New())
	})
	return globalRegistry
}

// NewResolverRegistry crea un nuevo registry de resolvers.
func NewResolverRegistry(logger logx.Logger) *ResolverRegistry {
	return &ResolverRegistry{
		factories: make(map[string]ResolverFactory),
		metadata:  make(map[string]ports.ResolverMetadata),
		logger:    logger.With("component", "resolver-registry"),
	}
}

// Register registra una factory con su metadata.
// Típicamente llamado desde init() de cada package de resolver.
func (r *ResolverRegistry) Register(name string, factory ResolverFactory, meta ports.ResolverMetadata) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if name == "" {
		return fmt.Errorf("resolver name cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("factory cannot be nil for resolver %s", name)
	}
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("resolver %s is already registered", name)
	}

	r.factories[name] = factory
	r.metadata[name] = meta
	r.logger.Debug("resolver registered", "name", name, "network", meta.NeedsNetwork)

	return nil
}

// MustRegister registra y entra en pánico ante error. Para uso en init().
func (r *ResolverRegistry) MustRegister(name string, factory ResolverFactory, meta ports.ResolverMetadata) {
	if err := r.Register(name, factory, meta); err != nil {
		panic(err)
	}
}

// Build construye el resolver con el nombre dado según su configuración.
func (r *ResolverRegistry) Build(name string, cfg ports.ResolverConfig, logger logx.Logger) (ports.CountryResolver, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("resolver %s not registered in registry", name)
	}
	if !cfg.Enabled {
		return nil, fmt.Errorf("resolver %s is disabled", name)
	}
	if logger == nil {
		logger = r.logger
	}

	resolver, err := factory(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build resolver %s: %w", name, err)
	}
	return resolver, nil
}

// Names retorna los nombres registrados en orden alfabético.
func (r *ResolverRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetMetadata retorna la metadata de un resolver registrado.
func (r *ResolverRegistry) GetMetadata(name string) (ports.ResolverMetadata, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	meta, ok := r.metadata[name]
	return meta, ok
}
