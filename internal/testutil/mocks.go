// internal/testutil/mocks.go
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"ipsift/internal/core/domain"
)

// MockResolver resuelve países desde un mapa dirección -> país.
// Direcciones fuera del mapa quedan sin resolver.
type MockResolver struct {
	ByAddress map[string]domain.Country
	// Err hace fallar toda resolución (para probar degradación a descarte)
	Err error

	mu     sync.Mutex
	calls  int
	closed bool
}

// NewMockResolver crea un mock con el mapa dado.
func NewMockResolver(byAddress map[string]domain.Country) *MockResolver {
	return &MockResolver{ByAddress: byAddress}
}

func (m *MockResolver) Name() string {
	return "mock"
}

func (m *MockResolver) Resolve(_ context.Context, _, address string) (domain.Country, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if m.Err != nil {
		return domain.CountryUnresolved, m.Err
	}
	return m.ByAddress[address], nil
}

func (m *MockResolver) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Calls retorna cuántas resoluciones se pidieron.
func (m *MockResolver) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Closed indica si se llamó Close.
func (m *MockResolver) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// MockProber responde true para las direcciones del set Reachable.
// Es seguro para uso concurrente desde los workers del pool.
type MockProber struct {
	Reachable map[string]bool
	// Err hace fallar el probe de esas direcciones (ProbeFailure)
	Err map[string]error
	// Delay simula latencia de red por probe
	Delay time.Duration

	probes int64
}

// NewMockProber crea un mock con el set de direcciones alcanzables.
func NewMockProber(reachable ...string) *MockProber {
	set := make(map[string]bool, len(reachable))
	for _, addr := range reachable {
		set[addr] = true
	}
	return &MockProber{Reachable: set}
}

func (m *MockProber) Name() string {
	return "mock"
}

func (m *MockProber) Probe(ctx context.Context, address string) (bool, error) {
	atomic.AddInt64(&m.probes, 1)

	if m.Delay > 0 {
		select {
		case <-time.After(m.Delay):
		case <-ctx.Done():
			return false, ctx.Err()
		}
	}

	if err, ok := m.Err[address]; ok {
		return false, err
	}
	return m.Reachable[address], nil
}

// Probes retorna cuántos probes llegaron a ejecutarse.
func (m *MockProber) Probes() int {
	return int(atomic.LoadInt64(&m.probes))
}

// MockFeed retorna un texto fijo o un error.
type MockFeed struct {
	Text string
	Err  error
}

func (m *MockFeed) Name() string {
	return "mock"
}

func (m *MockFeed) Fetch(_ context.Context) (string, error) {
	if m.Err != nil {
		return "", m.Err
	}
	return m.Text, nil
}
