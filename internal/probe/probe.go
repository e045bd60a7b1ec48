// internal/probe/probe.go
package probe

import (
	"context"
	"time"

	"ipsift/internal/platform/logx"
)

// Pinger es el sub-check primario (ICMP echo).
type Pinger interface {
	Name() string
	Ping(ctx context.Context, address string, timeout time.Duration) (bool, error)
}

// Combined es el prober por defecto: ICMP echo con su presupuesto y, si falla,
// TCP connect a los puertos de fallback. Declara inalcanzable recién cuando
// ambas vías se agotaron. El engine lo ve como una única llamada bloqueante.
type Combined struct {
	pinger      Pinger
	tcp         *TCPChecker
	pingTimeout time.Duration
	tcpTimeout  time.Duration
	logger      logx.Logger
}

// Options configura el prober combinado.
type Options struct {
	// Pinger nil desactiva el check ICMP (entornos sin permisos de socket)
	Pinger      Pinger
	TCPPorts    []int
	PingTimeout time.Duration
	TCPTimeout  time.Duration
	Logger      logx.Logger
}

// NewCombined crea el prober combinado por defecto.
func NewCombined(opts Options) *Combined {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = 2 * time.Second
	}
	if opts.TCPTimeout <= 0 {
		opts.TCPTimeout = 1 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = logx.New()
	}
	return &Combined{
		pinger:      opts.Pinger,
		tcp:         NewTCPChecker(opts.TCPPorts, opts.Logger),
		pingTimeout: opts.PingTimeout,
		tcpTimeout:  opts.TCPTimeout,
		logger:      opts.Logger.With("component", "probe"),
	}
}

// Name retorna el nombre del prober.
func (c *Combined) Name() string {
	if c.pinger == nil {
		return "tcp"
	}
	return c.pinger.Name() + "+tcp"
}

// Probe retorna el veredicto para la dirección. Un fallo del pinger (socket,
// permisos) no es veredicto: se loguea y el fallback TCP decide.
func (c *Combined) Probe(ctx context.Context, address string) (bool, error) {
	if c.pinger != nil {
		reachable, err := c.pinger.Ping(ctx, address, c.pingTimeout)
		if err != nil {
			c.logger.Debug("ping errored, falling back to tcp",
				"address", address,
				"error", err.Error(),
			)
		} else if reachable {
			return true, nil
		}
	}

	return c.tcp.Check(ctx, address, c.tcpTimeout), nil
}
