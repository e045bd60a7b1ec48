// internal/probe/tcp.go
package probe

import (
	"context"
	"net"
	"strconv"
	"time"

	"ipsift/internal/platform/logx"
)

// DialFunc abstrae net.DialTimeout para poder inyectar fakes en tests.
type DialFunc func(network, address string, timeout time.Duration) (net.Conn, error)

// TCPChecker intenta conexiones a un set chico de puertos, en secuencia.
// Alcanzable si cualquier connect entra dentro de su presupuesto.
type TCPChecker struct {
	ports  []int
	dial   DialFunc
	logger logx.Logger
}

// NewTCPChecker crea un checker sobre los puertos dados (default 80, 443).
func NewTCPChecker(ports []int, logger logx.Logger) *TCPChecker {
	if len(ports) == 0 {
		ports = []int{80, 443}
	}
	if logger == nil {
		logger = logx.New()
	}
	return &TCPChecker{
		ports:  ports,
		dial:   net.DialTimeout,
		logger: logger.With("probe", "tcp"),
	}
}

// WithDial reemplaza la función de dial (para tests).
func (c *TCPChecker) WithDial(dial DialFunc) *TCPChecker {
	c.dial = dial
	return c
}

// Name retorna el nombre del sub-check.
func (c *TCPChecker) Name() string {
	return "tcp"
}

// Check prueba cada puerto con el timeout dado; corta en el primer éxito.
func (c *TCPChecker) Check(ctx context.Context, address string, timeout time.Duration) bool {
	for _, port := range c.ports {
		if ctx.Err() != nil {
			return false
		}

		conn, err := c.dial("tcp", net.JoinHostPort(address, strconv.Itoa(port)), timeout)
		if err != nil {
			continue
		}
		conn.Close()

		c.logger.Debug("tcp connect succeeded", "address", address, "port", port)
		return true
	}
	return false
}
