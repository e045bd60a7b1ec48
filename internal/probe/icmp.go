// internal/probe/icmp.go
package probe

import (
	"context"
	"net"
	"os"
	"sync/atomic"
	"time"

	"golang.org/x/net/icmp"
	"golang.org/x/net/ipv4"

	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// ICMPPinger manda un echo request y espera el reply dentro del presupuesto.
// Intenta primero un socket datagram no privilegiado ("udp4"); si el sistema
// no lo permite cae a raw socket ("ip4:icmp"), que requiere privilegios.
type ICMPPinger struct {
	logger logx.Logger
	seq    uint32
}

// NewICMPPinger crea un pinger ICMP.
func NewICMPPinger(logger logx.Logger) *ICMPPinger {
	if logger == nil {
		logger = logx.New()
	}
	return &ICMPPinger{
		logger: logger.With("probe", "icmp"),
	}
}

// Name retorna el nombre del sub-check.
func (p *ICMPPinger) Name() string {
	return "icmp"
}

// Ping retorna true si la dirección respondió el echo dentro del timeout.
// Un error de socket o de permisos se reporta como error, no como veredicto.
func (p *ICMPPinger) Ping(ctx context.Context, address string, timeout time.Duration) (bool, error) {
	ip := net.ParseIP(address)
	if ip == nil || ip.To4() == nil {
		return false, errors.Wrapf(errors.ErrInvalidInput, "not an ipv4 address: %s", address)
	}

	conn, dst, err := p.listen(ip)
	if err != nil {
		return false, err
	}
	defer conn.Close()

	seq := int(atomic.AddUint32(&p.seq, 1) & 0xffff)
	msg := icmp.Message{
		Type: ipv4.ICMPTypeEcho,
		Code: 0,
		Body: &icmp.Echo{
			ID:   os.Getpid() & 0xffff,
			Seq:  seq,
			Data: []byte("ipsift-probe"),
		},
	}

	payload, err := msg.Marshal(nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to marshal echo request")
	}

	deadline := time.Now().Add(timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return false, errors.Wrap(err, "failed to set socket deadline")
	}

	if _, err := conn.WriteTo(payload, dst); err != nil {
		return false, errors.Wrap(errors.ErrConnectionFailed, err.Error())
	}

	reply := make([]byte, 1500)
	for {
		n, peer, err := conn.ReadFrom(reply)
		if err != nil {
			// deadline vencida: veredicto negativo, no error
			if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
				return false, nil
			}
			return false, errors.Wrap(err, "failed to read echo reply")
		}

		parsed, err := icmp.ParseMessage(ipv4.ICMPTypeEchoReply.Protocol(), reply[:n])
		if err != nil {
			continue
		}
		if parsed.Type != ipv4.ICMPTypeEchoReply {
			continue
		}
		if echo, ok := parsed.Body.(*icmp.Echo); ok && echo.Seq == seq {
			p.logger.Debug("echo reply received", "address", address, "peer", peer.String())
			return true, nil
		}
		// reply de otro probe concurrente: seguir leyendo hasta la deadline
	}
}

// listen abre el socket ICMP y arma la dirección destino acorde al tipo.
func (p *ICMPPinger) listen(ip net.IP) (*icmp.PacketConn, net.Addr, error) {
	conn, err := icmp.ListenPacket("udp4", "0.0.0.0")
	if err == nil {
		return conn, &net.UDPAddr{IP: ip}, nil
	}

	conn, rawErr := icmp.ListenPacket("ip4:icmp", "0.0.0.0")
	if rawErr == nil {
		return conn, &net.IPAddr{IP: ip}, nil
	}

	return nil, nil, errors.Wrapf(errors.Join(err, rawErr), "failed to open icmp socket")
}
