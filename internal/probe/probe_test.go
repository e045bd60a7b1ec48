// internal/probe/probe_test.go
package probe

import (
	"context"
	"net"
	"sync/atomic"
	"testing"
	"time"

	"ipsift/internal/platform/errors"
	"ipsift/internal/platform/logx"
)

// fakePinger responde con un veredicto fijo o un error de socket.
type fakePinger struct {
	reachable bool
	err       error
	calls     int32
}

func (f *fakePinger) Name() string { return "fake-icmp" }

func (f *fakePinger) Ping(context.Context, string, time.Duration) (bool, error) {
	atomic.AddInt32(&f.calls, 1)
	return f.reachable, f.err
}

func okDial(t *testing.T) DialFunc {
	t.Helper()
	return func(_, _ string, _ time.Duration) (net.Conn, error) {
		c1, c2 := net.Pipe()
		t.Cleanup(func() { c2.Close() })
		return c1, nil
	}
}

func refusingDial() DialFunc {
	return func(_, _ string, _ time.Duration) (net.Conn, error) {
		return nil, errors.ErrConnectionFailed
	}
}

func TestCombinedPingSuccessShortCircuits(t *testing.T) {
	pinger := &fakePinger{reachable: true}
	c := NewCombined(Options{Pinger: pinger, Logger: logx.NewSilent()})
	c.tcp.WithDial(refusingDial())

	reachable, err := c.Probe(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if !reachable {
		t.Error("ping success should decide without tcp")
	}
}

func TestCombinedFallsBackToTCPOnPingMiss(t *testing.T) {
	pinger := &fakePinger{reachable: false}
	c := NewCombined(Options{Pinger: pinger, Logger: logx.NewSilent()})
	c.tcp.WithDial(okDial(t))

	reachable, err := c.Probe(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if !reachable {
		t.Error("tcp fallback should rescue a ping miss")
	}
}

func TestCombinedPingErrorIsNotAVerdict(t *testing.T) {
	// error de socket (permisos) cae al fallback sin propagar el error
	pinger := &fakePinger{err: errors.ErrConnectionFailed}
	c := NewCombined(Options{Pinger: pinger, Logger: logx.NewSilent()})
	c.tcp.WithDial(okDial(t))

	reachable, err := c.Probe(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("ping error must not propagate: %v", err)
	}
	if !reachable {
		t.Error("tcp should decide after a ping error")
	}
}

func TestCombinedUnreachableWhenBothFail(t *testing.T) {
	pinger := &fakePinger{reachable: false}
	c := NewCombined(Options{Pinger: pinger, Logger: logx.NewSilent()})
	c.tcp.WithDial(refusingDial())

	reachable, err := c.Probe(context.Background(), "1.1.1.1")
	if err != nil {
		t.Fatalf("probe failed: %v", err)
	}
	if reachable {
		t.Error("both checks failed, verdict should be unreachable")
	}
}

func TestCombinedNilPingerSkipsICMP(t *testing.T) {
	c := NewCombined(Options{Pinger: nil, Logger: logx.NewSilent()})
	c.tcp.WithDial(okDial(t))

	if c.Name() != "tcp" {
		t.Errorf("Name() = %q, want tcp", c.Name())
	}

	reachable, err := c.Probe(context.Background(), "1.1.1.1")
	if err != nil || !reachable {
		t.Errorf("tcp-only probe = (%v, %v)", reachable, err)
	}
}

func TestCombinedName(t *testing.T) {
	c := NewCombined(Options{Pinger: &fakePinger{}, Logger: logx.NewSilent()})
	if c.Name() != "fake-icmp+tcp" {
		t.Errorf("Name() = %q", c.Name())
	}
}

func TestTCPCheckerFirstPortWins(t *testing.T) {
	var dialed []string
	checker := NewTCPChecker([]int{80, 443}, logx.NewSilent()).WithDial(
		func(_, address string, _ time.Duration) (net.Conn, error) {
			dialed = append(dialed, address)
			c1, c2 := net.Pipe()
			t.Cleanup(func() { c2.Close() })
			return c1, nil
		})

	if !checker.Check(context.Background(), "1.1.1.1", time.Second) {
		t.Fatal("check should succeed")
	}
	if len(dialed) != 1 || dialed[0] != "1.1.1.1:80" {
		t.Errorf("dialed = %v, want to stop at the first port", dialed)
	}
}

func TestTCPCheckerTriesAllPortsOnFailure(t *testing.T) {
	var dialed []string
	checker := NewTCPChecker([]int{80, 443, 8080}, logx.NewSilent()).WithDial(
		func(_, address string, _ time.Duration) (net.Conn, error) {
			dialed = append(dialed, address)
			return nil, errors.ErrConnectionFailed
		})

	if checker.Check(context.Background(), "1.1.1.1", time.Second) {
		t.Fatal("check should fail")
	}
	if len(dialed) != 3 {
		t.Errorf("dialed %d ports, want all 3", len(dialed))
	}
}

func TestTCPCheckerRespectsCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewTCPChecker(nil, logx.NewSilent()).WithDial(okDial(t))
	if checker.Check(ctx, "1.1.1.1", time.Second) {
		t.Error("canceled context should skip all dials")
	}
}

func TestICMPPingerRejectsNonIPv4(t *testing.T) {
	p := NewICMPPinger(logx.NewSilent())

	if _, err := p.Ping(context.Background(), "not-an-ip", time.Second); err == nil {
		t.Error("non-ip address should error")
	}
	if _, err := p.Ping(context.Background(), "2001:db8::1", time.Second); err == nil {
		t.Error("ipv6 address should error")
	}
}
