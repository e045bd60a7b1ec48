// internal/platform/rate/rate_test.go
package rate

import (
	"context"
	"testing"
	"time"
)

func TestLimiterAllowConsumesBurst(t *testing.T) {
	l := New(1, 3)

	for i := 0; i < 3; i++ {
		if !l.Allow() {
			t.Fatalf("allow %d should succeed within burst", i)
		}
	}
	if l.Allow() {
		t.Error("allow beyond burst should fail")
	}
}

func TestLimiterRefillsOverTime(t *testing.T) {
	l := New(100, 1) // 100 tokens/s -> ~10ms per token

	if !l.Allow() {
		t.Fatal("first allow should succeed")
	}
	if l.Allow() {
		t.Fatal("bucket should be empty")
	}

	time.Sleep(25 * time.Millisecond)

	if !l.Allow() {
		t.Error("bucket should have refilled")
	}
}

func TestLimiterWaitRespectsContext(t *testing.T) {
	l := New(0.1, 1) // next token in ~10s
	l.Allow()        // drain

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := l.Wait(ctx)
	if err == nil {
		t.Fatal("wait should fail on context timeout")
	}
	if time.Since(start) > time.Second {
		t.Error("wait did not return promptly after cancellation")
	}
}

func TestLimiterDefaults(t *testing.T) {
	l := New(0, 0)
	if l.Rate() != 1 || l.Burst() != 1 {
		t.Errorf("defaults = (%v, %d), want (1, 1)", l.Rate(), l.Burst())
	}
}

func TestLimiterTokensCapAtBurst(t *testing.T) {
	l := New(1000, 2)
	time.Sleep(10 * time.Millisecond)

	if tokens := l.Tokens(); tokens > 2 {
		t.Errorf("tokens = %v, should cap at burst 2", tokens)
	}
}
