package ratelimit

import (
	"context"
	"testing"
	"time"
)

// fakeClock pins the limiter's notion of now.
func fakeClock(rl *KeyedRateLimiter, start time.Time) *time.Time {
	now := start
	rl.now = func() time.Time { return now }
	return &now
}

// near tolerates float rounding inside the token bucket.
func near(got, want time.Duration) bool {
	d := got - want
	return d > -time.Millisecond && d < time.Millisecond
}

func TestKeyedRateLimiter_Allow(t *testing.T) {
	tests := []struct {
		name     string
		interval time.Duration
		burst    int
		calls    int
		wantPass int
	}{
		{name: "burst allows initial requests", interval: time.Second, burst: 3, calls: 3, wantPass: 3},
		{name: "exceeding burst blocks", interval: time.Second, burst: 2, calls: 5, wantPass: 2},
		{name: "report sends", interval: time.Minute, burst: 2, calls: 4, wantPass: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rl := New(tt.interval, tt.burst)
			defer rl.Stop()
			fakeClock(rl, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

			passed := 0
			for range tt.calls {
				if rl.Allow("aria") {
					passed++
				}
			}

			if passed != tt.wantPass {
				t.Errorf("Allow() passed %d, want %d", passed, tt.wantPass)
			}
		})
	}
}

func TestKeyedRateLimiter_Refill(t *testing.T) {
	rl := New(time.Minute, 1)
	defer rl.Stop()
	now := fakeClock(rl, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	if !rl.Allow("aria") {
		t.Fatal("first request should pass")
	}
	if rl.Allow("aria") {
		t.Fatal("second request should be limited")
	}
	if got := rl.RetryAfter("aria"); !near(got, time.Minute) {
		t.Errorf("RetryAfter() = %v, want 1m", got)
	}

	*now = now.Add(30 * time.Second)
	if got := rl.RetryAfter("aria"); !near(got, 30*time.Second) {
		t.Errorf("RetryAfter() = %v, want 30s", got)
	}

	*now = now.Add(31 * time.Second)
	if got := rl.RetryAfter("aria"); got != 0 {
		t.Errorf("RetryAfter() = %v, want 0", got)
	}
	if !rl.Allow("aria") {
		t.Error("request after refill should pass")
	}
}

func TestKeyedRateLimiter_IndependentKeys(t *testing.T) {
	rl := New(time.Minute, 1)
	defer rl.Stop()

	rl.Allow("aria")
	if rl.Allow("aria") {
		t.Error("aria should be exhausted")
	}
	if !rl.Allow("dev") {
		t.Error("dev should be independent and allowed")
	}
}

func TestKeyedRateLimiter_EvictIdle(t *testing.T) {
	rl := New(time.Minute, 1)
	defer rl.Stop()
	now := fakeClock(rl, time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC))

	rl.Allow("aria")
	*now = now.Add(DefaultIdleTTL / 2)
	rl.Allow("dev")

	*now = now.Add(DefaultIdleTTL/2 + time.Second)
	if n := rl.evictIdle(); n != 1 {
		t.Errorf("evictIdle() = %d, want 1", n)
	}
	if rl.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rl.Len())
	}
}

func TestKeyedRateLimiter_WaitContextCancelled(t *testing.T) {
	rl := New(10*time.Second, 1)
	defer rl.Stop()

	rl.Wait(context.Background(), "aria") //nolint:errcheck // burst token, cannot fail

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if err := rl.Wait(ctx, "aria"); err == nil {
		t.Error("Wait() should fail when the deadline is shorter than the refill")
	}
}
