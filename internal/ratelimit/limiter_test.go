package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// newTestLimiter creates a limiter with a controllable clock and no live
// sweeper goroutine racing the test.
func newTestLimiter(cfg Config, at time.Time) *Limiter {
	cfg.ApplyDefaults()
	l := &Limiter{
		counters: make(map[string]counter),
		cfg:      cfg,
		done:     make(chan struct{}),
	}
	l.now = func() time.Time { return at }
	return l
}

func TestLimiter_BudgetExhaustion(t *testing.T) {
	l := newTestLimiter(Config{Budget: 15, WindowSeconds: 60}, time.Unix(1000, 0))

	for i := 0; i < 15; i++ {
		if !l.Allow("user:1") {
			t.Fatalf("request %d rejected within budget", i+1)
		}
	}
	if l.Allow("user:1") {
		t.Error("request 16 allowed over budget")
	}
}

func TestLimiter_RejectionDoesNotConsume(t *testing.T) {
	base := time.Unix(1000, 0)
	l := newTestLimiter(Config{Budget: 2, WindowSeconds: 60}, base)

	l.Allow("k")
	l.Allow("k")

	// A long run of rejections must not push the counter past the budget.
	for i := 0; i < 100; i++ {
		if l.Allow("k") {
			t.Fatalf("rejection %d unexpectedly allowed", i+1)
		}
	}

	l.mu.Lock()
	count := l.counters["k"].count
	l.mu.Unlock()
	if count != 2 {
		t.Errorf("counter = %d after rejections, want 2", count)
	}
}

func TestLimiter_WindowRollover(t *testing.T) {
	base := time.Unix(1000, 0) // window [960, 1020)
	l := newTestLimiter(Config{Budget: 1, WindowSeconds: 60}, base)

	if !l.Allow("k") {
		t.Fatal("first request rejected")
	}
	if l.Allow("k") {
		t.Fatal("second request in same window allowed")
	}

	// Still the same window at t=1019.
	l.now = func() time.Time { return time.Unix(1019, 0) }
	if l.Allow("k") {
		t.Error("budget refilled before the window rolled over")
	}

	// Fresh window at t=1020.
	l.now = func() time.Time { return time.Unix(1020, 0) }
	if !l.Allow("k") {
		t.Error("budget not refilled after window rollover")
	}
}

func TestLimiter_KeysAreIndependent(t *testing.T) {
	l := newTestLimiter(Config{Budget: 1, WindowSeconds: 60}, time.Unix(1000, 0))

	if !l.Allow("user:1") {
		t.Fatal("first key rejected")
	}
	if !l.Allow("user:2") {
		t.Error("second key penalized for first key's traffic")
	}
	if !l.Allow("ip:10.0.0.1") {
		t.Error("third key penalized for other keys' traffic")
	}
}

func TestLimiter_ConcurrentAllow(t *testing.T) {
	l := newTestLimiter(Config{Budget: 100, WindowSeconds: 60}, time.Unix(1000, 0))

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for g := 0; g < 20; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				if l.Allow("shared") {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if allowed != 100 {
		t.Errorf("allowed = %d of 200 concurrent requests, want exactly 100", allowed)
	}
}

func TestLimiter_EvictStale(t *testing.T) {
	l := newTestLimiter(Config{Budget: 15, WindowSeconds: 60}, time.Unix(1000, 0))

	for i := 0; i < 50; i++ {
		l.Allow(fmt.Sprintf("user:%d", i))
	}
	if got := l.size(); got != 50 {
		t.Fatalf("size = %d after 50 keys, want 50", got)
	}

	// One window later everything from the old window is stale except a key
	// touched in the new window.
	l.now = func() time.Time { return time.Unix(1060, 0) }
	l.Allow("user:0")
	l.evictStale()

	if got := l.size(); got != 1 {
		t.Errorf("size = %d after eviction, want 1", got)
	}
}

func TestLimiter_CloseIsIdempotent(t *testing.T) {
	l := New(Config{})
	l.Close()
	l.Close()
}
