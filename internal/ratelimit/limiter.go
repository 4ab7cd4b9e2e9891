// Package ratelimit provides a per-identity fixed-window request limiter.
//
// Counters are bucketed into fixed-size time windows: window = now - (now mod
// windowSize). A rejected request does not consume budget. The limiter is
// constructed once at process start and injected where needed.
package ratelimit

import (
	"sync"
	"time"
)

// Config configures the limiter.
type Config struct {
	// Budget is the number of requests allowed per key per window (default: 15).
	Budget int `yaml:"budget" mapstructure:"budget"`

	// WindowSeconds is the window size in seconds (default: 60).
	WindowSeconds int `yaml:"window_seconds" mapstructure:"window_seconds"`

	// SweepInterval is how often stale counters are evicted (default: 5m).
	SweepInterval time.Duration `yaml:"sweep_interval" mapstructure:"sweep_interval"`
}

// ApplyDefaults fills in zero-value fields.
func (c *Config) ApplyDefaults() {
	if c.Budget <= 0 {
		c.Budget = 15
	}
	if c.WindowSeconds <= 0 {
		c.WindowSeconds = 60
	}
	if c.SweepInterval <= 0 {
		c.SweepInterval = 5 * time.Minute
	}
}

type counter struct {
	count       int
	windowStart int64
}

// Limiter tracks per-key request counts in fixed time windows.
type Limiter struct {
	mu       sync.Mutex
	counters map[string]counter
	cfg      Config
	done     chan struct{}
	closed   sync.Once

	// now is swappable in tests.
	now func() time.Time
}

// New creates a Limiter and starts its background sweeper.
func New(cfg Config) *Limiter {
	cfg.ApplyDefaults()
	l := &Limiter{
		counters: make(map[string]counter),
		cfg:      cfg,
		done:     make(chan struct{}),
		now:      time.Now,
	}
	go l.sweep()
	return l
}

// Allow reports whether the key may proceed in the current window and, if so,
// consumes one unit of budget. The check and the conditional increment are one
// atomic unit per key.
func (l *Limiter) Allow(key string) bool {
	now := l.now().Unix()
	window := now - (now % int64(l.cfg.WindowSeconds))

	l.mu.Lock()
	defer l.mu.Unlock()

	c, ok := l.counters[key]
	if !ok || c.windowStart != window {
		c = counter{count: 0, windowStart: window}
	}

	if c.count >= l.cfg.Budget {
		return false
	}

	c.count++
	l.counters[key] = c
	return true
}

// Close stops the background sweeper. Safe to call multiple times.
func (l *Limiter) Close() {
	l.closed.Do(func() { close(l.done) })
}

// sweep periodically evicts counters from expired windows so the map does not
// grow without bound under sustained unique-identity traffic.
func (l *Limiter) sweep() {
	ticker := time.NewTicker(l.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-l.done:
			return
		case <-ticker.C:
			l.evictStale()
		}
	}
}

func (l *Limiter) evictStale() {
	now := l.now().Unix()
	window := now - (now % int64(l.cfg.WindowSeconds))

	l.mu.Lock()
	defer l.mu.Unlock()
	for key, c := range l.counters {
		if c.windowStart != window {
			delete(l.counters, key)
		}
	}
}

// size returns the number of tracked keys. Used by tests.
func (l *Limiter) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.counters)
}
