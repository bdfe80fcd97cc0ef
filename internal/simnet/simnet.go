// Package simnet injects artificial latency and write failures into the API,
// imitating a flaky network so clients exercise their retry and error paths.
package simnet

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/hirepipe/hirepipe/internal/config"
)

// Injector adds a random delay to every request and fails a configurable
// share of writes. A disabled injector does nothing, which is how tests run.
type Injector struct {
	enabled         bool
	minLatency      time.Duration
	maxLatency      time.Duration
	writeFailRate   float64
	reorderFailRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

// New builds an injector from config. A nil source gets seeded from the wall
// clock.
func New(cfg config.SimnetConfig, src rand.Source) *Injector {
	if src == nil {
		src = rand.NewSource(time.Now().UnixNano())
	}
	return &Injector{
		enabled:         cfg.Enabled,
		minLatency:      cfg.MinLatency,
		maxLatency:      cfg.MaxLatency,
		writeFailRate:   cfg.WriteFailRate,
		reorderFailRate: cfg.ReorderFailRate,
		rng:             rand.New(src),
	}
}

// Disabled returns an injector that never delays and never fails.
func Disabled() *Injector {
	return &Injector{}
}

// Delay sleeps for a uniformly random duration in [min, max], or until the
// context is done, whichever comes first.
func (i *Injector) Delay(ctx context.Context) {
	if !i.enabled {
		return
	}

	span := i.maxLatency - i.minLatency
	d := i.minLatency
	if span > 0 {
		i.mu.Lock()
		d += time.Duration(i.rng.Int63n(int64(span) + 1))
		i.mu.Unlock()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// FailWrite rolls the write failure dice.
func (i *Injector) FailWrite() bool {
	return i.roll(i.writeFailRate)
}

// FailReorder rolls the reorder failure dice. Reorders fail more often than
// plain writes so drag-and-drop rollback stays exercised.
func (i *Injector) FailReorder() bool {
	return i.roll(i.reorderFailRate)
}

func (i *Injector) roll(rate float64) bool {
	if !i.enabled || rate <= 0 {
		return false
	}
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.rng.Float64() < rate
}
