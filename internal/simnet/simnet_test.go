package simnet

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hirepipe/hirepipe/internal/config"
)

func TestInjector_Disabled(t *testing.T) {
	inj := Disabled()

	start := time.Now()
	inj.Delay(context.Background())
	assert.Less(t, time.Since(start), 50*time.Millisecond)

	for i := 0; i < 100; i++ {
		assert.False(t, inj.FailWrite())
		assert.False(t, inj.FailReorder())
	}
}

func TestInjector_FailureRates(t *testing.T) {
	inj := New(config.SimnetConfig{
		Enabled:         true,
		WriteFailRate:   1.0,
		ReorderFailRate: 0,
	}, rand.NewSource(1))

	assert.True(t, inj.FailWrite())
	assert.False(t, inj.FailReorder())

	never := New(config.SimnetConfig{Enabled: true}, rand.NewSource(1))
	for i := 0; i < 100; i++ {
		assert.False(t, never.FailWrite())
	}
}

func TestInjector_DelayRespectsContext(t *testing.T) {
	inj := New(config.SimnetConfig{
		Enabled:    true,
		MinLatency: time.Minute,
		MaxLatency: 2 * time.Minute,
	}, rand.NewSource(1))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	inj.Delay(ctx)
	assert.Less(t, time.Since(start), time.Second)
}

func TestInjector_DelayWithinBounds(t *testing.T) {
	inj := New(config.SimnetConfig{
		Enabled:    true,
		MinLatency: 5 * time.Millisecond,
		MaxLatency: 20 * time.Millisecond,
	}, rand.NewSource(1))

	start := time.Now()
	inj.Delay(context.Background())
	elapsed := time.Since(start)
	assert.GreaterOrEqual(t, elapsed, 5*time.Millisecond)
	assert.Less(t, elapsed, 500*time.Millisecond)
}
