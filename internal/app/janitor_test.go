package app

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

type countingEvicter struct {
	calls atomic.Int32
	ttl   atomic.Int64
}

func (c *countingEvicter) EvictIdle(ttl time.Duration) int {
	c.ttl.Store(int64(ttl))
	c.calls.Add(1)
	return 1
}

func TestJanitor_SweepsUntilStopped(t *testing.T) {
	defer goleak.VerifyNone(t)

	evicter := &countingEvicter{}
	j := NewJanitor(evicter, time.Hour, 5*time.Millisecond, zaptest.NewLogger(t))
	j.Start(context.Background())

	assert.Eventually(t, func() bool { return evicter.calls.Load() >= 2 }, time.Second, 5*time.Millisecond)
	j.Stop()
	j.Stop()

	assert.Equal(t, int64(time.Hour), evicter.ttl.Load())
}

func TestJanitor_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	j := NewJanitor(&countingEvicter{}, time.Hour, time.Hour, zaptest.NewLogger(t))
	j.Start(ctx)
	cancel()
	j.Stop()
}

func TestNewJanitor_DefaultInterval(t *testing.T) {
	j := NewJanitor(&countingEvicter{}, 2*time.Hour, 0, zaptest.NewLogger(t))
	assert.Equal(t, 30*time.Minute, j.interval)

	j = NewJanitor(&countingEvicter{}, 0, 0, zaptest.NewLogger(t))
	assert.Equal(t, time.Minute, j.interval)
}
