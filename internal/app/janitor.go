package app

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// SessionEvicter хранилище сессий мастера, умеющее удалять простаивающие
type SessionEvicter interface {
	EvictIdle(ttl time.Duration) int
}

// Janitor периодически удаляет брошенные сессии мастера записи
type Janitor struct {
	sessions SessionEvicter
	ttl      time.Duration
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewJanitor создаёт новый janitor
func NewJanitor(sessions SessionEvicter, ttl, interval time.Duration, logger *zap.Logger) *Janitor {
	if interval <= 0 {
		interval = ttl / 4
	}
	if interval <= 0 {
		interval = time.Minute
	}
	return &Janitor{
		sessions: sessions,
		ttl:      ttl,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновую очистку
func (j *Janitor) Start(ctx context.Context) {
	j.logger.Info("Starting session janitor",
		zap.Duration("ttl", j.ttl),
		zap.Duration("interval", j.interval))

	j.wg.Add(1)
	go j.run(ctx)
}

// Stop останавливает очистку и ждёт завершения горутины
func (j *Janitor) Stop() {
	j.stopOnce.Do(func() {
		j.logger.Info("Stopping session janitor")
		close(j.stopChan)
	})
	j.wg.Wait()
}

func (j *Janitor) run(ctx context.Context) {
	defer j.wg.Done()

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.sweep()
		case <-j.stopChan:
			j.logger.Info("Session janitor stopped")
			return
		case <-ctx.Done():
			j.logger.Info("Session janitor cancelled")
			return
		}
	}
}

func (j *Janitor) sweep() {
	if n := j.sessions.EvictIdle(j.ttl); n > 0 {
		j.logger.Info("Evicted idle wizard sessions", zap.Int("count", n))
	}
}
