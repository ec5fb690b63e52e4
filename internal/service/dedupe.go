package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Deduper отсекает повторную отправку одной и той же заявки
type Deduper interface {
	// FirstSeen возвращает true, если ключ встречается впервые в пределах окна
	FirstSeen(ctx context.Context, key string) (bool, error)
	// Forget снимает ключ, если заявку не удалось сохранить
	Forget(ctx context.Context, key string) error
}

// RedisDeduper хранит ключи в Redis с TTL
type RedisDeduper struct {
	client *redis.Client
	window time.Duration
	prefix string
}

// NewRedisDeduper создаёт дедупликатор поверх Redis
func NewRedisDeduper(client *redis.Client, window time.Duration) *RedisDeduper {
	return &RedisDeduper{
		client: client,
		window: window,
		prefix: "consultations:dedupe:",
	}
}

func (d *RedisDeduper) FirstSeen(ctx context.Context, key string) (bool, error) {
	ok, err := d.client.SetNX(ctx, d.prefix+key, time.Now().UTC().Format(time.RFC3339), d.window).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (d *RedisDeduper) Forget(ctx context.Context, key string) error {
	if err := d.client.Del(ctx, d.prefix+key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

// NopDeduper пропускает всё (Redis не настроен)
type NopDeduper struct{}

func (NopDeduper) FirstSeen(context.Context, string) (bool, error) {
	return true, nil
}

func (NopDeduper) Forget(context.Context, string) error { return nil }

// dedupeKey ключ заявки; email без учёта регистра
func dedupeKey(form string, parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return form + ":" + strings.Join(parts, "|")
}
