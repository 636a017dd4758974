package repository

import (
	"context"
	"time"
)

// CacheRepository определяет методы для работы с кешем
type CacheRepository interface {
	// Get получает значение из кеша по ключу. Промах - (nil, nil)
	Get(ctx context.Context, key string) ([]byte, error)

	// Set сохраняет значение в кеше с TTL
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete удаляет значение из кеша
	Delete(ctx context.Context, key string) error

	// Counter возвращает текущее значение счётчика (0, если ключа нет)
	Counter(ctx context.Context, key string) (int64, error)

	// Incr атомарно увеличивает счётчик
	Incr(ctx context.Context, key string) (int64, error)
}
