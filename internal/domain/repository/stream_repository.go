package repository

import (
	"context"
	"time"

	"github.com/heritage-catalog/internal/domain"
)

// StreamRepository - интерфейс для работы с Redis Streams
type StreamRepository interface {
	// CreateConsumerGroup создаёт consumer group
	CreateConsumerGroup(ctx context.Context, stream, group string) error

	// ConsumeBatch читает до count сообщений без долгой блокировки
	ConsumeBatch(ctx context.Context, stream, group, consumer string, count int) ([]domain.StreamMessage, error)

	// ClaimPending забирает себе неподтверждённые сообщения группы, простаивающие
	// не меньше minIdle, начиная с курсора start. Возвращает курсор следующего вызова;
	// "0-0" - список pending просмотрен целиком.
	ClaimPending(ctx context.Context, stream, group, consumer string, minIdle time.Duration, start string, count int) ([]domain.StreamMessage, string, error)

	// AckMessages подтверждает обработку сообщений
	AckMessages(ctx context.Context, stream, group string, messageIDs []string) error

	// PublishToStream публикует сообщение в стрим
	PublishToStream(ctx context.Context, stream string, data interface{}) error
}
