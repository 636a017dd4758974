package moderation

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/heritage-catalog/internal/domain"
	"github.com/heritage-catalog/internal/domain/repository"
	"github.com/heritage-catalog/internal/worker"
)

const (
	defaultBatchSize = 20
	emptyQueueSleep  = 100 * time.Millisecond
	errorSleep       = time.Second
	retryBackoff     = 200 * time.Millisecond

	// DefaultPendingMinIdle - через сколько неподтверждённое сообщение забирается повторно
	DefaultPendingMinIdle = 30 * time.Second
	// DefaultClaimInterval - пауза между полными проходами по списку pending
	DefaultClaimInterval = 10 * time.Second

	pendingCursorStart = "0-0"
)

// EventRecorder - запись события модерации в журнал (usecase.ModerationUseCase)
type EventRecorder interface {
	Record(ctx context.Context, event *domain.ContributionModeratedEvent) (bool, error)
}

// AuditWorker читает stream:contribution:moderated и пишет события в журнал модерации.
// Битые сообщения подтверждаются и пропускаются; сообщение, которое не удалось
// записать после maxRetries попыток, остаётся неподтверждённым и забирается
// повторно через XAUTOCLAIM, когда простоит pendingMinIdle.
type AuditWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	recorder     EventRecorder
	consumerName string
	batchSize    int
	maxRetries   int

	pendingMinIdle time.Duration
	claimInterval  time.Duration
	claimCursor    string
	nextClaim      time.Time
}

func NewAuditWorker(
	streamRepo repository.StreamRepository,
	recorder EventRecorder,
	consumerGroup string,
	batchSize int,
	maxRetries int,
	logger *zap.Logger,
) *AuditWorker {
	hostname, _ := os.Hostname()
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if maxRetries < 1 {
		maxRetries = 1
	}

	return &AuditWorker{
		BaseWorker:   worker.NewBaseWorker("moderation-audit", consumerGroup, logger),
		streamRepo:   streamRepo,
		recorder:     recorder,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    batchSize,
		maxRetries:   maxRetries,

		pendingMinIdle: DefaultPendingMinIdle,
		claimInterval:  DefaultClaimInterval,
		claimCursor:    pendingCursorStart,
	}
}

// WithPendingClaim задаёт минимальный простой сообщения и паузу между проходами по pending
func (w *AuditWorker) WithPendingClaim(minIdle, interval time.Duration) *AuditWorker {
	w.pendingMinIdle = minIdle
	w.claimInterval = interval
	return w
}

// Start создаёт consumer group и обрабатывает пачки до остановки
func (w *AuditWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting moderation audit worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamContributionModerated, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			logger.Info("Context cancelled")
			return ctx.Err()
		default:
		}

		processed, err := w.ProcessBatch(ctx)
		if err != nil {
			logger.Error("Failed to process batch", zap.Error(err))
			w.Pause(ctx, errorSleep)
			continue
		}
		if processed == 0 {
			w.Pause(ctx, emptyQueueSleep)
		}
	}
}

// ProcessBatch обрабатывает одну пачку и возвращает число прочитанных сообщений
func (w *AuditWorker) ProcessBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.nextMessages(ctx)
	if err != nil {
		return 0, err
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ack := make([]string, 0, len(messages))
	recorded := 0
	for _, msg := range messages {
		event, err := parseMessage(msg)
		if err != nil {
			logger.Warn("Skipping malformed moderation event",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ack = append(ack, msg.ID)
			continue
		}

		inserted, err := w.record(ctx, event)
		if err != nil {
			logger.Error("Failed to record moderation event, leaving it pending for reclaim",
				zap.String("message_id", msg.ID),
				zap.String("event_id", event.EventID.String()),
				zap.Error(err))
			continue
		}
		if inserted {
			recorded++
		}
		ack = append(ack, msg.ID)
	}

	if len(ack) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamContributionModerated, w.ConsumerGroup(), ack); err != nil {
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	logger.Info("Batch processed",
		zap.Int("messages", len(messages)),
		zap.Int("recorded", recorded),
		zap.Int("acked", len(ack)))

	return len(messages), nil
}

// nextMessages сначала забирает зависшие pending-сообщения, затем читает новые.
// Пока проход по pending не дошёл до конца, он продолжается на каждой пачке.
func (w *AuditWorker) nextMessages(ctx context.Context) ([]domain.StreamMessage, error) {
	if !time.Now().Before(w.nextClaim) {
		claimed, next, err := w.streamRepo.ClaimPending(
			ctx,
			domain.StreamContributionModerated,
			w.ConsumerGroup(),
			w.consumerName,
			w.pendingMinIdle,
			w.claimCursor,
			w.batchSize,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to claim pending messages: %w", err)
		}

		w.claimCursor = next
		if next == "" || next == pendingCursorStart {
			w.claimCursor = pendingCursorStart
			w.nextClaim = time.Now().Add(w.claimInterval)
		}
		if len(claimed) > 0 {
			return claimed, nil
		}
	}

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamContributionModerated,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to consume batch: %w", err)
	}
	return messages, nil
}

func (w *AuditWorker) record(ctx context.Context, event *domain.ContributionModeratedEvent) (bool, error) {
	var lastErr error
	for attempt := 1; attempt <= w.maxRetries; attempt++ {
		inserted, err := w.recorder.Record(ctx, event)
		if err == nil {
			return inserted, nil
		}
		lastErr = err

		if attempt < w.maxRetries && !w.Pause(ctx, retryBackoff*time.Duration(attempt)) {
			break
		}
	}
	return false, lastErr
}

func parseMessage(msg domain.StreamMessage) (*domain.ContributionModeratedEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.ContributionModeratedEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	if !event.Valid() {
		return nil, fmt.Errorf("invalid event: contribution_id=%d from=%q to=%q",
			event.ContributionID, event.FromStatus, event.ToStatus)
	}

	return &event, nil
}
