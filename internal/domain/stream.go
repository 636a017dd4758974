package domain

import (
	"time"

	"github.com/google/uuid"
)

// Stream names
const (
	StreamContributionModerated = "stream:contribution:moderated"
)

// StreamMessage - сообщение из Redis Stream, Data содержит JSON
type StreamMessage struct {
	ID   string
	Data string
}

// ContributionModeratedEvent - публикуется после approve/reject
type ContributionModeratedEvent struct {
	EventID        uuid.UUID          `json:"event_id"`
	ContributionID int64              `json:"contribution_id"`
	SiteID         int64              `json:"site_id"`
	FromStatus     ContributionStatus `json:"from_status"`
	ToStatus       ContributionStatus `json:"to_status"`
	OccurredAt     time.Time          `json:"occurred_at"`
}

// Valid проверяет, что событие пригодно для записи в журнал
func (e *ContributionModeratedEvent) Valid() bool {
	return e.EventID != uuid.Nil &&
		e.ContributionID > 0 &&
		e.FromStatus.CanTransitionTo(e.ToStatus)
}

// ModerationRecord - запись журнала модерации
type ModerationRecord struct {
	ID             int64              `json:"id" db:"id"`
	EventID        uuid.UUID          `json:"event_id" db:"event_id"`
	ContributionID int64              `json:"contribution_id" db:"contribution_id"`
	SiteID         int64              `json:"site_id" db:"site_id"`
	FromStatus     ContributionStatus `json:"from_status" db:"from_status"`
	ToStatus       ContributionStatus `json:"to_status" db:"to_status"`
	OccurredAt     time.Time          `json:"occurred_at" db:"occurred_at"`
	RecordedAt     time.Time          `json:"recorded_at" db:"recorded_at"`
}
