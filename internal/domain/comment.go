package domain

import (
	"errors"
	"time"
)

// CommentTargetKind - к чему относится комментарий
type CommentTargetKind string

const (
	CommentOnSite  CommentTargetKind = "site"
	CommentOnEvent CommentTargetKind = "event"
)

var ErrInvalidCommentTarget = errors.New("comment must reference exactly one site or event")

// CommentTarget - родитель комментария: ровно одно место или одно событие
type CommentTarget struct {
	Kind CommentTargetKind `json:"type"`
	ID   int64             `json:"id"`
}

func SiteTarget(siteID int64) CommentTarget {
	return CommentTarget{Kind: CommentOnSite, ID: siteID}
}

func EventTarget(eventID int64) CommentTarget {
	return CommentTarget{Kind: CommentOnEvent, ID: eventID}
}

// NewCommentTarget собирает цель по типу из запроса
func NewCommentTarget(kind string, id int64) (CommentTarget, error) {
	if id <= 0 {
		return CommentTarget{}, ErrInvalidCommentTarget
	}
	switch CommentTargetKind(kind) {
	case CommentOnSite:
		return SiteTarget(id), nil
	case CommentOnEvent:
		return EventTarget(id), nil
	default:
		return CommentTarget{}, ErrInvalidCommentTarget
	}
}

// CommentTargetFromColumns восстанавливает цель из двух nullable колонок таблицы
func CommentTargetFromColumns(siteID, eventID *int64) (CommentTarget, error) {
	switch {
	case siteID != nil && eventID == nil:
		return SiteTarget(*siteID), nil
	case eventID != nil && siteID == nil:
		return EventTarget(*eventID), nil
	default:
		return CommentTarget{}, ErrInvalidCommentTarget
	}
}

// Columns раскладывает цель обратно в (site_id, event_id)
func (t CommentTarget) Columns() (siteID, eventID *int64) {
	id := t.ID
	if t.Kind == CommentOnEvent {
		return nil, &id
	}
	return &id, nil
}

// Comment - комментарий пользователя к месту или событию
type Comment struct {
	ID        int64         `json:"id"`
	UserID    int64         `json:"user_id"`
	Target    CommentTarget `json:"target"`
	Content   string        `json:"content"`
	CreatedAt time.Time     `json:"created_at"`
}
