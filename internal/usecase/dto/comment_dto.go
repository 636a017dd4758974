package dto

// CreateCommentRequest - комментарий привязывается ровно к одному месту или событию
type CreateCommentRequest struct {
	UserID     int64  `json:"user_id" validate:"required,gt=0"`
	TargetType string `json:"target_type" validate:"required,oneof=site event"`
	TargetID   int64  `json:"target_id" validate:"required,gt=0"`
	Content    string `json:"content" validate:"required,min=1,max=5000"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=5000"`
}

// ListCommentsRequest - нужен ровно один из site_id и event_id
type ListCommentsRequest struct {
	SiteID  *int64 `query:"site_id"`
	EventID *int64 `query:"event_id"`
}
