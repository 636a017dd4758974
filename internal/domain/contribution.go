package domain

import (
	"strings"
	"time"
)

// ContributionStatus - статус модерации пользовательского вклада
type ContributionStatus string

const (
	ContributionPending  ContributionStatus = "pending"
	ContributionApproved ContributionStatus = "approved"
	ContributionRejected ContributionStatus = "rejected"
)

// ParseContributionStatus разбирает статус без учёта регистра
func ParseContributionStatus(s string) (ContributionStatus, bool) {
	switch st := ContributionStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case ContributionPending, ContributionApproved, ContributionRejected:
		return st, true
	default:
		return "", false
	}
}

// IsTerminal - approved и rejected окончательные
func (s ContributionStatus) IsTerminal() bool {
	return s == ContributionApproved || s == ContributionRejected
}

// CanTransitionTo - разрешены только pending -> approved и pending -> rejected
func (s ContributionStatus) CanTransitionTo(next ContributionStatus) bool {
	return s == ContributionPending && next.IsTerminal()
}

// Contribution - пользовательский вклад, привязанный к историческому месту
type Contribution struct {
	ID                  int64              `json:"id" db:"id"`
	SiteID              int64              `json:"historical_site_id" db:"historical_site_id"`
	UserID              *int64             `json:"user_id,omitempty" db:"user_id"`
	ContributorName     string             `json:"contributor_name" db:"contributor_name"`
	ContributionDetails string             `json:"contribution_details" db:"contribution_details"`
	Images              StringList         `json:"images" db:"images"`
	Audio               *string            `json:"audio,omitempty" db:"audio"`
	Verified            bool               `json:"verified" db:"verified"`
	Status              ContributionStatus `json:"status" db:"status"`
	CreatedAt           time.Time          `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at" db:"updated_at"`
}

// ContributionUpdate - частичное обновление вклада. Статус меняется только через модерацию.
type ContributionUpdate struct {
	ContributorName     *string
	ContributionDetails *string
	Images              *[]string
	Audio               *string
	Verified            *bool
}

func (u ContributionUpdate) Apply(c *Contribution) {
	if u.ContributorName != nil {
		c.ContributorName = *u.ContributorName
	}
	if u.ContributionDetails != nil {
		c.ContributionDetails = *u.ContributionDetails
	}
	if u.Images != nil {
		c.Images = append(StringList{}, (*u.Images)...)
	}
	if u.Audio != nil {
		c.Audio = u.Audio
	}
	if u.Verified != nil {
		c.Verified = *u.Verified
	}
}
