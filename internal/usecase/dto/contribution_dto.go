package dto

import "github.com/heritage-catalog/internal/domain"

// CreateContributionRequest - вклад всегда создаётся в статусе pending
type CreateContributionRequest struct {
	SiteID              int64    `json:"historical_site_id" validate:"required,gt=0"`
	UserID              *int64   `json:"user_id,omitempty" validate:"omitempty,gt=0"`
	ContributorName     string   `json:"contributor_name" validate:"required,min=1,max=255"`
	ContributionDetails string   `json:"contribution_details" validate:"required,min=1,max=10000"`
	Images              []string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	Audio               *string  `json:"audio,omitempty" validate:"omitempty,url"`
}

func (r CreateContributionRequest) ToDomain() *domain.Contribution {
	return &domain.Contribution{
		SiteID:              r.SiteID,
		UserID:              r.UserID,
		ContributorName:     r.ContributorName,
		ContributionDetails: r.ContributionDetails,
		Images:              domain.StringList(nonNil(r.Images)),
		Audio:               r.Audio,
		Status:              domain.ContributionPending,
	}
}

// UpdateContributionRequest - статус сюда намеренно не входит, он меняется только модерацией
type UpdateContributionRequest struct {
	ContributorName     *string   `json:"contributor_name,omitempty" validate:"omitempty,min=1,max=255"`
	ContributionDetails *string   `json:"contribution_details,omitempty" validate:"omitempty,min=1,max=10000"`
	Images              *[]string `json:"images,omitempty" validate:"omitempty,max=50,dive,url"`
	Audio               *string   `json:"audio,omitempty" validate:"omitempty,url"`
	Verified            *bool     `json:"verified,omitempty"`
}

func (r UpdateContributionRequest) ToDomain() domain.ContributionUpdate {
	return domain.ContributionUpdate{
		ContributorName:     r.ContributorName,
		ContributionDetails: r.ContributionDetails,
		Images:              r.Images,
		Audio:               r.Audio,
		Verified:            r.Verified,
	}
}
