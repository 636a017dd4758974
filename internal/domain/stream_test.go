package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestContributionModeratedEvent_Valid(t *testing.T) {
	tests := []struct {
		name        string
		event       ContributionModeratedEvent
		expected    bool
		description string
	}{
		{
			name: "approval",
			event: ContributionModeratedEvent{
				EventID:        uuid.New(),
				ContributionID: 7,
				SiteID:         1,
				FromStatus:     ContributionPending,
				ToStatus:       ContributionApproved,
				OccurredAt:     time.Now(),
			},
			expected:    true,
			description: "pending -> approved is a recordable event",
		},
		{
			name: "rejection",
			event: ContributionModeratedEvent{
				EventID:        uuid.New(),
				ContributionID: 7,
				FromStatus:     ContributionPending,
				ToStatus:       ContributionRejected,
			},
			expected:    true,
			description: "pending -> rejected is a recordable event",
		},
		{
			name: "missing event id",
			event: ContributionModeratedEvent{
				ContributionID: 7,
				FromStatus:     ContributionPending,
				ToStatus:       ContributionApproved,
			},
			expected:    false,
			description: "event id is the idempotency key and must be set",
		},
		{
			name: "transition out of terminal state",
			event: ContributionModeratedEvent{
				EventID:        uuid.New(),
				ContributionID: 7,
				FromStatus:     ContributionApproved,
				ToStatus:       ContributionRejected,
			},
			expected:    false,
			description: "terminal states never transition",
		},
		{
			name: "missing contribution",
			event: ContributionModeratedEvent{
				EventID:    uuid.New(),
				FromStatus: ContributionPending,
				ToStatus:   ContributionApproved,
			},
			expected:    false,
			description: "contribution id is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.event.Valid(), tt.description)
		})
	}
}
