package errors_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/heritage-catalog/internal/pkg/errors"
)

func TestAppError_WithDetailsDoesNotMutateSentinel(t *testing.T) {
	withDetails := apperrors.ErrInvalidRadius.WithDetails(map[string]interface{}{"radius": -1.0})

	assert.Nil(t, apperrors.ErrInvalidRadius.Details)
	assert.Equal(t, -1.0, withDetails.Details["radius"])
	assert.Equal(t, http.StatusBadRequest, withDetails.StatusCode)
}

func TestAppError_IsMatchesByCode(t *testing.T) {
	copied := apperrors.ErrSiteNotFound.WithMessage("Historical site 42 not found")
	wrapped := fmt.Errorf("get site: %w", copied)

	assert.True(t, apperrors.Is(wrapped, apperrors.ErrSiteNotFound))
	assert.False(t, apperrors.Is(wrapped, apperrors.ErrContributionNotFound))

	appErr, ok := apperrors.As(wrapped)
	assert.True(t, ok)
	assert.Equal(t, "SITE_NOT_FOUND", appErr.Code)
	assert.Equal(t, http.StatusNotFound, appErr.StatusCode)
}

func TestAppError_Error(t *testing.T) {
	assert.Equal(t, "INVALID_STATUS_TRANSITION: Contribution is not pending", apperrors.ErrInvalidStatusTransition.Error())
}
