package errors

import "net/http"

// Not found
var (
	ErrSiteNotFound = New(
		"SITE_NOT_FOUND",
		"Historical site not found",
		http.StatusNotFound,
	)

	ErrContributionNotFound = New(
		"CONTRIBUTION_NOT_FOUND",
		"Contribution not found",
		http.StatusNotFound,
	)

	ErrEventNotFound = New(
		"EVENT_NOT_FOUND",
		"Historical event not found",
		http.StatusNotFound,
	)

	ErrCommentNotFound = New(
		"COMMENT_NOT_FOUND",
		"Comment not found",
		http.StatusNotFound,
	)

	ErrUserNotFound = New(
		"USER_NOT_FOUND",
		"User not found",
		http.StatusNotFound,
	)
)

// Conflict
var (
	ErrSiteAlreadyExists = New(
		"SITE_ALREADY_EXISTS",
		"Historical site already exists",
		http.StatusConflict,
	)

	ErrUserAlreadyExists = New(
		"USER_ALREADY_EXISTS",
		"User already exists",
		http.StatusConflict,
	)

	ErrInvalidStatusTransition = New(
		"INVALID_STATUS_TRANSITION",
		"Contribution is not pending",
		http.StatusConflict,
	)
)

// Invalid argument
var (
	ErrInvalidRequest = New(
		"INVALID_REQUEST",
		"Invalid request parameters",
		http.StatusBadRequest,
	)

	ErrValidationFailed = New(
		"VALIDATION_FAILED",
		"Request validation failed",
		http.StatusBadRequest,
	)

	ErrInvalidID = New(
		"INVALID_ID",
		"Invalid identifier",
		http.StatusBadRequest,
	)

	ErrInvalidCoordinates = New(
		"INVALID_COORDINATES",
		"Invalid coordinates provided",
		http.StatusBadRequest,
	)

	ErrInvalidRadius = New(
		"INVALID_RADIUS",
		"Invalid radius value",
		http.StatusBadRequest,
	)

	ErrInvalidDateRange = New(
		"INVALID_DATE_RANGE",
		"Invalid date range",
		http.StatusBadRequest,
	)

	ErrInvalidStatus = New(
		"INVALID_STATUS",
		"Invalid contribution status",
		http.StatusBadRequest,
	)

	ErrInvalidCommentTarget = New(
		"INVALID_COMMENT_TARGET",
		"Comment must reference exactly one site or event",
		http.StatusBadRequest,
	)

	ErrRateLimited = New(
		"RATE_LIMITED",
		"Too many requests",
		http.StatusTooManyRequests,
	)
)

// Internal
var (
	ErrDatabaseError = New(
		"DATABASE_ERROR",
		"Database operation failed",
		http.StatusInternalServerError,
	)

	ErrCacheError = New(
		"CACHE_ERROR",
		"Cache operation failed",
		http.StatusInternalServerError,
	)

	ErrInternalServer = New(
		"INTERNAL_SERVER_ERROR",
		"Internal server error",
		http.StatusInternalServerError,
	)
)
