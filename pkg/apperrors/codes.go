package apperrors

// Error codes grouped by domain.
const (
	// Authentication and authorization
	CodeUnauthenticated ErrorCode = "UNAUTHENTICATED"
	CodeForbidden       ErrorCode = "FORBIDDEN"
	CodeInvalidToken    ErrorCode = "INVALID_TOKEN"

	// Validation
	CodeInvalidArgument  ErrorCode = "INVALID_ARGUMENT"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"

	// Resources
	CodeUserNotFound         ErrorCode = "USER_NOT_FOUND"
	CodeNotificationNotFound ErrorCode = "NOTIFICATION_NOT_FOUND"
	CodeSettingsNotFound     ErrorCode = "SETTINGS_NOT_FOUND"

	// System
	CodeInternalError        ErrorCode = "INTERNAL"
	CodeDatabaseError        ErrorCode = "DATABASE_ERROR"
	CodeExternalServiceError ErrorCode = "EXTERNAL_SERVICE_ERROR"
)
