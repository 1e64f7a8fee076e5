package dto

import "net/http"

// Error codes returned in the envelope's error.code field
const (
	CodeValidationError       = "VALIDATION_ERROR"
	CodeInvalidInput          = "INVALID_INPUT"
	CodeUnauthorized          = "UNAUTHORIZED"
	CodeForbidden             = "FORBIDDEN"
	CodeNotFound              = "NOT_FOUND"
	CodeAlreadyExists         = "ALREADY_EXISTS"
	CodeInvalidState          = "INVALID_STATE"
	CodeConcurrencyConflict   = "CONCURRENCY_CONFLICT"
	CodeDuplicateEmail        = "DUPLICATE_EMAIL"
	CodeDuplicateName         = "DUPLICATE_NAME"
	CodeInvalidCredentials    = "INVALID_CREDENTIALS"
	CodeAccountDeactivated    = "ACCOUNT_DEACTIVATED"
	CodeEmailNotVerified      = "EMAIL_NOT_VERIFIED"
	CodeTokenInvalid          = "TOKEN_INVALID"
	CodeTokenExpired          = "TOKEN_EXPIRED"
	CodeAlreadyVotedToday     = "ALREADY_VOTED_TODAY"
	CodeTemperatureOutOfRange = "TEMPERATURE_OUT_OF_RANGE"
	CodeNoFieldsToUpdate      = "NO_FIELDS_TO_UPDATE"
	CodeRateLimitExceeded     = "RATE_LIMIT_EXCEEDED"
	CodeRequestTooLarge       = "REQUEST_TOO_LARGE"
	CodeUploadFailed          = "UPLOAD_FAILED"
	CodeInternalError         = "INTERNAL_ERROR"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes. Unknown codes
// fall through to 400 for domain errors; see GetHTTPStatus.
var ErrorCodeHTTPStatus = map[string]int{
	CodeValidationError:       http.StatusBadRequest,
	CodeInvalidInput:          http.StatusBadRequest,
	CodeUnauthorized:          http.StatusUnauthorized,
	CodeForbidden:             http.StatusForbidden,
	CodeNotFound:              http.StatusNotFound,
	CodeAlreadyExists:         http.StatusConflict,
	CodeInvalidState:          http.StatusConflict,
	CodeConcurrencyConflict:   http.StatusConflict,
	CodeDuplicateEmail:        http.StatusConflict,
	CodeDuplicateName:         http.StatusConflict,
	CodeInvalidCredentials:    http.StatusUnauthorized,
	CodeAccountDeactivated:    http.StatusUnauthorized,
	CodeEmailNotVerified:      http.StatusForbidden,
	CodeTokenInvalid:          http.StatusBadRequest,
	CodeTokenExpired:          http.StatusBadRequest,
	CodeAlreadyVotedToday:     http.StatusTooManyRequests,
	CodeTemperatureOutOfRange: http.StatusBadRequest,
	CodeNoFieldsToUpdate:      http.StatusBadRequest,
	CodeRateLimitExceeded:     http.StatusTooManyRequests,
	CodeRequestTooLarge:       http.StatusRequestEntityTooLarge,
	CodeUploadFailed:          http.StatusBadGateway,
	CodeInternalError:         http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status for an error code. Codes without a
// mapping are treated as client errors rather than masked as 500s.
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusBadRequest
}
