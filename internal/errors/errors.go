package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrReportNotFound is returned when a report id does not exist.
	ErrReportNotFound = errors.New("report not found")
	// ErrQuizNotFound is returned when a quiz id does not exist.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrQuestionNotFound is returned when a quiz question id does not exist.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrArticleNotFound is returned when an article id does not exist.
	ErrArticleNotFound = errors.New("article not found")
	// ErrTipAlertNotFound is returned when a tip/alert id does not exist.
	ErrTipAlertNotFound = errors.New("tip or alert not found")
	// ErrAccessDenied is returned when the entity exists but the caller is
	// neither its owner nor an admin.
	ErrAccessDenied = errors.New("access denied")
	// ErrInvalidReportType is returned for a report type outside the closed enumeration.
	ErrInvalidReportType = errors.New("invalid report type")
	// ErrInvalidStatus is returned for a report status outside new/in_review/closed.
	ErrInvalidStatus = errors.New("invalid report status")
	// ErrInvalidOptionCount is returned when a question carries fewer than two
	// or more than five options.
	ErrInvalidOptionCount = errors.New("question must have between 2 and 5 options")
	// ErrInvalidCorrectOption is returned when the correct option index does not
	// point into the submitted option set.
	ErrInvalidCorrectOption = errors.New("correct option index out of range")
	// ErrEmailTaken is returned when registering with an email that already exists.
	ErrEmailTaken = errors.New("email already registered")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Persistence faults fall
// through to a generic 500 and are never surfaced verbatim.
func MapErrorToHTTP(err error) *HTTPError {
	switch err {
	case ErrReportNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "REPORT_NOT_FOUND")
	case ErrQuizNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "QUIZ_NOT_FOUND")
	case ErrQuestionNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "QUESTION_NOT_FOUND")
	case ErrArticleNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "ARTICLE_NOT_FOUND")
	case ErrTipAlertNotFound:
		return NewHTTPError(http.StatusNotFound, err.Error(), "TIP_ALERT_NOT_FOUND")
	case ErrAccessDenied:
		return NewHTTPError(http.StatusForbidden, err.Error(), "ACCESS_DENIED")
	case ErrInvalidReportType:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_REPORT_TYPE")
	case ErrInvalidStatus:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_STATUS")
	case ErrInvalidOptionCount:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_OPTION_COUNT")
	case ErrInvalidCorrectOption:
		return NewHTTPError(http.StatusBadRequest, err.Error(), "INVALID_CORRECT_OPTION")
	case ErrEmailTaken:
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_TAKEN")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
