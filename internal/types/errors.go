package types

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorCode is a typed string for categorizing application errors.
type ErrorCode string

// Complete error code constants.
// All handlers MUST use these constants instead of hardcoded strings.
const (
	// Validation (400)
	ErrCodeValidationInvalidRequirements ErrorCode = "validation_invalid_requirements"
	ErrCodeValidationInvalidDiscipline   ErrorCode = "validation_invalid_discipline"
	ErrCodeValidationInvalidCommand      ErrorCode = "validation_invalid_command"
	ErrCodeValidationMissingField        ErrorCode = "validation_missing_required_field"
	ErrCodeValidationInvalidJSON         ErrorCode = "validation_invalid_json"
	ErrCodeValidationFailed              ErrorCode = "validation_failed"

	// Not Found (404)
	ErrCodeNotFoundProject ErrorCode = "not_found_project"
	ErrCodeNotFoundRoute   ErrorCode = "not_found_route"

	// Method Not Allowed (405)
	ErrCodeMethodNotAllowed ErrorCode = "method_not_allowed"

	// Conflict (409)
	ErrCodeConflictConcurrent ErrorCode = "conflict_concurrent_modification"

	// Prerequisite (409). An upstream artifact for the project has not been generated yet.
	ErrCodePrerequisiteMissing ErrorCode = "prerequisite_missing"

	// Internal/Upstream (500/502)
	ErrCodeInternalDB         ErrorCode = "internal_database_error"
	ErrCodeInternalCodec      ErrorCode = "internal_codec_error"
	ErrCodeInternalUnexpected ErrorCode = "internal_unexpected_error"
	ErrCodeUpstreamQueue      ErrorCode = "upstream_queue_unavailable"
)

// HTTPStatus maps an ErrorCode to its corresponding HTTP status code.
// Returns 500 for unrecognized error codes as a safe default.
func (c ErrorCode) HTTPStatus() int {
	s := string(c)
	switch {
	case strings.HasPrefix(s, "validation_"):
		return http.StatusBadRequest // 400
	case strings.HasPrefix(s, "not_found_"):
		return http.StatusNotFound // 404
	case strings.HasPrefix(s, "method_"):
		return http.StatusMethodNotAllowed // 405
	case strings.HasPrefix(s, "conflict_"):
		return http.StatusConflict // 409
	case strings.HasPrefix(s, "prerequisite_"):
		return http.StatusConflict // 409
	case strings.HasPrefix(s, "upstream_"):
		return http.StatusBadGateway // 502
	case strings.HasPrefix(s, "internal_"):
		return http.StatusInternalServerError // 500
	default:
		return http.StatusInternalServerError // 500
	}
}

// AppError is the standard application error type used throughout the service.
// All domain and handler errors should be expressed as AppError to enable
// consistent error formatting, HTTP status mapping, and error chain support.
type AppError struct {
	Code    ErrorCode      `json:"code"`
	Message string         `json:"message"`
	Err     error          `json:"-"`
	Details map[string]any `json:"details,omitempty"`
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPStatus returns the HTTP status code corresponding to this error's code.
func (e *AppError) HTTPStatus() int {
	return e.Code.HTTPStatus()
}

// WithDetails returns a copy of the error with the provided details merged in.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	merged := make(map[string]any, len(e.Details)+len(details))
	for k, v := range e.Details {
		merged[k] = v
	}
	for k, v := range details {
		merged[k] = v
	}
	return &AppError{
		Code:    e.Code,
		Message: e.Message,
		Err:     e.Err,
		Details: merged,
	}
}

// NewAppError creates a new AppError with the given code, message, and optional
// underlying error.
func NewAppError(code ErrorCode, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewAppErrorWithDetails creates a new AppError with structured details.
func NewAppErrorWithDetails(code ErrorCode, message string, err error, details map[string]any) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}

// ErrProjectNotFound builds the error returned for an unknown project id.
func ErrProjectNotFound(projectID string) *AppError {
	return NewAppErrorWithDetails(ErrCodeNotFoundProject, "project not found", nil,
		map[string]any{"project_id": projectID})
}

// ErrConcurrentModification is returned by a store when the project changed
// after the caller read it.
func ErrConcurrentModification(projectID string, version int64) *AppError {
	return NewAppErrorWithDetails(ErrCodeConflictConcurrent, "project was modified concurrently", nil,
		map[string]any{"project_id": projectID, "expected_version": version})
}

// ErrPrerequisiteMissing builds the error returned when a discipline is requested
// before the artifact it depends on exists. The details carry enough context for
// an orchestrator to generate the missing artifact and retry.
func ErrPrerequisiteMissing(projectID string, discipline, requires Discipline) *AppError {
	return NewAppErrorWithDetails(ErrCodePrerequisiteMissing,
		fmt.Sprintf("%s design requires a %s design to be generated first", discipline, requires), nil,
		map[string]any{
			"project_id": projectID,
			"discipline": string(discipline),
			"requires":   string(requires),
		})
}

// IsCode reports whether err is an *AppError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.Code == code
}
