package types

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppErrorErrorFormat(t *testing.T) {
	appErr := &AppError{
		Code:    ErrCodeValidationInvalidRequirements,
		Message: "surface_area must be greater than zero",
	}

	expected := "validation_invalid_requirements: surface_area must be greater than zero"
	if appErr.Error() != expected {
		t.Errorf("Error() = %q, want %q", appErr.Error(), expected)
	}
}

func TestAppErrorUnwrap(t *testing.T) {
	underlying := errors.New("database connection failed")
	appErr := &AppError{
		Code:    ErrCodeInternalDB,
		Message: "failed to load project",
		Err:     underlying,
	}

	if appErr.Unwrap() != underlying {
		t.Errorf("Unwrap() returned unexpected error: got %v, want %v", appErr.Unwrap(), underlying)
	}
	if !errors.Is(appErr, underlying) {
		t.Error("errors.Is should find the underlying error through Unwrap")
	}
}

func TestAppErrorErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("generate structural: %w", ErrProjectNotFound("prj_1"))

	var target *AppError
	if !errors.As(wrapped, &target) {
		t.Fatal("errors.As should find AppError in the chain")
	}
	if target.Code != ErrCodeNotFoundProject {
		t.Errorf("extracted Code = %q, want %q", target.Code, ErrCodeNotFoundProject)
	}
	if target.Details["project_id"] != "prj_1" {
		t.Errorf("project_id detail = %v, want prj_1", target.Details["project_id"])
	}
}

func TestAppErrorWithDetails(t *testing.T) {
	original := NewAppErrorWithDetails(
		ErrCodeValidationMissingField,
		"field is required",
		nil,
		map[string]any{"field": "name"},
	)

	enhanced := original.WithDetails(map[string]any{"suggestion": "provide a project name"})

	if _, ok := original.Details["suggestion"]; ok {
		t.Error("WithDetails should not mutate the original error")
	}
	if enhanced.Details["field"] != "name" {
		t.Errorf("enhanced should retain original detail: field = %v", enhanced.Details["field"])
	}
	if enhanced.Details["suggestion"] != "provide a project name" {
		t.Errorf("enhanced should have new detail: suggestion = %v", enhanced.Details["suggestion"])
	}
	if enhanced.Code != original.Code || enhanced.Message != original.Message {
		t.Error("Code and Message should carry over")
	}
}

func TestErrPrerequisiteMissing(t *testing.T) {
	err := ErrPrerequisiteMissing("prj_42", DisciplineStructural, Discipline2D)

	if err.Code != ErrCodePrerequisiteMissing {
		t.Fatalf("Code = %q, want %q", err.Code, ErrCodePrerequisiteMissing)
	}
	if err.HTTPStatus() != http.StatusConflict {
		t.Errorf("HTTPStatus() = %d, want 409", err.HTTPStatus())
	}
	if err.Details["project_id"] != "prj_42" {
		t.Errorf("project_id = %v", err.Details["project_id"])
	}
	if err.Details["discipline"] != "structural" {
		t.Errorf("discipline = %v", err.Details["discipline"])
	}
	if err.Details["requires"] != "2d" {
		t.Errorf("requires = %v", err.Details["requires"])
	}
}

func TestIsCode(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", NewAppError(ErrCodeConflictConcurrent, "version mismatch", nil))

	if !IsCode(wrapped, ErrCodeConflictConcurrent) {
		t.Error("IsCode should match a wrapped AppError")
	}
	if IsCode(wrapped, ErrCodeNotFoundProject) {
		t.Error("IsCode should not match a different code")
	}
	if IsCode(errors.New("plain"), ErrCodeConflictConcurrent) {
		t.Error("IsCode should be false for non-AppError values")
	}
	if IsCode(nil, ErrCodeConflictConcurrent) {
		t.Error("IsCode should be false for nil")
	}
}

func TestErrorCodeHTTPStatus(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want int
	}{
		{ErrCodeValidationInvalidRequirements, http.StatusBadRequest},
		{ErrCodeValidationInvalidDiscipline, http.StatusBadRequest},
		{ErrCodeValidationInvalidJSON, http.StatusBadRequest},
		{ErrCodeNotFoundProject, http.StatusNotFound},
		{ErrCodeNotFoundRoute, http.StatusNotFound},
		{ErrCodeMethodNotAllowed, http.StatusMethodNotAllowed},
		{ErrCodeConflictConcurrent, http.StatusConflict},
		{ErrCodePrerequisiteMissing, http.StatusConflict},
		{ErrCodeUpstreamQueue, http.StatusBadGateway},
		{ErrCodeInternalDB, http.StatusInternalServerError},
		{ErrCodeInternalCodec, http.StatusInternalServerError},
		{ErrorCode("something_unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			if got := tt.code.HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}
