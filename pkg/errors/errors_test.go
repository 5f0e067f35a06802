package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusUnprocessableEntity)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.StatusCode() != http.StatusUnprocessableEntity {
		t.Errorf("expected status %d, got %d", http.StatusUnprocessableEntity, err.StatusCode())
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without underlying error",
			appErr:   &AppError{Code: CodeNotFound, Message: "session not found"},
			expected: "NOT_FOUND: session not found",
		},
		{
			name:     "with underlying error",
			appErr:   &AppError{Code: CodeInternal, Message: "internal error", Err: errors.New("redis down")},
			expected: "INTERNAL_ERROR: internal error (caused by: redis down)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAppError_ZeroStatusIsInternal(t *testing.T) {
	err := &AppError{Code: "X", Message: "x"}
	if err.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected 500 for unset status, got %d", err.StatusCode())
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("cause")

	tests := []struct {
		name   string
		err    *AppError
		code   string
		status int
	}{
		{"not found", NotFound("Session"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("Session", "abc"), CodeNotFound, http.StatusNotFound},
		{"gone", Gone("Session", "abc"), CodeGone, http.StatusGone},
		{"validation", Validation("bad", map[string]any{"field": "date"}), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("busy"), CodeConflict, http.StatusConflict},
		{"internal", Internal("oops", cause), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("slow"), CodeTimeout, http.StatusGatewayTimeout},
		{"unavailable", Unavailable("Session store"), CodeUnavailable, http.StatusServiceUnavailable},
		{"too many requests", TooManyRequests("slow down"), CodeTooManyRequests, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithID(t *testing.T) {
	err := NotFoundWithID("Service", "lash-lift")

	if err.Message != "Service not found" {
		t.Errorf("unexpected message: %s", err.Message)
	}
	if err.Details["id"] != "lash-lift" {
		t.Errorf("expected id 'lash-lift', got %v", err.Details["id"])
	}
	if err.Details["resource"] != "Service" {
		t.Errorf("expected resource 'Service', got %v", err.Details["resource"])
	}
}

func TestUnavailable(t *testing.T) {
	err := Unavailable("Session store")
	if err.Message != "Session store is temporarily unavailable" {
		t.Errorf("expected message to contain service name, got %s", err.Message)
	}
}

func TestAppError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	appErr := Wrap(originalErr, CodeInternal, "wrapped", http.StatusInternalServerError)

	if !errors.Is(appErr, originalErr) {
		t.Errorf("expected errors.Is to find the original error")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := NotFound("Session")
	regularErr := errors.New("regular error")

	if result := AsAppError(appErr); result != appErr {
		t.Errorf("AsAppError() should return same AppError")
	}

	wrapped := fmt.Errorf("handler: %w", appErr)
	if result := AsAppError(wrapped); result != appErr {
		t.Errorf("AsAppError() should find an AppError in the chain")
	}
	if !IsAppError(wrapped) {
		t.Errorf("IsAppError() should see through wrapping")
	}

	result := AsAppError(regularErr)
	if result.Code != CodeInternal {
		t.Errorf("AsAppError() should wrap regular error as internal error")
	}
	if result.Err != regularErr {
		t.Errorf("AsAppError() should wrap the original error")
	}
	if IsAppError(regularErr) {
		t.Errorf("IsAppError() should return false for regular error")
	}
}
