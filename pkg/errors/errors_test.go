package errors

import (
	"errors"
	"net/http"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(CodeValidation, "validation failed", http.StatusBadRequest)

	if err.Code != CodeValidation {
		t.Errorf("expected code %s, got %s", CodeValidation, err.Code)
	}
	if err.Message != "validation failed" {
		t.Errorf("expected message 'validation failed', got %s", err.Message)
	}
	if err.HTTPStatus != http.StatusBadRequest {
		t.Errorf("expected status %d, got %d", http.StatusBadRequest, err.HTTPStatus)
	}
}

func TestConstructorStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		code     string
		expected int
	}{
		{"not found", NotFound("gone"), CodeNotFound, http.StatusNotFound},
		{"not found with id", NotFoundWithID("User", "abc"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("bad"), CodeValidation, http.StatusBadRequest},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"conflict", Conflict("dup"), CodeConflict, http.StatusConflict},
		{"item unavailable", ItemUnavailable("abc"), CodeItemUnavailable, http.StatusBadRequest},
		{"unknown state", UnknownState("SOMEDAY"), CodeUnknownState, http.StatusInternalServerError},
		{"internal", Internal("boom", nil), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if tt.err.StatusCode() != tt.expected {
				t.Errorf("expected status %d, got %d", tt.expected, tt.err.StatusCode())
			}
		})
	}
}

func TestNotFoundWithIDMessage(t *testing.T) {
	err := NotFoundWithID("Item", "64f0c2a7e13d5a0001a3b9c1")
	expected := "Item with id = 64f0c2a7e13d5a0001a3b9c1 not found"
	if err.Message != expected {
		t.Errorf("expected message %q, got %q", expected, err.Message)
	}
}

func TestUnknownStateMessage(t *testing.T) {
	err := UnknownState("SOMEDAY")
	if err.Message != "Unknown state: SOMEDAY" {
		t.Errorf("unexpected message: %q", err.Message)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal("db down", cause)

	if !errors.Is(err, cause) {
		t.Errorf("expected errors.Is to find the cause")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Validation("bad")
	if got := AsAppError(appErr); got != appErr {
		t.Errorf("expected the same AppError back")
	}

	plain := errors.New("something broke")
	wrapped := AsAppError(plain)
	if wrapped.Code != CodeInternal {
		t.Errorf("expected plain error to map onto %s, got %s", CodeInternal, wrapped.Code)
	}
	if wrapped.StatusCode() != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", wrapped.StatusCode())
	}
}

func TestIsAppError(t *testing.T) {
	if !IsAppError(Conflict("dup")) {
		t.Errorf("expected true for AppError")
	}
	if IsAppError(errors.New("plain")) {
		t.Errorf("expected false for plain error")
	}
}

func TestWithDetails(t *testing.T) {
	err := Validation("bad").WithDetails(map[string]any{"field": "email"})
	if err.Details["field"] != "email" {
		t.Errorf("expected details to carry the field name")
	}
}
