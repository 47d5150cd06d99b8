package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructorsCarryCodeAndStatus(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{"validation", NewValidationError("no image payload provided"), "VALIDATION_FAILED", http.StatusBadRequest},
		{"unauthorized", NewUnauthorized("invalid handle or secret"), "UNAUTHORIZED", http.StatusUnauthorized},
		{"forbidden", NewForbidden("invalid token"), "FORBIDDEN", http.StatusForbidden},
		{"conflict", NewConflict("handle already exists"), "CONFLICT", http.StatusBadRequest},
		{"rate limited", NewRateLimited("too many attempts"), "RATE_LIMITED", http.StatusTooManyRequests},
		{"upstream", NewUpstreamUnavailable(errors.New("boom")), "UPSTREAM_UNAVAILABLE", http.StatusInternalServerError},
		{"persistence", NewPersistenceFailure(errors.New("down")), "PERSISTENCE_FAILURE", http.StatusInternalServerError},
		{"internal", NewInternalError(errors.New("oops")), "INTERNAL_ERROR", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			de := ToDomainError(tt.err)
			if de.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", de.Code, tt.wantCode)
			}
			if de.HTTPStatus != tt.wantStatus {
				t.Errorf("status = %d, want %d", de.HTTPStatus, tt.wantStatus)
			}
		})
	}
}

func TestToDomainErrorWrapsGenericErrors(t *testing.T) {
	de := ToDomainError(errors.New("something odd"))
	if de.Code != "INTERNAL_ERROR" || de.HTTPStatus != http.StatusInternalServerError {
		t.Fatalf("unexpected mapping: %+v", de)
	}
}

func TestToDomainErrorPreservesWrappedDomainError(t *testing.T) {
	inner := NewConflict("handle already exists")
	wrapped := fmt.Errorf("register: %w", inner)

	de := ToDomainError(wrapped)
	if de.Code != "CONFLICT" {
		t.Fatalf("code = %q, want CONFLICT", de.Code)
	}
}

func TestUnwrapExposesCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewPersistenceFailure(cause)
	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to reach the cause")
	}
}

func TestNilMapsToNil(t *testing.T) {
	if ToDomainError(nil) != nil {
		t.Fatal("expected nil for nil error")
	}
}
