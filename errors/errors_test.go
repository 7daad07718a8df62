package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestConstructors(t *testing.T) {
	tests := []struct {
		name      string
		err       *AppError
		code      ErrorCode
		status    int
		retryable bool
	}{
		{"validation", Validation("name is required"), ErrCodeInvalidInput, http.StatusBadRequest, false},
		{"not found", NotFound("/missing"), ErrCodeNotFound, http.StatusNotFound, false},
		{"unavailable", Unavailable("draining"), ErrCodeUnavailable, http.StatusServiceUnavailable, true},
		{"internal", Internal(stderrors.New("boom")), ErrCodeInternal, http.StatusInternalServerError, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.HTTPStatus != tt.status {
				t.Errorf("HTTPStatus = %d, want %d", tt.err.HTTPStatus, tt.status)
			}
			if tt.err.Retryable != tt.retryable {
				t.Errorf("Retryable = %v, want %v", tt.err.Retryable, tt.retryable)
			}
		})
	}
}

func TestNotFoundDetail(t *testing.T) {
	err := NotFound("/missing")
	if err.Details["resource"] != "/missing" {
		t.Errorf("Details = %v", err.Details)
	}
	if err.Message != "/missing not found" {
		t.Errorf("Message = %q", err.Message)
	}
}

func TestErrorString(t *testing.T) {
	if got := Validation("bad").Error(); got != "INVALID_INPUT: bad" {
		t.Errorf("Error() = %q", got)
	}
	cause := stderrors.New("disk full")
	got := Internal(cause).Error()
	want := "INTERNAL_ERROR: An unexpected error occurred. (cause: disk full)"
	if got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("root")
	err := Internal(cause)
	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the cause")
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("handler: %w", Validation("bad"))
	appErr, ok := AsAppError(wrapped)
	if !ok || appErr.Code != ErrCodeInvalidInput {
		t.Fatalf("AsAppError = %v, %v", appErr, ok)
	}
	if _, ok := AsAppError(stderrors.New("plain")); ok {
		t.Error("plain error should not convert")
	}
}

func TestToResponseJSON(t *testing.T) {
	err := Validation("name is required").WithDetail("field", "name")
	b, jerr := json.Marshal(err.ToResponse())
	if jerr != nil {
		t.Fatal(jerr)
	}
	var got map[string]map[string]any
	if jerr := json.Unmarshal(b, &got); jerr != nil {
		t.Fatal(jerr)
	}
	body := got["error"]
	if body["code"] != "INVALID_INPUT" || body["message"] != "name is required" {
		t.Errorf("body = %v", body)
	}
	if body["retryable"] != false {
		t.Errorf("retryable = %v", body["retryable"])
	}
	details, _ := body["details"].(map[string]any)
	if details["field"] != "name" {
		t.Errorf("details = %v", details)
	}
}

func TestInternalOmitsDetails(t *testing.T) {
	b, _ := json.Marshal(Internal(nil).ToResponse())
	var got map[string]map[string]any
	_ = json.Unmarshal(b, &got)
	if _, ok := got["error"]["details"]; ok {
		t.Errorf("details should be omitted: %s", b)
	}
}
