package model

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestProblemDetails_Error_ReturnsFormattedMessage(t *testing.T) {
	t.Parallel()

	pd := &ProblemDetails{
		Status: http.StatusNotFound,
		Title:  "Not Found",
		Detail: "guild not found",
	}

	errMsg := pd.Error()

	if !strings.Contains(errMsg, "404") {
		t.Errorf("error message should contain status code, got: %s", errMsg)
	}
	if !strings.Contains(errMsg, "guild not found") {
		t.Errorf("error message should contain detail, got: %s", errMsg)
	}
}

func TestProblemDetails_WriteJSON_SetsContentTypeAndStatus(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewChainError("node unreachable").WriteJSON(rr)

	if ct := rr.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("expected Content-Type 'application/problem+json', got %q", ct)
	}
	if rr.Code != http.StatusBadGateway {
		t.Errorf("expected status %d, got %d", http.StatusBadGateway, rr.Code)
	}
}

func TestProblemDetails_WriteJSON_EncodesBody(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	NewBadRequestError("invalid dao id").WriteJSON(rr)

	var result ProblemDetails
	if err := json.NewDecoder(rr.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode response body: %v", err)
	}
	if result.Title != "Bad Request" {
		t.Errorf("expected title 'Bad Request', got %q", result.Title)
	}
	if result.Detail != "invalid dao id" {
		t.Errorf("expected detail 'invalid dao id', got %q", result.Detail)
	}
	if result.Code != ErrCodeInvalidInput {
		t.Errorf("expected code %d, got %d", ErrCodeInvalidInput, result.Code)
	}
}

func TestNewNotFoundError_FormatsResourceName(t *testing.T) {
	t.Parallel()

	pd := NewNotFoundError("submission")
	if pd.Detail != "submission not found" {
		t.Errorf("expected 'submission not found', got %q", pd.Detail)
	}
	if pd.Status != http.StatusNotFound {
		t.Errorf("expected status 404, got %d", pd.Status)
	}
}

func TestNewValidationError_MultipleFields_SummarizesCount(t *testing.T) {
	t.Parallel()

	pd := NewValidationError([]FieldError{
		{Field: "name", Message: "required"},
		{Field: "from", Message: "required"},
		{Field: "desc", Message: "too long"},
	})

	if pd.Detail != "name: required (and 2 more errors)" {
		t.Errorf("unexpected detail: %q", pd.Detail)
	}
	if len(pd.Errors) != 3 {
		t.Errorf("expected 3 field errors, got %d", len(pd.Errors))
	}
}

func TestNewValidationError_EmptyErrors_ReturnsDefaultMessage(t *testing.T) {
	t.Parallel()

	pd := NewValidationError(nil)
	if pd.Detail != "One or more fields failed validation" {
		t.Errorf("unexpected detail: %q", pd.Detail)
	}
}

func TestNewInternalError_EmptyDetail_UsesDefault(t *testing.T) {
	t.Parallel()

	pd := NewInternalError("")
	if pd.Detail != "An unexpected error occurred" {
		t.Errorf("unexpected detail: %q", pd.Detail)
	}
}

func TestChainErrors_StatusCodes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		pd     *ProblemDetails
		status int
		code   ErrorCode
	}{
		{"chain", NewChainError("x"), http.StatusBadGateway, ErrCodeChain},
		{"extrinsic failed", NewExtrinsicFailedError("x"), http.StatusUnprocessableEntity, ErrCodeExtrinsicFailed},
		{"timeout", NewChainTimeoutError(), http.StatusGatewayTimeout, ErrCodeChainTimeout},
		{"rate limited", NewRateLimitError(3), http.StatusTooManyRequests, ErrCodeRateLimited},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.pd.Status != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, tt.pd.Status)
			}
			if tt.pd.Code != tt.code {
				t.Errorf("expected code %d, got %d", tt.code, tt.pd.Code)
			}
		})
	}
}
