package model

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode represents API error codes
type ErrorCode int

const (
	// Resource errors (3xxx)
	ErrCodeNotFound ErrorCode = 3001
	ErrCodeConflict ErrorCode = 3003

	// Validation errors (4xxx)
	ErrCodeValidation   ErrorCode = 4001
	ErrCodeInvalidInput ErrorCode = 4002
	ErrCodeRateLimited  ErrorCode = 4029

	// Internal errors (5xxx)
	ErrCodeInternal        ErrorCode = 5001
	ErrCodeDatabase        ErrorCode = 5002
	ErrCodeChain           ErrorCode = 5003
	ErrCodeExtrinsicFailed ErrorCode = 5004
	ErrCodeChainTimeout    ErrorCode = 5005
)

const problemTypeBase = "https://guildgate.wetee.app/errors/"

// ProblemDetails represents RFC 9457 Problem Details for HTTP APIs
type ProblemDetails struct {
	Type     string       `json:"type"`
	Title    string       `json:"title"`
	Status   int          `json:"status"`
	Detail   string       `json:"detail,omitempty"`
	Instance string       `json:"instance,omitempty"`
	Errors   []FieldError `json:"errors,omitempty"`
	Code     ErrorCode    `json:"code,omitempty"`
}

// FieldError represents a validation error on a specific field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (p *ProblemDetails) Error() string {
	return fmt.Sprintf("[%d] %s: %s", p.Status, p.Title, p.Detail)
}

// WriteJSON writes the problem details as JSON response
func (p *ProblemDetails) WriteJSON(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

func NewNotFoundError(resource string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "not-found",
		Title:  "Not Found",
		Status: http.StatusNotFound,
		Detail: fmt.Sprintf("%s not found", resource),
		Code:   ErrCodeNotFound,
	}
}

func NewValidationError(errors []FieldError) *ProblemDetails {
	detail := "One or more fields failed validation"
	if len(errors) > 0 {
		detail = fmt.Sprintf("%s: %s", errors[0].Field, errors[0].Message)
		if len(errors) > 1 {
			detail = fmt.Sprintf("%s (and %d more errors)", detail, len(errors)-1)
		}
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "validation",
		Title:  "Validation Error",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeValidation,
		Errors: errors,
	}
}

func NewConflictError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "conflict",
		Title:  "Conflict",
		Status: http.StatusConflict,
		Detail: detail,
		Code:   ErrCodeConflict,
	}
}

func NewBadRequestError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "bad-request",
		Title:  "Bad Request",
		Status: http.StatusBadRequest,
		Detail: detail,
		Code:   ErrCodeInvalidInput,
	}
}

func NewInternalError(detail string) *ProblemDetails {
	if detail == "" {
		detail = "An unexpected error occurred"
	}
	return &ProblemDetails{
		Type:   problemTypeBase + "internal",
		Title:  "Internal Server Error",
		Status: http.StatusInternalServerError,
		Detail: detail,
		Code:   ErrCodeInternal,
	}
}

// NewChainError reports a failure talking to the node (connection, RPC, metadata).
func NewChainError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "chain",
		Title:  "Bad Gateway",
		Status: http.StatusBadGateway,
		Detail: detail,
		Code:   ErrCodeChain,
	}
}

// NewExtrinsicFailedError reports an extrinsic that reached the chain but
// was rejected or dispatched with an error.
func NewExtrinsicFailedError(detail string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "extrinsic-failed",
		Title:  "Extrinsic Failed",
		Status: http.StatusUnprocessableEntity,
		Detail: detail,
		Code:   ErrCodeExtrinsicFailed,
	}
}

func NewChainTimeoutError() *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "chain-timeout",
		Title:  "Gateway Timeout",
		Status: http.StatusGatewayTimeout,
		Detail: "Timed out waiting for the extrinsic to be included",
		Code:   ErrCodeChainTimeout,
	}
}

func NewMethodNotAllowedError(allowed string) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "method-not-allowed",
		Title:  "Method Not Allowed",
		Status: http.StatusMethodNotAllowed,
		Detail: fmt.Sprintf("Only %s method is allowed", allowed),
	}
}

func NewRateLimitError(retryAfter int) *ProblemDetails {
	return &ProblemDetails{
		Type:   problemTypeBase + "rate-limited",
		Title:  "Too Many Requests",
		Status: http.StatusTooManyRequests,
		Detail: fmt.Sprintf("Rate limit exceeded. Retry after %d seconds", retryAfter),
		Code:   ErrCodeRateLimited,
	}
}
