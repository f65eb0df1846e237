package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/chain"
	"github.com/wetee-dao/guildgate/internal/database"
	"github.com/wetee-dao/guildgate/internal/governance"
	"github.com/wetee-dao/guildgate/internal/model"
	"github.com/wetee-dao/guildgate/internal/service"
)

// MapServiceError converts a service error to a ProblemDetails response.
// Chain, account and governance sentinels pass through the service wrapped,
// so they are matched here directly.
func MapServiceError(err error) *model.ProblemDetails {
	if err == nil {
		return nil
	}

	switch {
	// ===== Not Found Errors → 404 =====
	case errors.Is(err, service.ErrGuildNotFound):
		return model.NewNotFoundError("guild")
	case errors.Is(err, service.ErrSubmissionNotFound):
		return model.NewNotFoundError("submission")

	// ===== Validation Errors → 422 =====
	case errors.Is(err, account.ErrInvalidAddress):
		return model.NewValidationError([]model.FieldError{{Field: "address", Message: err.Error()}})
	case errors.Is(err, account.ErrAccountNotFound):
		return model.NewValidationError([]model.FieldError{{Field: "from", Message: err.Error()}})
	case errors.Is(err, account.ErrInvalidSecret):
		return model.NewValidationError([]model.FieldError{{Field: "secret", Message: err.Error()}})
	case errors.Is(err, governance.ErrInvalidGovRunType),
		errors.Is(err, governance.ErrInvalidMemberScope):
		return model.NewValidationError([]model.FieldError{{Field: "with_gov", Message: err.Error()}})

	// ===== Conflict Errors → 409 =====
	case errors.Is(err, database.ErrDuplicate):
		return model.NewConflictError(err.Error())

	// ===== Extrinsic Outcome → 422 =====
	case errors.Is(err, chain.ErrExtrinsicFailed),
		errors.Is(err, chain.ErrExtrinsicRejected):
		return model.NewExtrinsicFailedError(err.Error())

	// ===== Timeouts → 504 =====
	case errors.Is(err, context.DeadlineExceeded):
		return model.NewChainTimeoutError()

	// ===== Chain Errors → 502 =====
	case errors.Is(err, chain.ErrConnection),
		errors.Is(err, chain.ErrRPC),
		errors.Is(err, chain.ErrMetadata):
		return model.NewChainError(err.Error())

	// ===== Keystore Disabled → 503 =====
	case errors.Is(err, account.ErrKeystoreLocked):
		return &model.ProblemDetails{
			Type:   "https://guildgate.wetee.app/errors/keystore-locked",
			Title:  "Service Unavailable",
			Status: http.StatusServiceUnavailable,
			Detail: err.Error(),
		}

	// ===== Default → 500 =====
	// ErrClientIndex lands here: it is a deployment misconfiguration.
	default:
		return model.NewInternalError("")
	}
}

// MapServiceErrorWithContext converts a service error to a ProblemDetails response
// with additional context about the operation that failed.
func MapServiceErrorWithContext(err error, operation string) *model.ProblemDetails {
	pd := MapServiceError(err)
	if pd != nil && pd.Status == http.StatusInternalServerError {
		pd.Detail = operation + ": an unexpected error occurred"
	}
	return pd
}
