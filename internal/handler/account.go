package handler

import (
	"context"
	"net/http"

	"github.com/wetee-dao/guildgate/internal/model"
)

// AccountImporter seals and stores a signing secret
type AccountImporter interface {
	Import(ctx context.Context, secret string) (*model.Account, error)
}

// AccountHandler handles keystore imports. It is only routed outside production.
type AccountHandler struct {
	keys AccountImporter
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(keys AccountImporter) *AccountHandler {
	return &AccountHandler{keys: keys}
}

// Import handles POST /v1/accounts
func (h *AccountHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req model.ImportAccountRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	acct, err := h.keys.Import(r.Context(), req.Secret)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "import account"))
		return
	}

	WriteData(w, http.StatusCreated, acct, map[string]string{
		"submissions": "/v1/accounts/" + acct.Address + "/submissions",
	})
}
