package handler

import (
	"net/http"
	"strconv"

	"github.com/wetee-dao/guildgate/internal/model"
	"github.com/wetee-dao/guildgate/internal/service"
)

// SubmissionHandler serves the submission ledger
type SubmissionHandler struct {
	svc *service.GuildService
}

// NewSubmissionHandler creates a new submission handler
func NewSubmissionHandler(svc *service.GuildService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Get handles GET /v1/submissions/{id}
func (h *SubmissionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		WriteError(w, model.NewBadRequestError("submission ID required"))
		return
	}

	sub, err := h.svc.GetSubmission(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "get submission"))
		return
	}

	WriteData(w, http.StatusOK, sub, nil)
}

// ListByAccount handles GET /v1/accounts/{address}/submissions?limit=N
func (h *SubmissionHandler) ListByAccount(w http.ResponseWriter, r *http.Request) {
	address := r.PathValue("address")

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			WriteError(w, model.NewBadRequestError("limit must be a positive integer"))
			return
		}
		limit = n
	}

	subs, err := h.svc.ListSubmissions(r.Context(), address, limit)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list submissions"))
		return
	}

	WriteCollection(w, http.StatusOK, subs, len(subs), map[string]string{
		"self": "/v1/accounts/" + address + "/submissions",
	})
}
