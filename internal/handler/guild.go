package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/wetee-dao/guildgate/internal/account"
	"github.com/wetee-dao/guildgate/internal/model"
	"github.com/wetee-dao/guildgate/internal/service"
)

// GuildHandler handles DAO guild HTTP requests
type GuildHandler struct {
	svc        *service.GuildService
	ss58Prefix uint16
}

// NewGuildHandler creates a new guild handler
func NewGuildHandler(svc *service.GuildService, ss58Prefix uint16) *GuildHandler {
	return &GuildHandler{svc: svc, ss58Prefix: ss58Prefix}
}

// List handles GET /v1/daos/{daoId}/guilds
func (h *GuildHandler) List(w http.ResponseWriter, r *http.Request) {
	daoID, ok := pathUint(w, r, "daoId", 64)
	if !ok {
		return
	}

	guilds, err := h.svc.GuildList(r.Context(), daoID)
	if err != nil {
		h.handleError(w, err, "list guilds")
		return
	}

	views := make([]model.Guild, len(guilds))
	for i := range guilds {
		views[i] = service.GuildView(i, &guilds[i], h.ss58Prefix)
	}
	WriteCollection(w, http.StatusOK, views, len(views), map[string]string{
		"self": fmt.Sprintf("/v1/daos/%d/guilds", daoID),
	})
}

// Get handles GET /v1/daos/{daoId}/guilds/{index}
func (h *GuildHandler) Get(w http.ResponseWriter, r *http.Request) {
	daoID, ok := pathUint(w, r, "daoId", 64)
	if !ok {
		return
	}
	index, ok := pathUint(w, r, "index", 32)
	if !ok {
		return
	}

	guild, err := h.svc.GuildInfo(r.Context(), daoID, uint32(index))
	if err != nil {
		h.handleError(w, err, "get guild")
		return
	}

	view := service.GuildView(int(index), guild, h.ss58Prefix)
	WriteData(w, http.StatusOK, view, map[string]string{
		"self":    fmt.Sprintf("/v1/daos/%d/guilds/%d", daoID, index),
		"members": fmt.Sprintf("/v1/daos/%d/guilds/%d/members", daoID, view.ID),
	})
}

// Members handles GET /v1/daos/{daoId}/guilds/{guildId}/members
func (h *GuildHandler) Members(w http.ResponseWriter, r *http.Request) {
	daoID, ok := pathUint(w, r, "daoId", 64)
	if !ok {
		return
	}
	guildID, ok := pathUint(w, r, "guildId", 64)
	if !ok {
		return
	}

	members, err := h.svc.MemberList(r.Context(), daoID, guildID)
	if err != nil {
		h.handleError(w, err, "list members")
		return
	}

	addresses := make([]string, len(members))
	for i, m := range members {
		addresses[i] = account.FormatAddress(m, h.ss58Prefix)
	}
	WriteData(w, http.StatusOK, model.GuildMembers{
		DaoID:   daoID,
		GuildID: guildID,
		Members: addresses,
	}, nil)
}

// Create handles POST /v1/daos/{daoId}/guilds
func (h *GuildHandler) Create(w http.ResponseWriter, r *http.Request) {
	daoID, ok := pathUint(w, r, "daoId", 64)
	if !ok {
		return
	}

	var req model.CreateGuildRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	sub, err := h.svc.CreateGuild(r.Context(), req.From, daoID, req.Name, req.Desc, req.MetaData, req.WithGov)
	if err != nil {
		h.handleError(w, err, "create guild")
		return
	}

	WriteData(w, http.StatusCreated, sub, map[string]string{
		"self":   "/v1/submissions/" + sub.ID,
		"guilds": fmt.Sprintf("/v1/daos/%d/guilds", daoID),
	})
}

// Join handles POST /v1/daos/{daoId}/guilds/{guildId}/join
func (h *GuildHandler) Join(w http.ResponseWriter, r *http.Request) {
	daoID, ok := pathUint(w, r, "daoId", 64)
	if !ok {
		return
	}
	guildID, ok := pathUint(w, r, "guildId", 64)
	if !ok {
		return
	}

	var req model.GuildJoinRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if errs := req.Validate(); len(errs) > 0 {
		WriteError(w, model.NewValidationError(errs))
		return
	}

	sub, err := h.svc.GuildJoinRequest(r.Context(), req.From, daoID, guildID, req.WithGov)
	if err != nil {
		h.handleError(w, err, "join guild")
		return
	}

	// Accepted: a join request still needs approval on chain.
	WriteData(w, http.StatusAccepted, sub, map[string]string{
		"self":    "/v1/submissions/" + sub.ID,
		"members": fmt.Sprintf("/v1/daos/%d/guilds/%d/members", daoID, guildID),
	})
}

// handleError converts service errors to HTTP responses
func (h *GuildHandler) handleError(w http.ResponseWriter, err error, operation string) {
	pd := MapServiceErrorWithContext(err, operation)
	if pd.Status >= http.StatusInternalServerError {
		slog.Error("guild request failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()))
	}
	WriteError(w, pd)
}
