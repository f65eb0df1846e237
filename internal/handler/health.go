package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/wetee-dao/guildgate/internal/chain"
)

// PoolChecker reports the health of every pooled node
type PoolChecker interface {
	Check(ctx context.Context) []chain.NodeStatus
}

// Pinger checks a backing store
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthResponse is the /healthz body
type HealthResponse struct {
	Status   string             `json:"status"`
	Database string             `json:"database"`
	Nodes    []chain.NodeStatus `json:"nodes"`
}

// HealthHandler serves /healthz
type HealthHandler struct {
	pool PoolChecker
	db   Pinger
}

// NewHealthHandler creates a health handler. db may be nil.
func NewHealthHandler(pool PoolChecker, db Pinger) *HealthHandler {
	return &HealthHandler{pool: pool, db: db}
}

// Check handles GET /healthz. It reports 503 when no node is healthy and
// "busy" when the pool stayed locked for the whole check. A database outage
// degrades the status but keeps chain reads available.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	resp := HealthResponse{
		Status:   "ok",
		Database: "disabled",
		Nodes:    h.pool.Check(ctx),
	}

	if h.db != nil {
		resp.Database = "ok"
		if err := h.db.Ping(ctx); err != nil {
			resp.Database = "unavailable"
			resp.Status = "degraded"
		}
	}

	healthy, busy := 0, 0
	for _, n := range resp.Nodes {
		switch {
		case n.Healthy:
			healthy++
		case n.Busy:
			busy++
		}
	}

	// A pool held by an in-flight submission is serving, just not free to ping.
	status := http.StatusOK
	switch {
	case busy > 0 && busy == len(resp.Nodes):
		if resp.Status == "ok" {
			resp.Status = "busy"
		}
	case healthy == 0:
		resp.Status = "unavailable"
		status = http.StatusServiceUnavailable
	case healthy < len(resp.Nodes):
		resp.Status = "degraded"
	}

	WriteJSON(w, status, resp)
}
