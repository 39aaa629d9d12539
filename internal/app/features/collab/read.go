// internal/app/features/collab/read.go
package collab

import (
	"net/http"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// ServeSnapshot handles GET /api/collab.
func (h *Handler) ServeSnapshot(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, c.Snapshot())
}

// ServeConversations handles GET /api/collab/conversations.
func (h *Handler) ServeConversations(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, map[string][]models.Conversation{"conversations": c.Conversations()})
}

// ServeConversation handles GET /api/collab/conversations/{id}.
func (h *Handler) ServeConversation(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	conv, found := c.Conversation(chi.URLParam(r, "id"))
	if !found {
		httpjson.Error(w, http.StatusNotFound, httpjson.CodeNotFound, "conversation not found")
		return
	}
	httpjson.OK(w, conv)
}

// ServeInterviews handles GET /api/collab/interviews.
func (h *Handler) ServeInterviews(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	httpjson.OK(w, map[string][]models.Interview{"interviews": c.PendingInterviews()})
}

type hiresResponse struct {
	Filter string               `json:"filter"`
	Hires  []models.HiredMember `json:"hires"`
}

// ServeHires handles GET /api/collab/hires?role=all|lead|<role>.
func (h *Handler) ServeHires(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	filter, err := collab.ParseRoleFilter(r.URL.Query().Get("role"))
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	httpjson.OK(w, hiresResponse{Filter: filter.String(), Hires: c.HiredMembers(filter)})
}

type statsResponse struct {
	Stats      models.HiringStats `json:"stats"`
	Recomputed models.HiringStats `json:"recomputed"`
	Consistent bool               `json:"consistent"`
}

// ServeStats handles GET /api/collab/stats. Recomputed is the fold of the
// ledger from the baseline; Consistent reports it equals Stats.
func (h *Handler) ServeStats(w http.ResponseWriter, r *http.Request) {
	c, _, ok := h.coordinator(w, r)
	if !ok {
		return
	}
	stats, re := c.StatsReport()
	httpjson.OK(w, statsResponse{
		Stats:      stats,
		Recomputed: re,
		Consistent: re == stats,
	})
}
