// internal/app/features/directory/handler.go
package directory

import (
	"errors"
	"net/http"

	"github.com/dalemusser/talenthub/internal/app/collab"
	dirstore "github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Handler lists the participant directory.
type Handler struct {
	Store *dirstore.Store
	Log   *zap.Logger
}

// NewHandler constructs a directory Handler.
func NewHandler(store *dirstore.Store, logger *zap.Logger) *Handler {
	if store == nil {
		store = dirstore.Empty()
	}
	return &Handler{Store: store, Log: logger}
}

type listResponse struct {
	Filter       string               `json:"filter"`
	Query        string               `json:"q,omitempty"`
	Participants []models.Participant `json:"participants"`
}

// ServeList handles GET /api/directory?role=all|lead|<role>&q=.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	filter, err := collab.ParseRoleFilter(r.URL.Query().Get("role"))
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	q := r.URL.Query().Get("q")
	httpjson.OK(w, listResponse{
		Filter:       filter.String(),
		Query:        q,
		Participants: h.Store.List(filter.Match, q),
	})
}

// ServeParticipant handles GET /api/directory/{id}.
func (h *Handler) ServeParticipant(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.Get(chi.URLParam(r, "id"))
	if errors.Is(err, dirstore.ErrNotFound) {
		httpjson.Error(w, http.StatusNotFound, httpjson.CodeNotFound, "participant not found")
		return
	}
	if err != nil {
		h.Log.Error("directory lookup failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.CodeInternal, "directory lookup failed")
		return
	}
	httpjson.OK(w, p)
}
