// internal/app/features/activity/routes.go
package activity

import (
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the activity endpoint under e.g. "/api/activity".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeList)
	return r
}
