// internal/app/features/directory/routes.go
package directory

import (
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes mounts the directory under e.g. "/api/directory".
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)
	r.Get("/", h.ServeList)
	r.Get("/{id}", h.ServeParticipant)
	return r
}
