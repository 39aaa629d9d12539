// internal/app/features/collab/routes.go
package collab

import (
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/go-chi/chi/v5"
)

// Routes wires the collaboration API under whatever mount point the
// top-level router chooses (e.g., "/api/collab").
func Routes(h *Handler, sm *auth.SessionManager) chi.Router {
	r := chi.NewRouter()
	r.Use(sm.RequireSignedIn)

	r.Get("/", h.ServeSnapshot)
	r.Get("/stats", h.ServeStats)
	r.Get("/hires", h.ServeHires)

	r.Route("/conversations", func(cr chi.Router) {
		cr.Get("/", h.ServeConversations)
		cr.Post("/", h.Connect)
		cr.Get("/{id}", h.ServeConversation)
		cr.Post("/{id}/select", h.Select)
		cr.Post("/{id}/messages", h.Send)
		cr.Post("/{id}/incoming", h.Receive)
	})

	r.Route("/interviews", func(ir chi.Router) {
		ir.Get("/", h.ServeInterviews)
		ir.Post("/", h.Schedule)
		ir.Post("/{id}/hire", h.Hire)
		ir.Post("/{id}/reject", h.Reject)
	})

	r.Post("/collaborations", h.Collaborate)
	return r
}
