// internal/app/features/session/routes.go
package session

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts the session endpoints under e.g. "/session". protect, when
// non-nil, guards the cookie-authenticated endpoints; sign-in stays outside
// it because the caller has no session or token yet.
func Routes(h *Handler, protect func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.SignIn)
	r.Group(func(pr chi.Router) {
		if protect != nil {
			pr.Use(protect)
		}
		pr.Get("/", h.Current)
		pr.Delete("/", h.SignOut)
	})
	return r
}
