// Package errors answers requests that match no route, in JSON.
package errors

import (
	"net/http"

	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
)

// Handler is the errors feature handler.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// NotFound answers 404 for unknown paths.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusNotFound, httpjson.CodeNotFound, "no route for "+r.URL.Path)
}

// MethodNotAllowed answers 405 when the path exists under another method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	httpjson.Error(w, http.StatusMethodNotAllowed, httpjson.CodeMethodNotAllowed, r.Method+" not allowed on "+r.URL.Path)
}
