// internal/app/features/activity/handler.go
package activity

import (
	"context"

	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"go.uber.org/zap"
)

// History is the read side of the audit store.
type History interface {
	Query(ctx context.Context, filter audit.QueryFilter) ([]audit.Event, error)
	CountByFilter(ctx context.Context, filter audit.QueryFilter) (int64, error)
}

// Handler serves a signed-in user's own audit trail.
type Handler struct {
	History History // nil when the audit database is disabled
	Log     *zap.Logger
}

// NewHandler constructs an activity Handler. history may be nil.
func NewHandler(history History, logger *zap.Logger) *Handler {
	return &Handler{History: history, Log: logger}
}
