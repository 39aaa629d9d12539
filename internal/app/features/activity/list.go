// internal/app/features/activity/list.go
package activity

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/dalemusser/talenthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

const pageSize = 50

// item is one audit event as returned to its owner.
type item struct {
	ID            string            `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Category      string            `json:"category"`
	EventType     string            `json:"event_type"`
	ParticipantID string            `json:"participant_id,omitempty"`
	SubjectID     string            `json:"subject_id,omitempty"`
	Success       bool              `json:"success"`
	FailureReason string            `json:"failure_reason,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

type listResponse struct {
	Events     []item `json:"events"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	TotalPages int    `json:"total_pages"`
}

// ServeList handles GET /api/activity. Filters: category, event_type,
// start_date and end_date (YYYY-MM-DD, inclusive) and page.
func (h *Handler) ServeList(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "sign in required")
		return
	}
	if h.History == nil {
		httpjson.Error(w, http.StatusServiceUnavailable, httpjson.CodeUnavailable, "activity history requires the audit database")
		return
	}

	filter, page, err := parseFilter(r)
	if err != nil {
		httpjson.BadRequest(w, err)
		return
	}
	// Users only ever see their own events.
	filter.UserID = u.ID

	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Short(), h.Log, "activity list")
	defer cancel()

	events, err := h.History.Query(ctx, filter)
	if err != nil {
		h.Log.Error("failed to query audit events", zap.Error(err), zap.String("user_id", u.ID))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not load activity")
		return
	}
	total, err := h.History.CountByFilter(ctx, filter)
	if err != nil {
		h.Log.Error("failed to count audit events", zap.Error(err), zap.String("user_id", u.ID))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not load activity")
		return
	}

	resp := listResponse{
		Events:     make([]item, 0, len(events)),
		Total:      total,
		Page:       page,
		TotalPages: int((total + pageSize - 1) / pageSize),
	}
	if resp.TotalPages == 0 {
		resp.TotalPages = 1
	}
	for _, e := range events {
		resp.Events = append(resp.Events, item{
			ID:            e.ID.Hex(),
			Timestamp:     e.Timestamp,
			Category:      e.Category,
			EventType:     e.EventType,
			ParticipantID: e.ParticipantID,
			SubjectID:     e.SubjectID,
			Success:       e.Success,
			FailureReason: e.FailureReason,
			Details:       e.Details,
		})
	}
	httpjson.OK(w, resp)
}

func parseFilter(r *http.Request) (audit.QueryFilter, int, error) {
	q := r.URL.Query()
	filter := audit.QueryFilter{
		Category:  strings.TrimSpace(q.Get("category")),
		EventType: strings.TrimSpace(q.Get("event_type")),
		Limit:     pageSize,
	}
	switch filter.Category {
	case "", audit.CategoryAuth, audit.CategoryCollab:
	default:
		return filter, 0, fmt.Errorf("unknown category %q", filter.Category)
	}

	page := 1
	if s := strings.TrimSpace(q.Get("page")); s != "" {
		p, err := strconv.Atoi(s)
		if err != nil || p < 1 {
			return filter, 0, fmt.Errorf("page %q must be a positive integer", s)
		}
		page = p
	}
	filter.Offset = int64((page - 1) * pageSize)

	if s := strings.TrimSpace(q.Get("start_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, 0, fmt.Errorf("start_date %q must look like 2006-01-02", s)
		}
		filter.StartTime = &t
	}
	if s := strings.TrimSpace(q.Get("end_date")); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			return filter, 0, fmt.Errorf("end_date %q must look like 2006-01-02", s)
		}
		// End of day
		endOfDay := t.Add(24*time.Hour - time.Nanosecond)
		filter.EndTime = &endOfDay
	}
	return filter, page, nil
}
