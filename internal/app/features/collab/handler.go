// internal/app/features/collab/handler.go
package collab

import (
	"errors"
	"net/http"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/dalemusser/talenthub/internal/app/system/telemetry"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"go.uber.org/zap"
)

// Action names used for metrics.
const (
	actionConnect     = "connect"
	actionSelect      = "select"
	actionSend        = "send"
	actionReceive     = "receive"
	actionSchedule    = "schedule"
	actionHire        = "hire"
	actionReject      = "reject"
	actionCollaborate = "collaborate"
)

// Handler serves the collaboration API for the signed-in user's
// coordinator.
type Handler struct {
	Registry  *collab.Registry
	Directory *directory.Store
	Audit     *auditlog.Logger   // may be nil
	Metrics   *telemetry.Metrics // may be nil
	Log       *zap.Logger
}

// NewHandler constructs a collab Handler.
func NewHandler(reg *collab.Registry, dir *directory.Store, audit *auditlog.Logger, metrics *telemetry.Metrics, logger *zap.Logger) *Handler {
	if dir == nil {
		dir = directory.Empty()
	}
	return &Handler{
		Registry:  reg,
		Directory: dir,
		Audit:     audit,
		Metrics:   metrics,
		Log:       logger,
	}
}

// actionResponse is returned by every mutating endpoint. Applied is false
// when a guard turned the action into a no-op.
type actionResponse struct {
	Applied      bool                 `json:"applied"`
	Conversation *models.Conversation `json:"conversation,omitempty"`
	Message      *models.Message      `json:"message,omitempty"`
	Interview    *models.Interview    `json:"interview,omitempty"`
	Hire         *models.HiredMember  `json:"hire,omitempty"`
}

// coordinator returns the caller's coordinator, answering 401 itself when
// there is no user.
func (h *Handler) coordinator(w http.ResponseWriter, r *http.Request) (*collab.Coordinator, models.User, bool) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "sign in required")
		return nil, models.User{}, false
	}
	return h.Registry.For(u), u, true
}

// record reports an action to metrics and the debug log.
func (h *Handler) record(r *http.Request, u models.User, action string, applied bool) {
	h.Metrics.RecordAction(r.Context(), action, applied)
	h.Log.Debug("collab action",
		zap.String("user_id", u.ID),
		zap.String("action", action),
		zap.Bool("applied", applied))
}

// participantRequest identifies the other party. Fields other than the id
// override the directory entry when set; they are required when the id is
// not in the directory.
type participantRequest struct {
	ParticipantID string `json:"participant_id"`
	Name          string `json:"name"`
	Avatar        string `json:"avatar"`
	Role          string `json:"role"`
	Organization  string `json:"organization"`
}

var (
	errNoParticipantID = errors.New("participant_id is required")
	errUnknownPart     = errors.New("participant is not in the directory; name and role are required")
)

// resolve builds the participant from the directory and the body.
func (h *Handler) resolve(req participantRequest) (models.Participant, error) {
	id := trim(req.ParticipantID)
	if id == "" {
		return models.Participant{}, errNoParticipantID
	}

	p, err := h.Directory.Get(id)
	if err != nil && !errors.Is(err, directory.ErrNotFound) {
		return models.Participant{}, err
	}
	p.ID = id
	if v := trim(req.Name); v != "" {
		p.Name = v
	}
	if v := trim(req.Avatar); v != "" {
		p.Avatar = v
	}
	if v := trim(req.Organization); v != "" {
		p.Organization = v
	}
	if v := trim(req.Role); v != "" {
		role, err := models.ParseRole(v)
		if err != nil {
			return models.Participant{}, err
		}
		p.Role = role
	}
	if p.Name == "" || p.Role == "" {
		return models.Participant{}, errUnknownPart
	}
	return p, nil
}
