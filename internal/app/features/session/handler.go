// internal/app/features/session/handler.go
package session

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/app/system/httpjson"
	"github.com/dalemusser/talenthub/internal/app/system/ratelimit"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"go.uber.org/zap"
)

// Handler exchanges identity-provider tokens for session cookies.
type Handler struct {
	Sessions *auth.SessionManager
	Registry *collab.Registry
	Audit    *auditlog.Logger
	Limiter  *ratelimit.Limiter // nil disables sign-in throttling
	Log      *zap.Logger
}

// NewHandler constructs a session Handler.
func NewHandler(sm *auth.SessionManager, reg *collab.Registry, audit *auditlog.Logger, limiter *ratelimit.Limiter, logger *zap.Logger) *Handler {
	return &Handler{Sessions: sm, Registry: reg, Audit: audit, Limiter: limiter, Log: logger}
}

type signInRequest struct {
	Token string `json:"token"`
}

type userResponse struct {
	User      models.User `json:"user"`
	CSRFToken string      `json:"csrf_token,omitempty"`
}

// SignIn handles POST /session. The token comes from the body or, when the
// body is empty, from the Authorization header.
func (h *Handler) SignIn(w http.ResponseWriter, r *http.Request) {
	verifier := h.Sessions.Tokens()
	if verifier == nil {
		httpjson.Error(w, http.StatusServiceUnavailable, httpjson.CodeUnavailable, "token sign-in is not configured")
		return
	}

	ip := ratelimit.ClientIP(r)
	if h.Limiter != nil {
		allowed := h.Limiter.Allow(ip)
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(h.Limiter.Remaining(ip)))
		if !allowed {
			h.Log.Warn("sign-in throttled", zap.String("ip", ip))
			h.Audit.SessionRejected(r.Context(), r, "rate limited")
			httpjson.Error(w, http.StatusTooManyRequests, httpjson.CodeTooManyRequests, "too many sign-in attempts")
			return
		}
	}

	raw, _ := auth.BearerToken(r)
	if raw == "" {
		var req signInRequest
		if err := httpjson.Decode(r, &req); err != nil {
			httpjson.DecodeError(w, err)
			return
		}
		raw = strings.TrimSpace(req.Token)
	}
	if raw == "" {
		httpjson.Error(w, http.StatusBadRequest, httpjson.CodeBadRequest, "token is required")
		return
	}

	u, err := verifier.Verify(raw)
	if err != nil {
		h.Log.Info("sign-in rejected", zap.Error(err))
		h.Audit.SessionRejected(r.Context(), r, err.Error())
		httpjson.Error(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "invalid token")
		return
	}

	if err := h.Sessions.SignIn(w, r, u); err != nil {
		h.Log.Error("save session failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not start session")
		return
	}
	if h.Limiter != nil {
		h.Limiter.Reset(ip)
	}
	h.Audit.SessionStarted(r.Context(), r, u, "token")
	httpjson.OK(w, userResponse{User: u})
}

// Current handles GET /session. Behind CSRF protection it also hands out
// the token cookie-authenticated clients echo in X-CSRF-Token.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	u, ok := auth.CurrentUser(r)
	if !ok {
		httpjson.Error(w, http.StatusUnauthorized, httpjson.CodeUnauthorized, "not signed in")
		return
	}
	token := auth.CSRFToken(r)
	if token != "" {
		w.Header().Set(auth.CSRFHeader, token)
	}
	httpjson.OK(w, userResponse{User: u, CSRFToken: token})
}

type signOutResponse struct {
	SignedOut bool `json:"signed_out"`
	Dropped   bool `json:"dropped"`
}

// SignOut handles DELETE /session. It also discards the user's in-memory
// collaboration state.
func (h *Handler) SignOut(w http.ResponseWriter, r *http.Request) {
	u, signedIn := auth.CurrentUser(r)
	if err := h.Sessions.SignOut(w, r); err != nil {
		h.Log.Error("clear session failed", zap.Error(err))
		httpjson.Error(w, http.StatusInternalServerError, httpjson.CodeInternal, "could not end session")
		return
	}

	resp := signOutResponse{SignedOut: true}
	if signedIn {
		resp.Dropped = h.Registry.Drop(u.ID)
		h.Audit.SessionEnded(r.Context(), r, u)
	}
	httpjson.OK(w, resp)
}
