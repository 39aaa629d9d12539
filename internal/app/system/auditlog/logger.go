// internal/app/system/auditlog/logger.go
package auditlog

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"github.com/dalemusser/talenthub/internal/app/system/ratelimit"
	"github.com/dalemusser/talenthub/internal/app/system/timeouts"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"go.uber.org/zap"
)

// Routing values for Config fields.
const (
	RouteAll = "all" // MongoDB + zap
	RouteDB  = "db"  // MongoDB only
	RouteLog = "log" // zap only
	RouteOff = "off" // disabled
)

// Config holds audit logging configuration.
type Config struct {
	// Auth controls logging for session events (sign-in, sign-out, rejected tokens).
	Auth string
	// Collab controls logging for collaboration actions (connect, message,
	// schedule, hire, reject, collaborate).
	Collab string
}

// Sink persists audit events. *audit.Store satisfies it.
type Sink interface {
	Log(ctx context.Context, event audit.Event) error
}

// Logger provides convenience methods for logging audit events.
// It logs to both MongoDB (via a Sink) and structured logs (via zap).
type Logger struct {
	sink   Sink
	zapLog *zap.Logger
	config Config
}

// New creates a new audit Logger. sink may be nil when the database is
// disabled; "db" routing then degrades to nothing and "all" to zap only.
func New(sink Sink, zapLog *zap.Logger, config Config) *Logger {
	return &Logger{
		sink:   sink,
		zapLog: zapLog,
		config: config,
	}
}

// ValidRoute reports whether s is one of all, db, log, off.
func ValidRoute(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case RouteAll, RouteDB, RouteLog, RouteOff:
		return true
	}
	return false
}

// getClientIP extracts the client IP from the request.
func getClientIP(r *http.Request) string {
	if r == nil {
		return ""
	}
	return ratelimit.ClientIP(r)
}

func userAgent(r *http.Request) string {
	if r == nil {
		return ""
	}
	return r.UserAgent()
}

// logToZap logs the event to zap with consistent structure.
func (l *Logger) logToZap(event audit.Event) {
	fields := []zap.Field{
		zap.Bool("audit", true),
		zap.String("category", event.Category),
		zap.String("event_type", event.EventType),
		zap.Bool("success", event.Success),
		zap.String("ip", event.IP),
	}
	if event.UserID != "" {
		fields = append(fields, zap.String("user_id", event.UserID))
	}
	if event.ParticipantID != "" {
		fields = append(fields, zap.String("participant_id", event.ParticipantID))
	}
	if event.SubjectID != "" {
		fields = append(fields, zap.String("subject_id", event.SubjectID))
	}
	if event.FailureReason != "" {
		fields = append(fields, zap.String("failure_reason", event.FailureReason))
	}
	for k, v := range event.Details {
		fields = append(fields, zap.String("detail_"+k, v))
	}

	if event.Success {
		l.zapLog.Info("audit event", fields...)
	} else {
		l.zapLog.Warn("audit event", fields...)
	}
}

// Log records an audit event based on configuration.
// If the logger is nil, this is a no-op (allows tests to use nil audit logger).
func (l *Logger) Log(ctx context.Context, event audit.Event) {
	if l == nil {
		return
	}

	var setting string
	switch event.Category {
	case audit.CategoryAuth:
		setting = l.config.Auth
	case audit.CategoryCollab:
		setting = l.config.Collab
	default:
		setting = RouteAll
	}
	setting = strings.ToLower(strings.TrimSpace(setting))

	if setting == RouteOff {
		return
	}
	if setting == RouteAll || setting == RouteLog {
		l.logToZap(event)
	}
	if (setting == RouteAll || setting == RouteDB) && l.sink != nil {
		ctx, cancel := timeouts.WithTimeout(ctx, timeouts.Short(), l.zapLog, "audit write")
		defer cancel()
		if err := l.sink.Log(ctx, event); err != nil {
			l.zapLog.Error("failed to store audit event",
				zap.Error(err),
				zap.String("event_type", event.EventType),
			)
		}
	}
}

// --- Session Events ---

// SessionStarted logs a successful sign-in.
func (l *Logger) SessionStarted(ctx context.Context, r *http.Request, u models.User, method string) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSessionStarted,
		UserID:    u.ID,
		UserRole:  string(u.Role),
		IP:        getClientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
		Details:   map[string]string{"method": method},
	})
}

// SessionRejected logs a sign-in attempt with an unusable token.
func (l *Logger) SessionRejected(ctx context.Context, r *http.Request, reason string) {
	l.Log(ctx, audit.Event{
		Category:      audit.CategoryAuth,
		EventType:     audit.EventSessionRejected,
		IP:            getClientIP(r),
		UserAgent:     userAgent(r),
		Success:       false,
		FailureReason: reason,
	})
}

// SessionEnded logs a sign-out.
func (l *Logger) SessionEnded(ctx context.Context, r *http.Request, u models.User) {
	l.Log(ctx, audit.Event{
		Category:  audit.CategoryAuth,
		EventType: audit.EventSessionEnded,
		UserID:    u.ID,
		UserRole:  string(u.Role),
		IP:        getClientIP(r),
		UserAgent: userAgent(r),
		Success:   true,
	})
}

// --- Collaboration Events ---

// collab builds a collab event. applied=false marks a guard no-op.
func (l *Logger) collab(ctx context.Context, r *http.Request, u models.User, eventType, participantID, subjectID string, applied bool, details map[string]string) {
	ev := audit.Event{
		Category:      audit.CategoryCollab,
		EventType:     eventType,
		UserID:        u.ID,
		UserRole:      string(u.Role),
		ParticipantID: participantID,
		SubjectID:     subjectID,
		IP:            getClientIP(r),
		UserAgent:     userAgent(r),
		Success:       applied,
		Details:       details,
	}
	if !applied {
		ev.FailureReason = "no-op"
	}
	l.Log(ctx, ev)
}

// ConversationConnected logs a connect. A reconnect to an existing
// conversation is applied with created=false.
func (l *Logger) ConversationConnected(ctx context.Context, r *http.Request, u models.User, c models.Conversation, participantID string, applied, created bool) {
	l.collab(ctx, r, u, audit.EventConversationConnected, participantID, c.ID, applied, map[string]string{
		"participant_name": c.ParticipantName,
		"created":          strconv.FormatBool(created),
	})
}

// MessageSent logs an outgoing message.
func (l *Logger) MessageSent(ctx context.Context, r *http.Request, u models.User, conversationID string, applied bool) {
	l.collab(ctx, r, u, audit.EventMessageSent, "", conversationID, applied, nil)
}

// InterviewScheduled logs a scheduling attempt.
func (l *Logger) InterviewScheduled(ctx context.Context, r *http.Request, u models.User, iv models.Interview, created bool) {
	l.collab(ctx, r, u, audit.EventInterviewScheduled, iv.ParticipantID, iv.ID, created, map[string]string{
		"date":  iv.Date,
		"time":  iv.Time,
		"topic": iv.Topic,
	})
}

// InterviewHired logs a hire resolution.
func (l *Logger) InterviewHired(ctx context.Context, r *http.Request, u models.User, interviewID string, m models.HiredMember, applied bool) {
	l.collab(ctx, r, u, audit.EventInterviewHired, m.ParticipantID, interviewID, applied, map[string]string{
		"hire_id": m.ID,
		"role":    string(m.Role),
	})
}

// InterviewRejected logs a reject resolution.
func (l *Logger) InterviewRejected(ctx context.Context, r *http.Request, u models.User, interviewID string, iv models.Interview, applied bool) {
	l.collab(ctx, r, u, audit.EventInterviewRejected, iv.ParticipantID, interviewID, applied, nil)
}

// CollaborationMade logs a direct collaboration.
func (l *Logger) CollaborationMade(ctx context.Context, r *http.Request, u models.User, participantID string, m models.HiredMember, applied bool) {
	l.collab(ctx, r, u, audit.EventCollaborationMade, participantID, m.ID, applied, map[string]string{
		"project": m.Project,
	})
}
