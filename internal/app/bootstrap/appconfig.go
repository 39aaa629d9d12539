// internal/app/bootstrap/appconfig.go
package bootstrap

import (
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables (TALENTHUB_*), configuration
// files, or command-line flags (loaded in LoadConfig). Framework-level
// settings such as ports, TLS and log level live in WAFFLE's CoreConfig.
type AppConfig struct {
	// MongoDB backs the audit trail only; collaboration state is in memory.
	MongoURI       string
	MongoDatabase  string
	AuditDBEnabled bool // connect to MongoDB and persist audit events

	// Audit routing: "all", "db", "log" or "off"
	AuditLogAuth   string
	AuditLogCollab string

	// Session management configuration
	SessionKey    string        // Secret key for signing session cookies (must be strong in production)
	SessionName   string        // Cookie name for sessions
	SessionDomain string        // Cookie domain (blank means current host)
	SessionMaxAge time.Duration // Cookie lifetime

	// CSRF token signing key for cookie-authenticated writes
	CSRFKey string

	// Honor X-Forwarded-For / X-Real-IP; only behind a proxy that sets them
	TrustProxyHeaders bool

	// Identity provider tokens (HS256)
	JWTSecret string // blank disables token sign-in
	JWTIssuer string // blank skips the iss check

	// Sign-in attempts allowed per client IP per window; 0 disables the limit
	SignInLimit  int
	SignInWindow time.Duration

	// Origins allowed to call the API from a browser
	AllowedOrigins []string

	// Participant directory YAML file; blank means an empty directory
	DirectoryPath string

	// Collaboration coordinator behavior
	AllowDuplicateInterviews bool
	DuplicateGuard           string // "name" or "participant"
	IdleTTL                  time.Duration
	ReapInterval             time.Duration
	StatsBaseline            models.HiringStats

	// OpenTelemetry metrics export
	OTelEndpoint string // host:port of an OTLP/HTTP collector; blank disables export
	OTelInsecure bool
	OTelInterval time.Duration

	// Timeouts
	TimeoutPing  time.Duration
	TimeoutShort time.Duration
}
