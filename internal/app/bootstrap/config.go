// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for TalentHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_name, etc.
//   - Environment variables: TALENTHUB_MONGO_URI, TALENTHUB_SESSION_NAME, etc.
//   - Command-line flags: --mongo_uri, --session_name, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "talent_hub", Desc: "MongoDB database name"},
	{Name: "audit_db_enabled", Default: false, Desc: "Persist audit events to MongoDB"},
	{Name: "audit_log_auth", Default: "all", Desc: "Session event logging: 'all' (db+log), 'db', 'log', or 'off'"},
	{Name: "audit_log_collab", Default: "log", Desc: "Collaboration event logging: 'all' (db+log), 'db', 'log', or 'off'"},

	{Name: "session_key", Default: "", Desc: "Session signing key (blank generates a random one per run)"},
	{Name: "session_name", Default: "talenthub-session", Desc: "Session cookie name"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},
	{Name: "session_max_age", Default: "24h", Desc: "Session cookie lifetime"},
	{Name: "csrf_key", Default: "", Desc: "CSRF token signing key (blank generates a random one per run)"},
	{Name: "trust_proxy_headers", Default: false, Desc: "Take client IPs from X-Forwarded-For/X-Real-IP (enable only behind a proxy that overwrites them)"},

	{Name: "jwt_secret", Default: "", Desc: "HS256 secret shared with the identity provider (blank disables token sign-in)"},
	{Name: "jwt_issuer", Default: "", Desc: "Expected token issuer (blank skips the check)"},
	{Name: "signin_rate_limit", Default: 10, Desc: "Sign-in attempts per client IP per window (0 disables)"},
	{Name: "signin_rate_window", Default: "1m", Desc: "Sign-in rate limit window"},
	{Name: "allowed_origins", Default: "http://localhost:3000", Desc: "Comma-separated browser origins allowed to call the API"},

	{Name: "directory_path", Default: "config/directory.yaml", Desc: "Participant directory YAML file"},

	{Name: "collab_allow_duplicate_interviews", Default: true, Desc: "Allow several pending interviews with the same participant"},
	{Name: "collab_duplicate_guard", Default: "name", Desc: "Duplicate collaboration guard: 'name' (exact display name; two people sharing a name collide) or 'participant'"},
	{Name: "collab_idle_ttl", Default: "2h", Desc: "Drop a user's collaboration state after this much inactivity"},
	{Name: "collab_reap_interval", Default: "5m", Desc: "How often idle collaboration state is swept"},

	{Name: "stats_baseline_active_interns", Default: 0, Desc: "Dashboard baseline: active interns"},
	{Name: "stats_baseline_hired_students", Default: 0, Desc: "Dashboard baseline: hired students"},
	{Name: "stats_baseline_agency_leads", Default: 0, Desc: "Dashboard baseline: agency leads"},
	{Name: "stats_baseline_leads_taken", Default: 0, Desc: "Dashboard baseline: leads taken"},

	{Name: "otel_endpoint", Default: "", Desc: "OTLP/HTTP metrics collector host:port (blank disables export)"},
	{Name: "otel_insecure", Default: true, Desc: "Send OTLP over plain HTTP"},
	{Name: "otel_interval", Default: "1m", Desc: "Metric export interval"},

	{Name: "timeout_ping", Default: "2s", Desc: "Timeout for database pings"},
	{Name: "timeout_short", Default: "5s", Desc: "Timeout for single database writes"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// WAFFLE's config.LoadWithAppConfig merges .env files, config files,
// environment variables (WAFFLE_* for core, TALENTHUB_* for app) and flags,
// with precedence flags > env > files > defaults.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "TALENTHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:       appValues.String("mongo_uri"),
		MongoDatabase:  appValues.String("mongo_database"),
		AuditDBEnabled: appValues.Bool("audit_db_enabled"),
		AuditLogAuth:   appValues.String("audit_log_auth"),
		AuditLogCollab: appValues.String("audit_log_collab"),

		SessionKey:    appValues.String("session_key"),
		SessionName:   appValues.String("session_name"),
		SessionDomain: appValues.String("session_domain"),
		SessionMaxAge: appValues.Duration("session_max_age", 24*time.Hour),

		CSRFKey:           appValues.String("csrf_key"),
		TrustProxyHeaders: appValues.Bool("trust_proxy_headers"),

		JWTSecret:      appValues.String("jwt_secret"),
		JWTIssuer:      appValues.String("jwt_issuer"),
		SignInLimit:    appValues.Int("signin_rate_limit"),
		SignInWindow:   appValues.Duration("signin_rate_window", time.Minute),
		AllowedOrigins: splitList(appValues.String("allowed_origins")),

		DirectoryPath: appValues.String("directory_path"),

		AllowDuplicateInterviews: appValues.Bool("collab_allow_duplicate_interviews"),
		DuplicateGuard:           appValues.String("collab_duplicate_guard"),
		IdleTTL:                  appValues.Duration("collab_idle_ttl", 2*time.Hour),
		ReapInterval:             appValues.Duration("collab_reap_interval", 5*time.Minute),
		StatsBaseline: models.HiringStats{
			ActiveInterns: appValues.Int("stats_baseline_active_interns"),
			HiredStudents: appValues.Int("stats_baseline_hired_students"),
			AgencyLeads:   appValues.Int("stats_baseline_agency_leads"),
			LeadsTaken:    appValues.Int("stats_baseline_leads_taken"),
		},

		OTelEndpoint: appValues.String("otel_endpoint"),
		OTelInsecure: appValues.Bool("otel_insecure"),
		OTelInterval: appValues.Duration("otel_interval", time.Minute),

		TimeoutPing:  appValues.Duration("timeout_ping", 2*time.Second),
		TimeoutShort: appValues.Duration("timeout_short", 5*time.Second),
	}

	if appCfg.SessionKey == "" {
		appCfg.SessionKey = auth.RandomKey()
		logger.Warn("session_key not set; generated a random key, sessions will not survive a restart")
	}
	if appCfg.CSRFKey == "" {
		appCfg.CSRFKey = auth.RandomKey()
		logger.Warn("csrf_key not set; generated a random key, CSRF tokens will not survive a restart")
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// Return nil to accept the loaded config, or an error to abort startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if appCfg.AuditDBEnabled {
		if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
			logger.Error("invalid MongoDB URI", zap.Error(err))
			return fmt.Errorf("invalid MongoDB URI: %w", err)
		}
		if strings.TrimSpace(appCfg.MongoDatabase) == "" {
			return fmt.Errorf("mongo_database is required when audit_db_enabled is set")
		}
	}

	for key, v := range map[string]string{"audit_log_auth": appCfg.AuditLogAuth, "audit_log_collab": appCfg.AuditLogCollab} {
		if !auditlog.ValidRoute(v) {
			return fmt.Errorf("%s must be one of all, db, log, off; got %q", key, v)
		}
	}

	if _, err := collab.ParseDuplicateGuard(appCfg.DuplicateGuard); err != nil {
		return fmt.Errorf("collab_duplicate_guard: %w", err)
	}
	if appCfg.IdleTTL <= 0 || appCfg.ReapInterval <= 0 {
		return fmt.Errorf("collab_idle_ttl and collab_reap_interval must be positive")
	}

	if appCfg.SignInLimit < 0 {
		return fmt.Errorf("signin_rate_limit must not be negative")
	}
	if appCfg.SignInLimit > 0 && appCfg.SignInWindow <= 0 {
		return fmt.Errorf("signin_rate_window must be positive")
	}

	b := appCfg.StatsBaseline
	if b.ActiveInterns < 0 || b.HiredStudents < 0 || b.AgencyLeads < 0 || b.LeadsTaken < 0 {
		return fmt.Errorf("stats baselines must not be negative")
	}

	if coreCfg != nil && coreCfg.Env == "prod" && appCfg.JWTSecret == "" {
		logger.Warn("jwt_secret not set; POST /session is disabled")
	}
	return nil
}

// collabOptions turns config into coordinator options. Validation has
// already accepted the guard.
func collabOptions(appCfg AppConfig) collab.Options {
	guard, _ := collab.ParseDuplicateGuard(appCfg.DuplicateGuard)
	opts := collab.DefaultOptions()
	opts.AllowDuplicateInterviews = appCfg.AllowDuplicateInterviews
	opts.DuplicateGuard = guard
	opts.Baseline = appCfg.StatsBaseline
	return opts
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}
