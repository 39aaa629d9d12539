// internal/app/bootstrap/routes.go
package bootstrap

import (
	"errors"
	"net/http"

	activityfeature "github.com/dalemusser/talenthub/internal/app/features/activity"
	collabfeature "github.com/dalemusser/talenthub/internal/app/features/collab"
	directoryfeature "github.com/dalemusser/talenthub/internal/app/features/directory"
	errorsfeature "github.com/dalemusser/talenthub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/talenthub/internal/app/features/health"
	sessionfeature "github.com/dalemusser/talenthub/internal/app/features/session"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// Startup have completed. TalentHub applies CORS for the SPA frontends,
// resolves the signed-in user from a bearer token or session cookie, and
// mounts the session, directory and collaboration APIs.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	rt := deps.Runtime
	if rt == nil || rt.Registry == nil {
		return nil, errors.New("build handler: startup did not run")
	}

	// Secure cookies are enabled in production mode.
	secure := coreCfg != nil && coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, appCfg.SessionMaxAge, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	if appCfg.JWTSecret != "" {
		verifier, err := auth.NewTokenVerifier(appCfg.JWTSecret, appCfg.JWTIssuer)
		if err != nil {
			return nil, err
		}
		sessionMgr.SetTokenVerifier(verifier)
	}

	csrfProtect, err := sessionMgr.CSRFProtect(auth.CSRFConfig{
		Key:            []byte(appCfg.CSRFKey),
		Secure:         secure,
		TrustedOrigins: appCfg.AllowedOrigins,
		MaxAge:         appCfg.SessionMaxAge,
	})
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	if appCfg.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: appCfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID", auth.CSRFHeader},
		ExposedHeaders:   []string{"X-Request-ID", auth.CSRFHeader, "X-RateLimit-Remaining"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global auth middleware: loads the user into context if signed in.
	r.Use(sessionMgr.LoadSessionUser)

	errorsHandler := errorsfeature.NewHandler()
	r.NotFound(errorsHandler.NotFound)
	r.MethodNotAllowed(errorsHandler.MethodNotAllowed)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.TalentHubMongoClient, rt.Registry.Len, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	sessionHandler := sessionfeature.NewHandler(sessionMgr, rt.Registry, rt.Audit, rt.SignIns, logger)
	r.Mount("/session", sessionfeature.Routes(sessionHandler, csrfProtect))

	directoryHandler := directoryfeature.NewHandler(rt.Directory, logger)
	r.Mount("/api/directory", directoryfeature.Routes(directoryHandler, sessionMgr))

	collabHandler := collabfeature.NewHandler(rt.Registry, rt.Directory, rt.Audit, rt.Metrics, logger)
	r.Group(func(pr chi.Router) {
		pr.Use(csrfProtect)
		pr.Mount("/api/collab", collabfeature.Routes(collabHandler, sessionMgr))
	})

	var history activityfeature.History
	if rt.AuditDB != nil {
		history = rt.AuditDB
	}
	activityHandler := activityfeature.NewHandler(history, logger)
	r.Mount("/api/activity", activityfeature.Routes(activityHandler, sessionMgr))

	return r, nil
}
