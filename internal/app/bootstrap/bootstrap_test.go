package bootstrap

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/system/auth"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() AppConfig {
	return AppConfig{
		MongoURI:                 "mongodb://localhost:27017",
		MongoDatabase:            "talent_hub_test",
		AuditLogAuth:             "log",
		AuditLogCollab:           "off",
		SessionKey:               "test-session-key-must-be-32-chars-long",
		SessionName:              "talenthub-test",
		SessionMaxAge:            time.Hour,
		CSRFKey:                  "test-csrf-key-must-be-32-chars-long!",
		JWTSecret:                "secret",
		SignInLimit:              5,
		SignInWindow:             time.Minute,
		AllowedOrigins:           []string{"http://localhost:3000"},
		DirectoryPath:            "../../../config/directory.yaml",
		AllowDuplicateInterviews: true,
		DuplicateGuard:           "name",
		IdleTTL:                  time.Hour,
		ReapInterval:             time.Minute,
		StatsBaseline:            models.HiringStats{ActiveInterns: 12, HiredStudents: 40, AgencyLeads: 5, LeadsTaken: 3},
	}
}

func TestValidateConfig(t *testing.T) {
	core := &config.CoreConfig{Env: "dev"}

	tests := []struct {
		name    string
		mutate  func(*AppConfig)
		wantErr bool
	}{
		{"defaults", func(*AppConfig) {}, false},
		{"bad audit route", func(c *AppConfig) { c.AuditLogCollab = "sometimes" }, true},
		{"bad guard", func(c *AppConfig) { c.DuplicateGuard = "email" }, true},
		{"participant guard", func(c *AppConfig) { c.DuplicateGuard = "participant" }, false},
		{"zero idle ttl", func(c *AppConfig) { c.IdleTTL = 0 }, true},
		{"negative signin limit", func(c *AppConfig) { c.SignInLimit = -1 }, true},
		{"signin limit without window", func(c *AppConfig) { c.SignInWindow = 0 }, true},
		{"signin limit disabled", func(c *AppConfig) { c.SignInLimit = 0; c.SignInWindow = 0 }, false},
		{"negative baseline", func(c *AppConfig) { c.StatsBaseline.LeadsTaken = -1 }, true},
		{"bad mongo uri with db", func(c *AppConfig) { c.AuditDBEnabled = true; c.MongoURI = "postgres://x" }, true},
		{"bad mongo uri without db", func(c *AppConfig) { c.MongoURI = "postgres://x" }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			tt.mutate(&cfg)
			err := ValidateConfig(core, cfg, zap.NewNop())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCollabOptions(t *testing.T) {
	cfg := testConfig()
	cfg.AllowDuplicateInterviews = false
	cfg.DuplicateGuard = "participant"

	opts := collabOptions(cfg)
	assert.False(t, opts.AllowDuplicateInterviews)
	assert.Equal(t, collab.GuardByParticipant, opts.DuplicateGuard)
	assert.Equal(t, cfg.StatsBaseline, opts.Baseline)
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b "))
	assert.Nil(t, splitList(""))
}

func TestLifecycle_WithoutDatabase(t *testing.T) {
	ctx := context.Background()
	core := &config.CoreConfig{Env: "dev"}
	cfg := testConfig()
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, core, cfg, logger)
	require.NoError(t, err)
	assert.Nil(t, deps.TalentHubMongoClient)
	require.NoError(t, EnsureSchema(ctx, core, cfg, deps, logger))
	require.NoError(t, Startup(ctx, core, cfg, deps, logger))
	defer func() { assert.NoError(t, Shutdown(ctx, core, cfg, deps, logger)) }()

	h, err := BuildHandler(core, cfg, deps, logger)
	require.NoError(t, err)

	serve := func(req *http.Request) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, serve(httptest.NewRequest("GET", "/health", nil)).Code)
	assert.Equal(t, http.StatusUnauthorized, serve(httptest.NewRequest("GET", "/api/collab", nil)).Code)
	assert.Equal(t, http.StatusNotFound, serve(httptest.NewRequest("GET", "/nope", nil)).Code)

	verifier, err := auth.NewTokenVerifier(cfg.JWTSecret, "")
	require.NoError(t, err)
	token, err := verifier.Issue(models.User{ID: "u-1", Name: "Ada", Role: models.RoleStartup}, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/api/collab/stats", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := serve(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"consistent":true`)
	assert.Contains(t, rec.Body.String(), `"active_interns":12`)

	req = httptest.NewRequest("GET", "/api/directory?role=lead", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, serve(req).Code)

	req = httptest.NewRequest("GET", "/api/activity", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusServiceUnavailable, serve(req).Code)

	assert.Equal(t, 1, deps.Runtime.Registry.Len())
}

func TestBuildHandler_RequiresStartup(t *testing.T) {
	_, err := BuildHandler(&config.CoreConfig{}, testConfig(), DBDeps{Runtime: &Runtime{}}, zap.NewNop())
	assert.Error(t, err)
}

func startHandler(t *testing.T, cfg AppConfig) (http.Handler, DBDeps) {
	t.Helper()
	ctx := context.Background()
	core := &config.CoreConfig{Env: "dev"}
	logger := zap.NewNop()

	deps, err := ConnectDB(ctx, core, cfg, logger)
	require.NoError(t, err)
	require.NoError(t, Startup(ctx, core, cfg, deps, logger))
	t.Cleanup(func() { assert.NoError(t, Shutdown(ctx, core, cfg, deps, logger)) })

	h, err := BuildHandler(core, cfg, deps, logger)
	require.NoError(t, err)
	return h, deps
}

func TestCookieWrites_RequireCSRFToken(t *testing.T) {
	cfg := testConfig()
	h, deps := startHandler(t, cfg)
	serve := func(req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	user := models.User{ID: "u-cookie", Name: "Grace", Role: models.RoleStartup}
	verifier, err := auth.NewTokenVerifier(cfg.JWTSecret, "")
	require.NoError(t, err)
	token, err := verifier.Issue(user, time.Hour)
	require.NoError(t, err)

	signIn := httptest.NewRequest("POST", "/session", strings.NewReader(`{"token":"`+token+`"}`))
	signIn.Header.Set("Content-Type", "application/json")
	rec := serve(signIn, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)

	body := `{"participant_id":"evil","name":"Eve","role":"Agency","x":"="}`
	crossSite := func(contentType, origin string) *http.Request {
		req := httptest.NewRequest("POST", "/api/collab/collaborations", strings.NewReader(body))
		req.Header.Set("Content-Type", contentType)
		if origin != "" {
			req.Header.Set("Origin", origin)
		}
		return req
	}

	// A cross-site text/plain form post carrying the session cookie.
	rec = serve(crossSite("text/plain", "https://attacker.example"), cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), `"forbidden"`)

	// Same request without an Origin header still lacks the token.
	rec = serve(crossSite("application/json", ""), cookies)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	hires := deps.Runtime.Registry.For(user).HiredMembers(collab.AllRoles())
	assert.Empty(t, hires)

	// The signed-in client fetches its token from GET /session.
	rec = serve(httptest.NewRequest("GET", "/session", nil), cookies)
	require.Equal(t, http.StatusOK, rec.Code)
	csrfToken := rec.Header().Get(auth.CSRFHeader)
	require.NotEmpty(t, csrfToken)
	assert.Contains(t, rec.Body.String(), `"csrf_token"`)
	withCSRF := append(append([]*http.Cookie{}, cookies...), rec.Result().Cookies()...)

	// Token present but the body is not declared as JSON.
	req := crossSite("text/plain", "")
	req.Header.Set(auth.CSRFHeader, csrfToken)
	rec = serve(req, withCSRF)
	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	assert.Empty(t, deps.Runtime.Registry.For(user).HiredMembers(collab.AllRoles()))

	req = crossSite("application/json", "")
	req.Header.Set(auth.CSRFHeader, csrfToken)
	rec = serve(req, withCSRF)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"applied":true`)
	assert.Len(t, deps.Runtime.Registry.For(user).HiredMembers(collab.AllRoles()), 1)
}

func TestBearerWrites_SkipCSRF(t *testing.T) {
	cfg := testConfig()
	h, deps := startHandler(t, cfg)

	user := models.User{ID: "u-bearer", Name: "Linus", Role: models.RoleStartup}
	verifier, err := auth.NewTokenVerifier(cfg.JWTSecret, "")
	require.NoError(t, err)
	token, err := verifier.Issue(user, time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/collab/collaborations",
		strings.NewReader(`{"participant_id":"p-002","name":"Blue Fox Agency","role":"Agency"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, deps.Runtime.Registry.For(user).HiredMembers(collab.AllRoles()), 1)
}
