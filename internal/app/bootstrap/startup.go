// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/ratelimit"
	"github.com/dalemusser/talenthub/internal/app/system/telemetry"
	"github.com/dalemusser/talenthub/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup builds the in-process services after the database is ready and
// before the HTTP handler is built: directory, coordinator registry, audit
// logger, telemetry and the idle-state reaper.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	rt := deps.Runtime
	if rt == nil {
		return errors.New("startup: DBDeps.Runtime is nil")
	}

	dir, err := directory.Load(appCfg.DirectoryPath)
	if err != nil {
		return err
	}
	logger.Info("participant directory loaded",
		zap.String("path", appCfg.DirectoryPath),
		zap.Int("participants", dir.Len()))
	rt.Directory = dir

	rt.Registry = collab.NewRegistry(collabOptions(appCfg))

	var sink auditlog.Sink
	if deps.TalentHubMongoDatabase != nil {
		rt.AuditDB = audit.New(deps.TalentHubMongoDatabase)
		sink = rt.AuditDB
	}
	rt.Audit = auditlog.New(sink, logger, auditlog.Config{
		Auth:   appCfg.AuditLogAuth,
		Collab: appCfg.AuditLogCollab,
	})

	env := ""
	if coreCfg != nil {
		env = coreCfg.Env
	}
	rt.Telemetry, err = telemetry.Init(ctx, telemetry.Config{
		ServiceName: "talenthub",
		Environment: env,
		Endpoint:    appCfg.OTelEndpoint,
		Insecure:    appCfg.OTelInsecure,
		Interval:    appCfg.OTelInterval,
	})
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	rt.Metrics, err = telemetry.NewMetrics(rt.Telemetry.Meter)
	if err != nil {
		return fmt.Errorf("telemetry metrics: %w", err)
	}
	if err := rt.Metrics.ObserveCoordinators(rt.Registry.Len); err != nil {
		return fmt.Errorf("telemetry gauge: %w", err)
	}

	metrics := rt.Metrics
	rt.Reaper = workers.NewRegistryReaper(rt.Registry, logger, appCfg.ReapInterval, appCfg.IdleTTL)
	rt.Reaper.OnSweep(func(reaped, _ int) {
		metrics.RecordReaped(context.Background(), reaped)
	})
	rt.Reaper.Start()

	if appCfg.SignInLimit > 0 {
		rt.SignIns = ratelimit.New(appCfg.SignInLimit, appCfg.SignInWindow)
	}

	return nil
}
