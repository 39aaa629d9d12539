// internal/app/bootstrap/dbdeps.go
package bootstrap

import (
	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/app/store/audit"
	"github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/app/system/auditlog"
	"github.com/dalemusser/talenthub/internal/app/system/ratelimit"
	"github.com/dalemusser/talenthub/internal/app/system/telemetry"
	"github.com/dalemusser/talenthub/internal/app/system/workers"
	"go.mongodb.org/mongo-driver/mongo"
)

// DBDeps holds back-end dependencies for the app. The Mongo fields are nil
// when the audit database is disabled.
type DBDeps struct {
	TalentHubMongoClient   *mongo.Client
	TalentHubMongoDatabase *mongo.Database

	// Runtime is allocated by ConnectDB and filled by Startup; the later
	// hooks receive DBDeps by value and share it through the pointer.
	Runtime *Runtime
}

// Runtime holds the in-process services built at startup.
type Runtime struct {
	Registry  *collab.Registry
	Directory *directory.Store
	Audit     *auditlog.Logger
	AuditDB   *audit.Store // nil when the audit database is disabled
	Telemetry *telemetry.Provider
	Metrics   *telemetry.Metrics
	Reaper    *workers.RegistryReaper
	SignIns   *ratelimit.Limiter // nil when signin_rate_limit is 0
}
