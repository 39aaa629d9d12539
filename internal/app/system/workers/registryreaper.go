// internal/app/system/workers/registryreaper.go
package workers

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Reaper drops idle per-user state. *collab.Registry satisfies it.
type Reaper interface {
	Reap(idle time.Duration) int
	Len() int
}

// RegistryReaper is a background worker that drops coordinators whose
// users have gone quiet.
type RegistryReaper struct {
	registry Reaper
	log      *zap.Logger
	interval time.Duration
	idle     time.Duration
	onSweep  func(reaped, live int)
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewRegistryReaper creates a new reaper.
//
// Parameters:
//   - registry: the coordinator registry
//   - logger: zap logger for logging
//   - interval: how often to sweep (e.g., 1 minute)
//   - idle: how long a coordinator must be unused before it is dropped (e.g., 2 hours)
func NewRegistryReaper(registry Reaper, logger *zap.Logger, interval, idle time.Duration) *RegistryReaper {
	return &RegistryReaper{
		registry: registry,
		log:      logger,
		interval: interval,
		idle:     idle,
		stopCh:   make(chan struct{}),
	}
}

// OnSweep registers fn to be called after every sweep with the number of
// coordinators dropped and the number still live.
func (w *RegistryReaper) OnSweep(fn func(reaped, live int)) {
	w.onSweep = fn
}

// Start begins the background sweep loop.
func (w *RegistryReaper) Start() {
	w.wg.Add(1)
	go w.run()
	w.log.Info("registry reaper started",
		zap.Duration("interval", w.interval),
		zap.Duration("idle", w.idle))
}

// Stop signals the worker to stop and waits for it to finish. Safe to
// call more than once.
func (w *RegistryReaper) Stop() {
	w.stopOnce.Do(func() {
		close(w.stopCh)
		w.wg.Wait()
		w.log.Info("registry reaper stopped")
	})
}

func (w *RegistryReaper) run() {
	defer w.wg.Done()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopCh:
			return
		case <-ticker.C:
			w.Sweep()
		}
	}
}

// Sweep runs one pass immediately.
func (w *RegistryReaper) Sweep() int {
	n := w.registry.Reap(w.idle)
	live := w.registry.Len()
	if n > 0 {
		w.log.Info("dropped idle coordinators", zap.Int("count", n), zap.Int("live", live))
	}
	if w.onSweep != nil {
		w.onSweep(n, live)
	}
	return n
}
