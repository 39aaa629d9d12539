// internal/app/collab/registry.go
package collab

import (
	"sync"
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// Registry hands out one Coordinator per signed-in user. State is
// ephemeral: a coordinator that sits idle past the reaper's threshold is
// dropped, the same as a client reload.
type Registry struct {
	mu      sync.Mutex
	opts    Options
	now     func() time.Time
	entries map[string]*registryEntry
}

type registryEntry struct {
	coord    *Coordinator
	lastSeen time.Time
}

// NewRegistry builds an empty registry; every coordinator it creates
// shares opts.
func NewRegistry(opts Options) *Registry {
	opts = opts.withDefaults()
	return &Registry{
		opts:    opts,
		now:     opts.Now,
		entries: make(map[string]*registryEntry),
	}
}

// For returns the coordinator for user, creating it on first use. The
// identity captured at creation is kept for the coordinator's lifetime.
func (r *Registry) For(user models.User) *Coordinator {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.entries[user.ID]; ok {
		e.lastSeen = r.now()
		return e.coord
	}
	e := &registryEntry{coord: New(user, r.opts), lastSeen: r.now()}
	r.entries[user.ID] = e
	return e.coord
}

// Drop discards the coordinator for userID (sign-out).
func (r *Registry) Drop(userID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.entries[userID]; !ok {
		return false
	}
	delete(r.entries, userID)
	return true
}

// Reap drops coordinators not used for longer than idle and returns how
// many were dropped.
func (r *Registry) Reap(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n
}

// Len is the number of live coordinators.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}
