// internal/app/collab/options.go
package collab

import (
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/google/uuid"
)

// DuplicateGuard selects how the collaboration shortcut detects a
// participant that is already in the hiring ledger.
type DuplicateGuard int

const (
	// GuardByName matches on display name equality. Two different people
	// sharing a name collide; kept as the default to match existing behavior.
	GuardByName DuplicateGuard = iota
	// GuardByParticipant matches on participant id.
	GuardByParticipant
)

// ParseDuplicateGuard maps the config values "name" and "participant".
func ParseDuplicateGuard(s string) (DuplicateGuard, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "name":
		return GuardByName, nil
	case "participant", "id":
		return GuardByParticipant, nil
	default:
		return GuardByName, fmt.Errorf("unknown duplicate guard %q (want name or participant)", s)
	}
}

func (g DuplicateGuard) String() string {
	if g == GuardByParticipant {
		return "participant"
	}
	return "name"
}

// Options configures a Coordinator.
type Options struct {
	// AllowDuplicateInterviews permits several pending interviews for the
	// same participant. When false, scheduling again returns the pending one.
	AllowDuplicateInterviews bool

	DuplicateGuard DuplicateGuard

	// Baseline is the starting point for the dashboard counters.
	Baseline models.HiringStats

	// Now and NewID are injectable for tests.
	Now   func() time.Time
	NewID func() string
}

// DefaultOptions returns the permissive defaults.
func DefaultOptions() Options {
	return Options{
		AllowDuplicateInterviews: true,
		DuplicateGuard:           GuardByName,
	}
}

func (o Options) withDefaults() Options {
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = func() string { return uuid.New().String() }
	}
	return o
}
