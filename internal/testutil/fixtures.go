package testutil

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// Fixtures builds participants and a deterministic clock for tests.
type Fixtures struct {
	t *testing.T

	mu   sync.Mutex
	seq  int
	now  time.Time
	step time.Duration
}

// NewFixtures returns fixtures whose clock starts at 2025-03-01 09:00 UTC
// and advances one minute per call.
func NewFixtures(t *testing.T) *Fixtures {
	t.Helper()
	return &Fixtures{
		t:    t,
		now:  time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
		step: time.Minute,
	}
}

// Now returns the next clock reading.
func (f *Fixtures) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(f.step)
	return f.now
}

// NewID returns sequential ids "id-001", "id-002", ...
func (f *Fixtures) NewID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	return fmt.Sprintf("id-%03d", f.seq)
}

// Participant returns a directory participant with the given role.
func (f *Fixtures) Participant(id, name string, role models.Role) models.Participant {
	f.t.Helper()
	return models.Participant{
		ID:           id,
		Name:         name,
		Avatar:       "https://avatars.test/" + id + ".png",
		Role:         role,
		Organization: name + " Org",
		Headline:     "Test " + string(role),
	}
}

// Freelancer returns a freelancer participant.
func (f *Fixtures) Freelancer(id, name string) models.Participant {
	f.t.Helper()
	return f.Participant(id, name, models.RoleFreelancer)
}

// Agency returns an agency participant.
func (f *Fixtures) Agency(id, name string) models.Participant {
	f.t.Helper()
	return f.Participant(id, name, models.RoleAgency)
}
