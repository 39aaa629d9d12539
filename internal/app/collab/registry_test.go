package collab

import (
	"testing"
	"time"

	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/stretchr/testify/assert"
)

func TestRegistry_ForReturnsSameCoordinator(t *testing.T) {
	r := NewRegistry(DefaultOptions())
	u := models.User{ID: "f1", Name: "Riley", Role: models.RoleStartup}

	a := r.For(u)
	b := r.For(u)
	assert.Same(t, a, b)
	assert.NotSame(t, a, r.For(models.User{ID: "f2"}))
	assert.Equal(t, 2, r.Len())
}

func TestRegistry_Reap(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	opts := DefaultOptions()
	opts.Now = func() time.Time { return now }
	r := NewRegistry(opts)

	r.For(models.User{ID: "old"})
	now = now.Add(20 * time.Minute)
	r.For(models.User{ID: "fresh"})
	now = now.Add(5 * time.Minute)

	assert.Equal(t, 1, r.Reap(15*time.Minute))
	assert.Equal(t, 1, r.Len())
	assert.Equal(t, 0, r.Reap(15*time.Minute))
}

func TestRegistry_Drop(t *testing.T) {
	r := NewRegistry(DefaultOptions())
	r.For(models.User{ID: "f1"})

	assert.True(t, r.Drop("f1"))
	assert.False(t, r.Drop("f1"))
	assert.Equal(t, 0, r.Len())
}
