package directory_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dalemusser/talenthub/internal/app/store/directory"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `
participants:
  - id: p-zoe
    name: Zoë Park
    role: freelancer
    organization: Independent
    skills: [go, kubernetes]
  - id: p-acme
    name: Acme Digital
    role: Agency
    headline: Growth marketing
  - id: p-mit
    name: Bayview Institute
    role: institution
`

func parse(t *testing.T, doc string) *directory.Store {
	t.Helper()
	s, err := directory.Parse(strings.NewReader(doc))
	require.NoError(t, err)
	return s
}

func TestParse_NormalizesRoles(t *testing.T) {
	s := parse(t, sample)
	require.Equal(t, 3, s.Len())

	p, err := s.Get("p-zoe")
	require.NoError(t, err)
	assert.Equal(t, models.RoleFreelancer, p.Role)
	assert.Equal(t, []string{"go", "kubernetes"}, p.Skills)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing id", "participants:\n  - name: A\n    role: agency\n"},
		{"missing name", "participants:\n  - id: a\n    role: agency\n"},
		{"bad role", "participants:\n  - id: a\n    name: A\n    role: pirate\n"},
		{"duplicate", "participants:\n  - {id: a, name: A, role: agency}\n  - {id: a, name: B, role: agency}\n"},
		{"unknown field", "participants:\n  - {id: a, name: A, role: agency, salary: 3}\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := directory.Parse(strings.NewReader(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestParse_EmptyDocument(t *testing.T) {
	s := parse(t, "")
	assert.Equal(t, 0, s.Len())
}

func TestGet_NotFound(t *testing.T) {
	_, err := parse(t, sample).Get("nope")
	assert.ErrorIs(t, err, directory.ErrNotFound)
}

func TestGet_ReturnsCopy(t *testing.T) {
	s := parse(t, sample)
	p, _ := s.Get("p-zoe")
	p.Skills[0] = "rust"
	again, _ := s.Get("p-zoe")
	assert.Equal(t, "go", again.Skills[0])
}

func TestList(t *testing.T) {
	s := parse(t, sample)

	names := func(ps []models.Participant) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.Name)
		}
		return out
	}

	assert.Equal(t, []string{"Acme Digital", "Bayview Institute", "Zoë Park"}, names(s.List(nil, "")))

	agencies := func(r models.Role) bool { return r == models.RoleAgency }
	assert.Equal(t, []string{"Acme Digital"}, names(s.List(agencies, "")))

	assert.Equal(t, []string{"Zoë Park"}, names(s.List(nil, "KUBER")))
	assert.Equal(t, []string{"Acme Digital"}, names(s.List(nil, "growth")))
	assert.Empty(t, s.List(agencies, "kubernetes"))
}

func TestLoad(t *testing.T) {
	s, err := directory.Load("")
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())

	path := filepath.Join(t.TempDir(), "directory.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	s, err = directory.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Len())

	_, err = directory.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_SampleConfig(t *testing.T) {
	s, err := directory.Load(filepath.Join("..", "..", "..", "..", "config", "directory.yaml"))
	require.NoError(t, err)
	assert.Greater(t, s.Len(), 0)
}
