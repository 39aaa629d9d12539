// internal/app/store/directory/store.go
package directory

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Get for an unknown id.
var ErrNotFound = errors.New("participant not found")

type file struct {
	Participants []models.Participant `yaml:"participants"`
}

type entry struct {
	p      models.Participant
	nameCI string
	haysCI string
}

// Store is a read-only participant directory loaded at startup.
type Store struct {
	order []string
	byID  map[string]entry
}

// Empty returns a directory with no participants.
func Empty() *Store {
	return &Store{byID: map[string]entry{}}
}

// Load reads a directory file. An empty path yields an empty directory.
func Load(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return Empty(), nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("directory: read %s: %w", path, err)
	}
	s, err := Parse(bytes.NewReader(content))
	if err != nil {
		return nil, fmt.Errorf("directory: %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a YAML directory document.
func Parse(r io.Reader) (*Store, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}

	s := Empty()
	for i, p := range f.Participants {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		if p.ID == "" {
			return nil, fmt.Errorf("participant %d: id is required", i)
		}
		if p.Name == "" {
			return nil, fmt.Errorf("participant %q: name is required", p.ID)
		}
		role, err := models.ParseRole(string(p.Role))
		if err != nil {
			return nil, fmt.Errorf("participant %q: %w", p.ID, err)
		}
		p.Role = role
		if _, dup := s.byID[p.ID]; dup {
			return nil, fmt.Errorf("participant %q: duplicate id", p.ID)
		}
		s.order = append(s.order, p.ID)
		s.byID[p.ID] = entry{
			p:      p,
			nameCI: text.Fold(p.Name),
			haysCI: text.Fold(strings.Join(append([]string{p.Name, p.Organization, p.Headline}, p.Skills...), " ")),
		}
	}
	return s, nil
}

// Len is the number of participants.
func (s *Store) Len() int {
	return len(s.order)
}

// Get returns the participant with id.
func (s *Store) Get(id string) (models.Participant, error) {
	e, ok := s.byID[id]
	if !ok {
		return models.Participant{}, ErrNotFound
	}
	return clone(e.p), nil
}

// List returns participants whose role satisfies match (nil matches all)
// and whose name, organization, headline or skills contain q
// case-insensitively. Results are sorted by name.
func (s *Store) List(match func(models.Role) bool, q string) []models.Participant {
	qCI := text.Fold(strings.TrimSpace(q))
	var hits []entry
	for _, id := range s.order {
		e := s.byID[id]
		if match != nil && !match(e.p.Role) {
			continue
		}
		if qCI != "" && !strings.Contains(e.haysCI, qCI) {
			continue
		}
		hits = append(hits, e)
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].nameCI < hits[j].nameCI })

	out := make([]models.Participant, 0, len(hits))
	for _, e := range hits {
		out = append(out, clone(e.p))
	}
	return out
}

func clone(p models.Participant) models.Participant {
	if p.Skills != nil {
		p.Skills = append([]string(nil), p.Skills...)
	}
	return p
}
