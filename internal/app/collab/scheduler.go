// internal/app/collab/scheduler.go
package collab

import (
	"strings"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// InterviewScheduler holds pending interviews. An interview is resolved by
// removing it; there is no stored resolved state.
type InterviewScheduler struct {
	pending         []models.Interview
	allowDuplicates bool
	newID           func() string
}

func newInterviewScheduler(allowDuplicates bool, newID func() string) *InterviewScheduler {
	return &InterviewScheduler{allowDuplicates: allowDuplicates, newID: newID}
}

// Schedule appends a pending interview. The bool is false when nothing was
// created: a missing date or time, or a pending interview for the same
// participant while duplicates are disallowed (that interview is returned).
func (s *InterviewScheduler) Schedule(p models.Participant, date, tm, topic string) (models.Interview, bool) {
	date, tm = strings.TrimSpace(date), strings.TrimSpace(tm)
	if p.ID == "" || date == "" || tm == "" {
		return models.Interview{}, false
	}
	if !s.allowDuplicates {
		if existing := s.PendingFor(p.ID); len(existing) > 0 {
			return existing[0], false
		}
	}

	iv := models.Interview{
		ID:                      s.newID(),
		ParticipantID:           p.ID,
		ParticipantName:         p.Name,
		ParticipantAvatar:       p.Avatar,
		ParticipantRole:         p.Role,
		ParticipantOrganization: p.Organization,
		Date:                    date,
		Time:                    tm,
		Topic:                   strings.TrimSpace(topic),
	}
	s.pending = append(s.pending, iv)
	return iv, true
}

// Resolve removes the interview and returns it. A second call for the same
// id finds nothing and reports false.
func (s *InterviewScheduler) Resolve(id string) (models.Interview, bool) {
	for i, iv := range s.pending {
		if iv.ID == id {
			s.pending = append(s.pending[:i:i], s.pending[i+1:]...)
			return iv, true
		}
	}
	return models.Interview{}, false
}

// Pending returns a copy of the pending interviews in scheduling order.
func (s *InterviewScheduler) Pending() []models.Interview {
	return append([]models.Interview{}, s.pending...)
}

// PendingFor returns the pending interviews with one participant.
func (s *InterviewScheduler) PendingFor(participantID string) []models.Interview {
	var out []models.Interview
	for _, iv := range s.pending {
		if iv.ParticipantID == participantID {
			out = append(out, iv)
		}
	}
	return out
}
