// internal/domain/models/interview.go
package models

// Interview is a pending meeting request with a participant. It exists only
// until a hire or reject decision consumes it.
type Interview struct {
	ID                      string `json:"id"`
	ParticipantID           string `json:"participant_id"`
	ParticipantName         string `json:"participant_name"`
	ParticipantAvatar       string `json:"participant_avatar,omitempty"`
	ParticipantRole         Role   `json:"participant_role"`
	ParticipantOrganization string `json:"participant_organization,omitempty"`
	Date                    string `json:"date"` // YYYY-MM-DD
	Time                    string `json:"time"` // HH:MM
	Topic                   string `json:"topic"`
}

// Outcome is the decision that resolves an interview.
type Outcome int

const (
	OutcomeHired Outcome = iota + 1
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHired:
		return "hired"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}
