// internal/domain/models/hire.go
package models

// HireSource records which path produced a ledger entry.
type HireSource string

const (
	HireSourceInterview     HireSource = "interview"
	HireSourceCollaboration HireSource = "collaboration"
)

// HiredMember is an append-only ledger entry for a finalized hire or
// collaboration.
type HiredMember struct {
	ID            string     `json:"id"`
	ParticipantID string     `json:"participant_id"`
	Name          string     `json:"name"`
	Avatar        string     `json:"avatar,omitempty"`
	Role          Role       `json:"role"`
	StartDate     string     `json:"start_date"` // YYYY-MM-DD
	Project       string     `json:"project"`
	Organization  string     `json:"organization,omitempty"`
	Source        HireSource `json:"source"`
}

// HiringStats holds the dashboard counters derived from the hiring ledger.
type HiringStats struct {
	ActiveInterns int `json:"active_interns" yaml:"active_interns"`
	HiredStudents int `json:"hired_students" yaml:"hired_students"`
	AgencyLeads   int `json:"agency_leads" yaml:"agency_leads"`
	LeadsTaken    int `json:"leads_taken" yaml:"leads_taken"`
}
