// internal/app/collab/ledger.go
package collab

import "github.com/dalemusser/talenthub/internal/domain/models"

// HiringLedger is the append-only record of finalized hires, most recent
// first. Entries are never edited or removed.
type HiringLedger struct {
	members []models.HiredMember
	guard   DuplicateGuard
}

func newHiringLedger(guard DuplicateGuard) *HiringLedger {
	return &HiringLedger{guard: guard}
}

// Record prepends m.
func (l *HiringLedger) Record(m models.HiredMember) {
	l.members = append([]models.HiredMember{m}, l.members...)
}

// Contains applies the duplicate-hire guard to p.
func (l *HiringLedger) Contains(p models.Participant) bool {
	for _, m := range l.members {
		switch l.guard {
		case GuardByParticipant:
			if m.ParticipantID == p.ID {
				return true
			}
		default:
			if m.Name == p.Name {
				return true
			}
		}
	}
	return false
}

// Members returns copies of the entries that pass filter.
func (l *HiringLedger) Members(filter RoleFilter) []models.HiredMember {
	out := make([]models.HiredMember, 0, len(l.members))
	for _, m := range l.members {
		if filter.Match(m.Role) {
			out = append(out, m)
		}
	}
	return out
}
