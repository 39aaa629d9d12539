// internal/app/collab/stats.go
package collab

import (
	"fmt"
	"strings"

	"github.com/dalemusser/talenthub/internal/domain/models"
)

// RoleBucket groups roles by the dashboard counters they feed.
type RoleBucket int

const (
	BucketNone RoleBucket = iota
	BucketInterns
	BucketLeads
)

// BucketFor maps a role to its counter bucket.
func BucketFor(r models.Role) RoleBucket {
	switch r {
	case models.RoleInstitution:
		return BucketInterns
	case models.RoleAgency, models.RoleFreelancer:
		return BucketLeads
	case models.RoleStartup:
		return BucketNone
	default:
		return BucketNone
	}
}

// applyHire is the one place the counter rules live. Both the incremental
// path and RecomputeStats go through it.
func applyHire(s *models.HiringStats, r models.Role) {
	switch BucketFor(r) {
	case BucketInterns:
		s.ActiveInterns++
		s.HiredStudents++
	case BucketLeads:
		s.AgencyLeads++
		s.LeadsTaken++
	case BucketNone:
	}
}

// RecomputeStats folds the whole ledger over baseline.
func RecomputeStats(baseline models.HiringStats, ledger []models.HiredMember) models.HiringStats {
	out := baseline
	for _, m := range ledger {
		applyHire(&out, m.Role)
	}
	return out
}

type filterKind int

const (
	filterAll filterKind = iota
	filterLeads
	filterRole
)

// RoleFilter selects members by role: everyone, the lead bucket (Agency or
// Freelancer), or one exact role.
type RoleFilter struct {
	kind filterKind
	role models.Role
}

// AllRoles matches every role.
func AllRoles() RoleFilter { return RoleFilter{kind: filterAll} }

// LeadRoles matches Agency and Freelancer.
func LeadRoles() RoleFilter { return RoleFilter{kind: filterLeads} }

// ExactRole matches one role.
func ExactRole(r models.Role) RoleFilter { return RoleFilter{kind: filterRole, role: r} }

// ParseRoleFilter accepts "", "all", "lead", or a role name.
func ParseRoleFilter(s string) (RoleFilter, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all":
		return AllRoles(), nil
	case "lead", "leads":
		return LeadRoles(), nil
	}
	r, err := models.ParseRole(s)
	if err != nil {
		return RoleFilter{}, fmt.Errorf("role filter: %w", err)
	}
	return ExactRole(r), nil
}

// Match reports whether r passes the filter.
func (f RoleFilter) Match(r models.Role) bool {
	switch f.kind {
	case filterAll:
		return true
	case filterLeads:
		return BucketFor(r) == BucketLeads
	case filterRole:
		return r == f.role
	default:
		return false
	}
}

func (f RoleFilter) String() string {
	switch f.kind {
	case filterLeads:
		return "lead"
	case filterRole:
		return string(f.role)
	default:
		return "all"
	}
}
