// internal/domain/models/role.go
package models

import (
	"fmt"
	"strings"
)

// Role identifies what kind of party a user or participant is.
type Role string

const (
	RoleStartup     Role = "Startup"
	RoleAgency      Role = "Agency"
	RoleInstitution Role = "Institution"
	RoleFreelancer  Role = "Freelancer"
)

// Roles lists every known role in display order.
func Roles() []Role {
	return []Role{RoleStartup, RoleAgency, RoleInstitution, RoleFreelancer}
}

// ParseRole matches s case-insensitively against the known roles.
func ParseRole(s string) (Role, error) {
	want := strings.TrimSpace(s)
	for _, r := range Roles() {
		if strings.EqualFold(want, string(r)) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}
