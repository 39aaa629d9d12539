package collab_test

import (
	"testing"

	"github.com/dalemusser/talenthub/internal/app/collab"
	"github.com/dalemusser/talenthub/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBucketFor(t *testing.T) {
	tests := []struct {
		role models.Role
		want collab.RoleBucket
	}{
		{models.RoleInstitution, collab.BucketInterns},
		{models.RoleAgency, collab.BucketLeads},
		{models.RoleFreelancer, collab.BucketLeads},
		{models.RoleStartup, collab.BucketNone},
		{models.Role("Alien"), collab.BucketNone},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, collab.BucketFor(tt.role), string(tt.role))
	}
}

func TestRecomputeStats(t *testing.T) {
	ledger := []models.HiredMember{
		{Name: "a", Role: models.RoleInstitution},
		{Name: "b", Role: models.RoleAgency},
		{Name: "c", Role: models.RoleFreelancer},
		{Name: "d", Role: models.RoleStartup},
	}
	got := collab.RecomputeStats(models.HiringStats{ActiveInterns: 1}, ledger)
	assert.Equal(t, models.HiringStats{ActiveInterns: 2, HiredStudents: 1, AgencyLeads: 2, LeadsTaken: 2}, got)

	assert.Equal(t, models.HiringStats{}, collab.RecomputeStats(models.HiringStats{}, nil))
}

func TestParseRoleFilter(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		match   []models.Role
		noMatch []models.Role
	}{
		{"", "all", models.Roles(), nil},
		{"ALL", "all", models.Roles(), nil},
		{"lead", "lead", []models.Role{models.RoleAgency, models.RoleFreelancer}, []models.Role{models.RoleStartup, models.RoleInstitution}},
		{"institution", "Institution", []models.Role{models.RoleInstitution}, []models.Role{models.RoleAgency}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			f, err := collab.ParseRoleFilter(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, f.String())
			for _, r := range tt.match {
				assert.True(t, f.Match(r), "want match %s", r)
			}
			for _, r := range tt.noMatch {
				assert.False(t, f.Match(r), "want no match %s", r)
			}
		})
	}

	_, err := collab.ParseRoleFilter("pirates")
	assert.Error(t, err)
}

func TestParseDuplicateGuard(t *testing.T) {
	g, err := collab.ParseDuplicateGuard("")
	require.NoError(t, err)
	assert.Equal(t, collab.GuardByName, g)

	g, err = collab.ParseDuplicateGuard("Participant")
	require.NoError(t, err)
	assert.Equal(t, collab.GuardByParticipant, g)

	_, err = collab.ParseDuplicateGuard("email")
	assert.Error(t, err)
}
