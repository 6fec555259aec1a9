package authroles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

func TestStaticRoleMapper_Map(t *testing.T) {
	m := StaticRoleMapper{AdminGroup: "staff", StudentGroup: "students"}

	tests := []struct {
		name     string
		groups   []string
		wantRole domainauth.Role
		wantOK   bool
	}{
		{"admin group", []string{"staff"}, domainauth.RoleAdmin, true},
		{"student group", []string{"students"}, domainauth.RoleStudent, true},
		{"admin wins over student", []string{"students", "staff"}, domainauth.RoleAdmin, true},
		{"unknown group denied", []string{"parents"}, "", false},
		{"no groups denied", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			role, ok := m.Map(tt.groups)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantRole, role)
		})
	}
}

func TestStaticRoleMapper_EmptyGroupsNeverMatch(t *testing.T) {
	m := StaticRoleMapper{}
	_, ok := m.Map([]string{"", "staff"})
	assert.False(t, ok)
}
