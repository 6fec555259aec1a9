package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		want Role
		ok   bool
	}{
		{"admin", RoleAdmin, true},
		{"student", RoleStudent, true},
		{"", "", false},
		{"teacher", "", false},
		{"Admin", "", false},
		{"admin ", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseRole(tt.raw)
		assert.Equal(t, tt.ok, ok, "raw=%q", tt.raw)
		assert.Equal(t, tt.want, got, "raw=%q", tt.raw)
	}
}

func TestRequestSession_HasRole(t *testing.T) {
	rs := RequestSession{Authenticated: true, Role: RoleStudent}
	assert.True(t, rs.HasRole(RoleStudent))
	assert.False(t, rs.HasRole(RoleAdmin))

	// An unauthenticated request never has a role, even if the marker is set.
	rs = RequestSession{Authenticated: false, Role: RoleAdmin}
	assert.False(t, rs.HasRole(RoleAdmin))
}
