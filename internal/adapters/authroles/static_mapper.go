package authroles

import (
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

// StaticRoleMapper maps provider groups to portal roles by simple string
// membership. Admin wins over student when a user carries both groups.
// Users matching neither group get no role and are denied.
type StaticRoleMapper struct {
	AdminGroup   string
	StudentGroup string
}

func (m StaticRoleMapper) Map(groups []string) (domainauth.Role, bool) {
	for _, g := range groups {
		if m.AdminGroup != "" && g == m.AdminGroup {
			return domainauth.RoleAdmin, true
		}
	}
	for _, g := range groups {
		if m.StudentGroup != "" && g == m.StudentGroup {
			return domainauth.RoleStudent, true
		}
	}
	return "", false
}
