package auth

// Package auth contains domain-level types for authentication and sessions.
// It is pure and free of framework/adapter concerns.

import "time"

// Role represents an application's authorization role.
// Keep string form for easy persistence and cookies.
// Valid values are defined as constants below.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStudent Role = "student"
)

// ParseRole maps a raw cookie/claim value to a known Role.
// Anything outside the closed set is rejected; callers must treat
// a false return as unauthorized.
func ParseRole(raw string) (Role, bool) {
	switch Role(raw) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleStudent:
		return RoleStudent, true
	default:
		return "", false
	}
}

// Identity represents the authenticated principal returned by a provider.
// Adapters map provider-specific claims into this shape.
type Identity struct {
	UserID    string // stable user identifier
	Name      string
	Email     string
	Groups    []string
	ExpiresAt time.Time // absolute expiry from the provider
}

// Session is the server-side record we persist for an authenticated user.
// ID is an opaque session identifier; its value lands in the auth_session cookie.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	StudentID string    `json:"student_id,omitempty"` // set when the user maps to a student record
	ExpiresAt time.Time `json:"expires_at"`
}

// IsAdmin returns true if the session role is admin.
func (s Session) IsAdmin() bool { return s.Role == RoleAdmin }

// IsStudent returns true if the session role is student.
func (s Session) IsStudent() bool { return s.Role == RoleStudent }

// RequestSession is the request-scoped authorization state derived once per
// request from the auth cookies plus a single session-store lookup, then
// threaded through context. Guards and handlers consume this value instead of
// re-reading cookies.
type RequestSession struct {
	Authenticated bool
	SessionID     string
	UserID        string
	Role          Role
	Session       *Session // nil when the store lookup failed or no cookie was sent
}

// HasRole reports whether the request carries a valid role marker equal to r.
func (rs RequestSession) HasRole(r Role) bool {
	return rs.Authenticated && rs.Role == r
}
