//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"errors"
	"strings"
	"time"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

const maxEmailLen = 254

// User represents an application account. Accounts with RoleStudent carry a
// StudentID pointing at the student record they own; admin accounts have none.
type User struct {
	ID           string          `json:"id"                   db:"id"`
	Email        string          `json:"email"                db:"email"`
	Name         string          `json:"name"                 db:"name"`
	Role         domainauth.Role `json:"role"                 db:"role"`
	StudentID    *string         `json:"student_id,omitempty" db:"student_id"`
	PasswordHash []byte          `json:"-"                    db:"password_hash"`
	CreatedAt    time.Time       `json:"created_at"           db:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"           db:"updated_at"`
}

// CreateUserRequest represents parameters to create a User.
type CreateUserRequest struct {
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Role      domainauth.Role `json:"role"`
	StudentID *string         `json:"student_id,omitempty"`
	Password  string          `json:"password"`
}

// Validate checks required fields and the role against the closed set.
func (r *CreateUserRequest) Validate() error {
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Name = strings.TrimSpace(r.Name)

	if r.Email == "" {
		return errors.New("email is required")
	}
	if len(r.Email) > maxEmailLen || !strings.Contains(r.Email, "@") {
		return errors.New("email is invalid")
	}
	if r.Name == "" {
		return errors.New("name is required")
	}
	if _, ok := domainauth.ParseRole(string(r.Role)); !ok {
		return errors.New("role must be admin or student")
	}
	if r.Role == domainauth.RoleStudent && (r.StudentID == nil || strings.TrimSpace(*r.StudentID) == "") {
		return errors.New("student accounts require a student_id")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}
