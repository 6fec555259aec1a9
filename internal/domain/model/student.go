//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Student represents a student record in the roster.
type Student struct {
	ID         string    `json:"id"                    db:"id"`
	Name       string    `json:"name"                  db:"name"`
	GradeLevel string    `json:"grade_level"           db:"grade_level"`
	GuardianID *string   `json:"guardian_id,omitempty" db:"guardian_id"`
	EnrolledAt time.Time `json:"enrolled_at"           db:"enrolled_at"`
	CreatedAt  time.Time `json:"created_at"            db:"created_at"`
}
