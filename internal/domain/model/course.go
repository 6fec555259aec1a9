//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import "time"

// Course represents an offered course (Gurmukhi, kirtan, tabla, ...).
type Course struct {
	ID          string    `json:"id"          db:"id"`
	Name        string    `json:"name"        db:"name"`
	Description string    `json:"description" db:"description"`
	Teacher     string    `json:"teacher"     db:"teacher"`
	Weekday     int       `json:"weekday"     db:"weekday"` // 0=Sunday .. 6=Saturday
	CreatedAt   time.Time `json:"created_at"  db:"created_at"`
}

// Enrollment links a student to a course.
type Enrollment struct {
	ID         string    `json:"id"          db:"id"`
	StudentID  string    `json:"student_id"  db:"student_id"`
	CourseID   string    `json:"course_id"   db:"course_id"`
	EnrolledAt time.Time `json:"enrolled_at" db:"enrolled_at"`
}
