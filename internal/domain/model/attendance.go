//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// AttendanceStatus is the recorded outcome for one student on one class day.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceExcused AttendanceStatus = "excused"
)

// Valid reports whether the status is supported.
func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceExcused:
		return true
	default:
		return false
	}
}

// ParseAttendanceStatus normalizes a status string and reports whether it is supported.
func ParseAttendanceStatus(value string) (AttendanceStatus, bool) {
	s := AttendanceStatus(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// AttendanceRecord represents one attendance entry for a student.
type AttendanceRecord struct {
	ID        string           `json:"id"                  db:"id"`
	StudentID string           `json:"student_id"          db:"student_id"`
	CourseID  *string          `json:"course_id,omitempty" db:"course_id"`
	Date      time.Time        `json:"date"                db:"date"`
	Status    AttendanceStatus `json:"status"              db:"status"`
	Note      *string          `json:"note,omitempty"      db:"note"`
	CreatedAt time.Time        `json:"created_at"          db:"created_at"`
}
