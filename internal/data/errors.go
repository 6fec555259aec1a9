package data

import "errors"

// Shared sentinel errors for data-layer repositories.
var (
	// User repository sentinels.
	ErrUserNotFound    = errors.New("user not found")
	ErrUserEmailExists = errors.New("user email already exists")

	// Student repository sentinels.
	ErrStudentNotFound = errors.New("student not found")

	// Course repository sentinels.
	ErrCourseNotFound = errors.New("course not found")

	// Assistant message repository sentinels.
	ErrMessageStudentRequired = errors.New("student_id is required")
	ErrMessageContentRequired = errors.New("message content is required")
)
