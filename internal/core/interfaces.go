package core

import (
	"context"
	"time"

	"github.com/gurmatacademy/portal/internal/domain/model"
)

// This file contains repository interface definitions (ports in hexagonal architecture).
// These interfaces define the contracts between the service layer and data layer.
// Service implementations should depend on these interfaces, not concrete implementations.

// UserRepository defines the interface for account data operations.
type UserRepository interface {
	Create(ctx context.Context, req *model.CreateUserRequest, passwordHash []byte) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	// GetStudentID returns the student_id attribute for the given user id.
	// A user without a student mapping yields (nil, nil).
	GetStudentID(ctx context.Context, userID string) (*string, error)
}

// StudentRepository defines the interface for student roster data.
type StudentRepository interface {
	GetByID(ctx context.Context, id string) (*model.Student, error)
	List(ctx context.Context, limit, offset int) ([]*model.Student, error)
}

// AttendanceListParams groups the filters applied when listing attendance records.
type AttendanceListParams struct {
	StudentID string
	From      time.Time
	To        time.Time
	Limit     int
}

// AttendanceRepository defines the interface for attendance data.
// Listings are ordered by date descending (most recent class first).
type AttendanceRepository interface {
	ListByStudent(ctx context.Context, params AttendanceListParams) ([]*model.AttendanceRecord, error)
}

// CourseRepository defines the interface for course catalog data.
type CourseRepository interface {
	List(ctx context.Context) ([]*model.Course, error)
	ListEnrolled(ctx context.Context, studentID string) ([]*model.Course, error)
}

// AssistantMessageRepository defines the interface for assistant conversation history.
// Both listings are ordered by insertion time, oldest first.
type AssistantMessageRepository interface {
	ListByStudent(ctx context.Context, studentID string) ([]*model.AssistantMessage, error)
	ListAll(ctx context.Context) ([]*model.AssistantMessage, error)
	Append(ctx context.Context, msg *model.AssistantMessage) (*model.AssistantMessage, error)
}

// RaagCache caches the scraped raag index between upstream fetches.
type RaagCache interface {
	Get(ctx context.Context) ([]model.RaagEntry, bool, error)
	Set(ctx context.Context, entries []model.RaagEntry, ttl time.Duration) error
}
