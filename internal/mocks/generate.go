// Package mocks provides mock implementations for testing the portal's repository layer.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for our repository interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	defer ctrl.Finish()
//	mockRepo := mocks.NewMockUserRepository(ctrl)
//	mockRepo.EXPECT().GetStudentID(gomock.Any(), "user-1").Return(&studentID, nil)
package mocks

// Generate mock for UserRepository interface from internal/core package.
// This creates MockUserRepository with methods for all UserRepository interface methods:
// Create, GetByID, GetByEmail, GetStudentID
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=user_repository_mock.go github.com/gurmatacademy/portal/internal/core UserRepository

// Generate mock for StudentRepository interface from internal/core package.
// This creates MockStudentRepository with methods for all StudentRepository interface methods:
// GetByID, List
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=student_repository_mock.go github.com/gurmatacademy/portal/internal/core StudentRepository

// Generate mock for AttendanceRepository interface from internal/core package.
// This creates MockAttendanceRepository with methods for all AttendanceRepository interface methods:
// ListByStudent
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=attendance_repository_mock.go github.com/gurmatacademy/portal/internal/core AttendanceRepository

// Generate mock for CourseRepository interface from internal/core package.
// This creates MockCourseRepository with methods for all CourseRepository interface methods:
// List, ListEnrolled
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=course_repository_mock.go github.com/gurmatacademy/portal/internal/core CourseRepository

// Generate mock for AssistantMessageRepository interface from internal/core package.
// This creates MockAssistantMessageRepository with methods for all AssistantMessageRepository interface methods:
// ListByStudent, ListAll, Append
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=assistant_message_repository_mock.go github.com/gurmatacademy/portal/internal/core AssistantMessageRepository

// Generate mock for RaagCache interface from internal/core package.
// This creates MockRaagCache with methods for all RaagCache interface methods:
// Get, Set
//go:generate go run go.uber.org/mock/mockgen -package=mocks -destination=raag_cache_mock.go github.com/gurmatacademy/portal/internal/core RaagCache
