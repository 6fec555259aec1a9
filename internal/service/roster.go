package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// RosterService serves student profiles, attendance, and the course catalog.
type RosterService struct {
	students   core.StudentRepository
	attendance core.AttendanceRepository
	courses    core.CourseRepository
}

// RosterServiceOptions groups dependencies for RosterService.
type RosterServiceOptions struct {
	Students   core.StudentRepository
	Attendance core.AttendanceRepository
	Courses    core.CourseRepository
}

// NewRosterService constructs a new RosterService.
func NewRosterService(opts RosterServiceOptions) *RosterService {
	return &RosterService{
		students:   opts.Students,
		attendance: opts.Attendance,
		courses:    opts.Courses,
	}
}

// GetStudent returns a student's roster profile.
func (s *RosterService) GetStudent(ctx context.Context, studentID string) (*model.Student, error) {
	if studentID == "" {
		return nil, errors.New("student ID is required")
	}
	student, err := s.students.GetByID(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get student: %w", err)
	}
	return student, nil
}

// ListStudents returns the roster with pagination. Admin surface only.
func (s *RosterService) ListStudents(ctx context.Context, limit, offset int) ([]*model.Student, error) {
	students, err := s.students.List(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}

// ListAttendance returns attendance records scoped to one student, most
// recent class first.
func (s *RosterService) ListAttendance(ctx context.Context, params core.AttendanceListParams) ([]*model.AttendanceRecord, error) {
	if params.StudentID == "" {
		return nil, errors.New("student ID is required")
	}
	records, err := s.attendance.ListByStudent(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return records, nil
}

// ListCourses returns the full course catalog.
func (s *RosterService) ListCourses(ctx context.Context) ([]*model.Course, error) {
	courses, err := s.courses.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}
	return courses, nil
}

// ListEnrolledCourses returns the courses a student is enrolled in.
func (s *RosterService) ListEnrolledCourses(ctx context.Context, studentID string) ([]*model.Course, error) {
	if studentID == "" {
		return nil, errors.New("student ID is required")
	}
	courses, err := s.courses.ListEnrolled(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list enrolled courses: %w", err)
	}
	return courses, nil
}

// Dashboard aggregates a student's dashboard data.
type Dashboard struct {
	Student    *model.Student            `json:"student"`
	Attendance []*model.AttendanceRecord `json:"attendance"`
	Courses    []*model.Course           `json:"courses"`
}

// GetDashboard fetches profile, recent attendance, and enrolled courses in
// parallel. A failure in any fetch fails the whole dashboard.
func (s *RosterService) GetDashboard(ctx context.Context, studentID string, recentLimit int) (*Dashboard, error) {
	if studentID == "" {
		return nil, errors.New("student ID is required")
	}

	var dash Dashboard
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		student, err := s.students.GetByID(gctx, studentID)
		if err != nil {
			return fmt.Errorf("get student: %w", err)
		}
		dash.Student = student
		return nil
	})
	g.Go(func() error {
		records, err := s.attendance.ListByStudent(gctx, core.AttendanceListParams{
			StudentID: studentID,
			Limit:     recentLimit,
		})
		if err != nil {
			return fmt.Errorf("list attendance: %w", err)
		}
		dash.Attendance = records
		return nil
	})
	g.Go(func() error {
		courses, err := s.courses.ListEnrolled(gctx, studentID)
		if err != nil {
			return fmt.Errorf("list enrolled courses: %w", err)
		}
		dash.Courses = courses
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dash, nil
}
