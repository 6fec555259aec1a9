package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gurmatacademy/portal/internal/data/pgxutil"
	"github.com/gurmatacademy/portal/internal/domain/model"
	apperrors "github.com/gurmatacademy/portal/internal/errors"
)

// CourseRepo provides database operations for the course catalog.
type CourseRepo struct {
	DB *sql.DB
}

// NewCourseRepo creates a new CourseRepo.
func NewCourseRepo(db *sql.DB) *CourseRepo {
	return &CourseRepo{DB: db}
}

// GetByID retrieves a course by ID.
func (r *CourseRepo) GetByID(ctx context.Context, id string) (*model.Course, error) {
	var course model.Course
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT id, name, description, teacher, weekday, created_at
			FROM courses
			WHERE id = $1`, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		course, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Course])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCourseNotFound
		}
		return nil, fmt.Errorf("failed to get course by ID: %w", err)
	}
	return &course, nil
}

// List retrieves the full course catalog ordered by weekday, then name.
func (r *CourseRepo) List(ctx context.Context) ([]*model.Course, error) {
	return r.list(ctx, courseListQuery)
}

// ListEnrolled retrieves the courses a student is enrolled in.
func (r *CourseRepo) ListEnrolled(ctx context.Context, studentID string) ([]*model.Course, error) {
	if studentID == "" {
		return nil, errors.New("student_id is required")
	}
	return r.list(ctx, courseListEnrolledQuery, studentID)
}

// Enroll adds a student to a course. Enrolling twice is a no-op.
func (r *CourseRepo) Enroll(ctx context.Context, studentID, courseID string) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, err := conn.Exec(ctx, `
			INSERT INTO enrollments (student_id, course_id)
			VALUES ($1, $2)
			ON CONFLICT (student_id, course_id) DO NOTHING
		`, studentID, courseID)
		return err
	})
	if err != nil {
		return fmt.Errorf("failed to enroll student: %w", apperrors.MapDBError(err))
	}
	return nil
}

// Create inserts a new course.
func (r *CourseRepo) Create(ctx context.Context, c *model.Course) (*model.Course, error) {
	if c == nil {
		return nil, errors.New("course is required")
	}

	var out model.Course
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO courses (name, description, teacher, weekday)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, description, teacher, weekday, created_at
		`, c.Name, c.Description, c.Teacher, c.Weekday)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Course])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create course: %w", err)
	}
	return &out, nil
}

func (r *CourseRepo) list(ctx context.Context, q string, args ...any) ([]*model.Course, error) {
	var rowsOut []model.Course
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Course])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	res := make([]*model.Course, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

const (
	courseListQuery = `
		SELECT id, name, description, teacher, weekday, created_at
		FROM courses
		ORDER BY weekday ASC, name ASC`

	courseListEnrolledQuery = `
		SELECT c.id, c.name, c.description, c.teacher, c.weekday, c.created_at
		FROM courses c
		JOIN enrollments e ON e.course_id = c.id
		WHERE e.student_id = $1
		ORDER BY c.weekday ASC, c.name ASC`
)
