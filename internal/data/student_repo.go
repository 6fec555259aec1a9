package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gurmatacademy/portal/internal/data/pgxutil"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// StudentRepo provides database operations for the student roster.
type StudentRepo struct {
	DB *sql.DB
}

// NewStudentRepo creates a new StudentRepo.
func NewStudentRepo(db *sql.DB) *StudentRepo {
	return &StudentRepo{DB: db}
}

// GetByID retrieves a student by ID.
func (r *StudentRepo) GetByID(ctx context.Context, id string) (*model.Student, error) {
	var student model.Student
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, studentGetByIDQuery, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		student, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Student])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to get student by ID: %w", err)
	}
	return &student, nil
}

// List retrieves students with pagination, ordered by name.
func (r *StudentRepo) List(ctx context.Context, limit, offset int) ([]*model.Student, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.Student
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, studentListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.Student])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}

	res := make([]*model.Student, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Create inserts a new student record.
func (r *StudentRepo) Create(ctx context.Context, s *model.Student) (*model.Student, error) {
	if s == nil {
		return nil, errors.New("student is required")
	}

	var out model.Student
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO students (name, grade_level, guardian_id, enrolled_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, name, grade_level, guardian_id, enrolled_at, created_at
		`, s.Name, s.GradeLevel, s.GuardianID, s.EnrolledAt)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.Student])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to create student: %w", err)
	}
	return &out, nil
}

const (
	studentGetByIDQuery = `
		SELECT id, name, grade_level, guardian_id, enrolled_at, created_at
		FROM students
		WHERE id = $1`

	studentListQuery = `
		SELECT id, name, grade_level, guardian_id, enrolled_at, created_at
		FROM students
		ORDER BY name ASC
		LIMIT $1 OFFSET $2`
)
