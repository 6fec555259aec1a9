package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/data/database"
	"github.com/gurmatacademy/portal/internal/data/pgxutil"
	"github.com/gurmatacademy/portal/internal/domain/model"
	apperrors "github.com/gurmatacademy/portal/internal/errors"
)

const (
	sortDirAsc  = "ASC"
	sortDirDesc = "DESC"

	defaultAttendanceLimit = 100
)

// AttendanceRepo provides database operations for attendance records.
type AttendanceRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAttendanceRepo creates a new AttendanceRepo with real time provider.
func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAttendanceRepoWithTimeProvider creates a new AttendanceRepo with a custom time provider.
func NewAttendanceRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AttendanceRepo {
	return &AttendanceRepo{DB: db, timeProvider: tp}
}

// Record inserts an attendance record after validating the status value.
func (r *AttendanceRepo) Record(
	ctx context.Context,
	rec *model.AttendanceRecord,
) (*model.AttendanceRecord, error) {
	if rec == nil {
		return nil, errors.New("attendance record is required")
	}
	if rec.StudentID == "" {
		return nil, errors.New("student_id is required")
	}
	if !rec.Status.Valid() {
		return nil, fmt.Errorf("invalid attendance status: %q", rec.Status)
	}

	var out model.AttendanceRecord
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO attendance_records (student_id, course_id, date, status, note, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING id, student_id, course_id, date, status, note, created_at
		`, rec.StudentID, rec.CourseID, rec.Date, rec.Status, rec.Note, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AttendanceRecord])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to record attendance: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByStudent retrieves attendance records for a student, most recent class
// first. Zero From/To bounds are omitted from the filter.
func (r *AttendanceRepo) ListByStudent(
	ctx context.Context,
	params core.AttendanceListParams,
) ([]*model.AttendanceRecord, error) {
	if params.StudentID == "" {
		return nil, errors.New("student_id is required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultAttendanceLimit
	}

	query, args := database.BuildListQuery(r.buildListOptions(params, limit))

	var rowsOut []model.AttendanceRecord
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AttendanceRecord])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list attendance: %w", err)
	}

	res := make([]*model.AttendanceRecord, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

func (r *AttendanceRepo) buildListOptions(
	params core.AttendanceListParams,
	limit int,
) *database.ListQueryOptions {
	queryOpts := []database.ListQueryOption{
		database.WithColumns(attendanceColumns()...),
		database.WithCondition(database.WhereCond("student_id", database.Equal, params.StudentID)),
		database.WithOrderBy("date", sortDirDesc),
		database.WithLimit(limit),
	}
	if !params.From.IsZero() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("date", database.GreaterThanOrEqual, params.From),
		))
	}
	if !params.To.IsZero() {
		queryOpts = append(queryOpts, database.WithCondition(
			database.WhereCond("date", database.LessThanOrEqual, params.To),
		))
	}
	return database.NewListQueryOptions("attendance_records", queryOpts...)
}

func attendanceColumns() []string {
	return []string{
		"id",
		"student_id",
		"course_id",
		"date",
		"status",
		"note",
		"created_at",
	}
}
