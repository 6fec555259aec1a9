package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/testutil"
)

func TestAttendanceRepo_Record_RoundTrip(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAttendanceRepo(db)

		studentID := createTestStudent(t, db, "Harnoor Singh")
		courseID := createTestCourse(t, db, "Kirtan", 0)

		rec, err := repo.Record(ctx, testutil.NewAttendanceRecord(studentID).
			WithCourseID(courseID).
			WithStatus(model.AttendanceLate).
			WithNote("arrived after ardaas").
			Build())
		require.NoError(t, err)
		require.NotEmpty(t, rec.ID)
		assert.Equal(t, studentID, rec.StudentID)
		require.NotNil(t, rec.CourseID)
		assert.Equal(t, courseID, *rec.CourseID)
		assert.Equal(t, model.AttendanceLate, rec.Status)
		require.NotNil(t, rec.Note)
		assert.Equal(t, "arrived after ardaas", *rec.Note)
		assert.NotZero(t, rec.CreatedAt)
	})
}

func TestAttendanceRepo_Record_ValidationErrors(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAttendanceRepo(db)

		t.Run("nil record", func(t *testing.T) {
			_, err := repo.Record(ctx, nil)
			require.Error(t, err)
		})

		t.Run("missing student id", func(t *testing.T) {
			_, err := repo.Record(ctx, testutil.NewAttendanceRecord("").Build())
			require.Error(t, err)
		})

		t.Run("invalid status", func(t *testing.T) {
			studentID := createTestStudent(t, db, "Arjan Singh")
			_, err := repo.Record(ctx, testutil.NewAttendanceRecord(studentID).
				WithStatus("tardy").
				Build())
			require.Error(t, err)
		})
	})
}

func TestAttendanceRepo_ListByStudent(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAttendanceRepo(db)

		studentID := createTestStudent(t, db, "Simran Kaur")
		otherID := createTestStudent(t, db, "Fateh Singh")

		base := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
		statuses := []model.AttendanceStatus{
			model.AttendancePresent,
			model.AttendanceAbsent,
			model.AttendanceLate,
			model.AttendanceExcused,
		}
		for i, status := range statuses {
			_, err := repo.Record(ctx, testutil.NewAttendanceRecord(studentID).
				WithDate(base.AddDate(0, 0, 7*i)).
				WithStatus(status).
				Build())
			require.NoError(t, err)
		}
		_, err := repo.Record(ctx, testutil.NewAttendanceRecord(otherID).
			WithDate(base).
			Build())
		require.NoError(t, err)

		t.Run("returns only the student's records, most recent class first", func(t *testing.T) {
			recs, err := repo.ListByStudent(ctx, core.AttendanceListParams{StudentID: studentID})
			require.NoError(t, err)
			require.Len(t, recs, 4)
			assert.Equal(t, model.AttendanceExcused, recs[0].Status)
			assert.Equal(t, model.AttendancePresent, recs[3].Status)
			for _, rec := range recs {
				assert.Equal(t, studentID, rec.StudentID)
			}
		})

		t.Run("applies date range bounds", func(t *testing.T) {
			recs, err := repo.ListByStudent(ctx, core.AttendanceListParams{
				StudentID: studentID,
				From:      base.AddDate(0, 0, 7),
				To:        base.AddDate(0, 0, 14),
			})
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, model.AttendanceLate, recs[0].Status)
			assert.Equal(t, model.AttendanceAbsent, recs[1].Status)
		})

		t.Run("honors limit", func(t *testing.T) {
			recs, err := repo.ListByStudent(ctx, core.AttendanceListParams{
				StudentID: studentID,
				Limit:     2,
			})
			require.NoError(t, err)
			require.Len(t, recs, 2)
			assert.Equal(t, model.AttendanceExcused, recs[0].Status)
		})
	})
}

func TestAttendanceRepo_ListByStudent_RequiresStudentID(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		repo := NewAttendanceRepo(db)
		_, err := repo.ListByStudent(context.Background(), core.AttendanceListParams{})
		require.Error(t, err)
	})
}

func TestAttendanceRepo_CourseDeleteClearsReference(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAttendanceRepo(db)

		studentID := createTestStudent(t, db, "Harnoor Singh")
		courseID := createTestCourse(t, db, "Tabla", 6)

		rec, err := repo.Record(ctx, testutil.NewAttendanceRecord(studentID).
			WithCourseID(courseID).
			Build())
		require.NoError(t, err)

		_, err = db.ExecContext(ctx, "DELETE FROM courses WHERE id = $1", courseID)
		require.NoError(t, err)

		recs, err := repo.ListByStudent(ctx, core.AttendanceListParams{StudentID: studentID})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, rec.ID, recs[0].ID)
		assert.Nil(t, recs[0].CourseID)
	})
}
