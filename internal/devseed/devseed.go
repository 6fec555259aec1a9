// Package devseed populates a development database with a small roster of
// students, courses, accounts, attendance, and assistant conversations so the
// portal is usable immediately after `portal-admin db-seed`.
package devseed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gurmatacademy/portal/internal/adapters/passwordauth"
	"github.com/gurmatacademy/portal/internal/data"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/service"
)

// DevPassword is the password every seeded account gets. Development only.
const DevPassword = "WaheguruJi1"

// Services bundles the dependencies needed for development seeding.
type Services struct {
	DB         *sql.DB
	users      *data.UserRepo
	students   *data.StudentRepo
	courses    *data.CourseRepo
	attendance *data.AttendanceRepo
	assistant  *service.AssistantService
}

// NewServices constructs all required repositories for seeding using the provided DB.
func NewServices(db *sql.DB) Services {
	return Services{
		DB:         db,
		users:      data.NewUserRepo(db),
		students:   data.NewStudentRepo(db),
		courses:    data.NewCourseRepo(db),
		attendance: data.NewAttendanceRepo(db),
		assistant:  service.NewAssistantService(data.NewAssistantMessageRepo(db)),
	}
}

// Run executes the full development seeding workflow against the provided DB.
// Re-running is safe: existing rows are matched by name or email and reused.
func Run(ctx context.Context, svcs Services, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	students, err := seedStudents(ctx, svcs, logger)
	if err != nil {
		return fmt.Errorf("seed students: %w", err)
	}

	courses, err := seedCourses(ctx, svcs, logger)
	if err != nil {
		return fmt.Errorf("seed courses: %w", err)
	}

	if err := seedEnrollments(ctx, svcs, students, courses); err != nil {
		return fmt.Errorf("seed enrollments: %w", err)
	}

	if err := seedUsers(ctx, svcs, students, logger); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if err := seedAttendance(ctx, svcs, students, courses, logger); err != nil {
		return fmt.Errorf("seed attendance: %w", err)
	}

	if err := seedAssistantMessages(ctx, svcs, students, logger); err != nil {
		return fmt.Errorf("seed assistant messages: %w", err)
	}

	logger.InfoContext(ctx, "development seeding complete",
		"students", len(students),
		"courses", len(courses),
		"dev_password", DevPassword,
	)
	return nil
}

type studentSeed struct {
	Name       string
	GradeLevel string
	Email      string
}

func studentSeeds() []studentSeed {
	return []studentSeed{
		{Name: "Harnoor Singh", GradeLevel: "5", Email: "harnoor@example.com"},
		{Name: "Simran Kaur", GradeLevel: "7", Email: "simran@example.com"},
		{Name: "Arjan Singh", GradeLevel: "3", Email: "arjan@example.com"},
	}
}

type courseSeed struct {
	Name        string
	Description string
	Teacher     string
	Weekday     int
}

func courseSeeds() []courseSeed {
	return []courseSeed{
		{
			Name:        "Kirtan",
			Description: "Harmonium and vocal shabad kirtan, beginner through intermediate",
			Teacher:     "Bhai Manpreet Singh",
			Weekday:     0,
		},
		{
			Name:        "Punjabi Reading",
			Description: "Gurmukhi script, reading, and vocabulary",
			Teacher:     "Bibi Gurpreet Kaur",
			Weekday:     0,
		},
		{
			Name:        "Sikh History",
			Description: "Lives of the Gurus and Sikh history discussion",
			Teacher:     "Bhai Jasbir Singh",
			Weekday:     6,
		},
		{
			Name:        "Tabla",
			Description: "Tabla accompaniment for kirtan",
			Teacher:     "Bhai Manpreet Singh",
			Weekday:     6,
		},
	}
}

// seedStudents returns a map of student name to id, creating missing students.
func seedStudents(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	byName := make(map[string]string, len(studentSeeds()))
	for _, seed := range studentSeeds() {
		id, found, err := lookupID(ctx, svcs.DB, "SELECT id FROM students WHERE name = $1", seed.Name)
		if err != nil {
			return nil, err
		}
		if found {
			byName[seed.Name] = id
			continue
		}

		student, err := svcs.students.Create(ctx, &model.Student{
			Name:       seed.Name,
			GradeLevel: seed.GradeLevel,
		})
		if err != nil {
			return nil, fmt.Errorf("create student %q: %w", seed.Name, err)
		}
		byName[seed.Name] = student.ID
		logger.InfoContext(ctx, "created student", "name", seed.Name)
	}
	return byName, nil
}

// seedCourses returns a map of course name to id, creating missing courses.
func seedCourses(ctx context.Context, svcs Services, logger *slog.Logger) (map[string]string, error) {
	byName := make(map[string]string, len(courseSeeds()))
	for _, seed := range courseSeeds() {
		id, found, err := lookupID(ctx, svcs.DB, "SELECT id FROM courses WHERE name = $1", seed.Name)
		if err != nil {
			return nil, err
		}
		if found {
			byName[seed.Name] = id
			continue
		}

		course, err := svcs.courses.Create(ctx, &model.Course{
			Name:        seed.Name,
			Description: seed.Description,
			Teacher:     seed.Teacher,
			Weekday:     seed.Weekday,
		})
		if err != nil {
			return nil, fmt.Errorf("create course %q: %w", seed.Name, err)
		}
		byName[seed.Name] = course.ID
		logger.InfoContext(ctx, "created course", "name", seed.Name)
	}
	return byName, nil
}

// seedEnrollments wires every student into a couple of courses. Enroll is a
// no-op for existing pairs, so this needs no existence checks.
func seedEnrollments(ctx context.Context, svcs Services, students, courses map[string]string) error {
	enrollments := map[string][]string{
		"Harnoor Singh": {"Kirtan", "Punjabi Reading"},
		"Simran Kaur":   {"Kirtan", "Sikh History", "Tabla"},
		"Arjan Singh":   {"Punjabi Reading"},
	}

	for studentName, courseNames := range enrollments {
		studentID, ok := students[studentName]
		if !ok {
			continue
		}
		for _, courseName := range courseNames {
			courseID, ok := courses[courseName]
			if !ok {
				continue
			}
			if err := svcs.courses.Enroll(ctx, studentID, courseID); err != nil {
				return fmt.Errorf("enroll %q in %q: %w", studentName, courseName, err)
			}
		}
	}
	return nil
}

// seedUsers creates one admin account plus a login for every seeded student.
func seedUsers(ctx context.Context, svcs Services, students map[string]string, logger *slog.Logger) error {
	hash, err := passwordauth.HashPassword(DevPassword)
	if err != nil {
		return fmt.Errorf("hash dev password: %w", err)
	}

	requests := []*model.CreateUserRequest{
		{
			Email: "admin@example.com",
			Name:  "Portal Admin",
			Role:  domainauth.RoleAdmin,
		},
	}
	for _, seed := range studentSeeds() {
		studentID, ok := students[seed.Name]
		if !ok {
			continue
		}
		sid := studentID
		requests = append(requests, &model.CreateUserRequest{
			Email:     seed.Email,
			Name:      seed.Name,
			Role:      domainauth.RoleStudent,
			StudentID: &sid,
		})
	}

	for _, req := range requests {
		if _, err := svcs.users.Create(ctx, req, hash); err != nil {
			if errors.Is(err, data.ErrUserEmailExists) {
				continue
			}
			return fmt.Errorf("create user %q: %w", req.Email, err)
		}
		logger.InfoContext(ctx, "created account", "email", req.Email, "role", req.Role)
	}
	return nil
}

// seedAttendance backfills a few weeks of class attendance. Students with any
// existing attendance rows are left alone.
func seedAttendance(
	ctx context.Context,
	svcs Services,
	students, courses map[string]string,
	logger *slog.Logger,
) error {
	statuses := []model.AttendanceStatus{
		model.AttendancePresent,
		model.AttendancePresent,
		model.AttendanceLate,
		model.AttendanceAbsent,
		model.AttendancePresent,
		model.AttendanceExcused,
	}

	kirtanID, haveKirtan := courses["Kirtan"]

	i := 0
	for name, studentID := range students {
		_, hasRows, err := lookupID(ctx, svcs.DB,
			"SELECT id FROM attendance_records WHERE student_id = $1 LIMIT 1", studentID)
		if err != nil {
			return err
		}
		if hasRows {
			continue
		}

		for week := 1; week <= 4; week++ {
			rec := &model.AttendanceRecord{
				StudentID: studentID,
				Date:      previousSunday().AddDate(0, 0, -7*(week-1)),
				Status:    statuses[(i+week)%len(statuses)],
			}
			if haveKirtan {
				rec.CourseID = &kirtanID
			}
			if _, err := svcs.attendance.Record(ctx, rec); err != nil {
				return fmt.Errorf("record attendance for %q: %w", name, err)
			}
		}
		logger.InfoContext(ctx, "seeded attendance", "student", name)
		i++
	}
	return nil
}

// seedAssistantMessages starts a short conversation per student so the
// assistant history views are not empty. Students with history are left alone.
func seedAssistantMessages(
	ctx context.Context,
	svcs Services,
	students map[string]string,
	logger *slog.Logger,
) error {
	exchanges := []struct {
		Sender  model.MessageSender
		Content string
	}{
		{model.SenderStudent, "What raag is Anand Sahib in?"},
		{model.SenderAssistant, "Anand Sahib was composed by Guru Amar Das Ji in Raag Ramkali."},
		{model.SenderStudent, "Can you help me practice the first pauri?"},
		{model.SenderAssistant, "Of course. Let's start with the first line and take it phrase by phrase."},
	}

	for name, studentID := range students {
		_, hasRows, err := lookupID(ctx, svcs.DB,
			"SELECT id FROM assistant_messages WHERE student_id = $1 LIMIT 1", studentID)
		if err != nil {
			return err
		}
		if hasRows {
			continue
		}

		for _, ex := range exchanges {
			if _, err := svcs.assistant.Record(ctx, studentID, ex.Sender, ex.Content); err != nil {
				return fmt.Errorf("seed assistant message for %q: %w", name, err)
			}
		}
		logger.InfoContext(ctx, "seeded assistant history", "student", name)
	}
	return nil
}

// previousSunday returns the most recent Sunday at midnight UTC.
func previousSunday() time.Time {
	now := time.Now().UTC().Truncate(24 * time.Hour)
	return now.AddDate(0, 0, -int(now.Weekday()))
}

func lookupID(ctx context.Context, db *sql.DB, query, arg string) (string, bool, error) {
	var id string
	err := db.QueryRowContext(ctx, query, arg).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("lookup %q: %w", arg, err)
	}
	return id, true, nil
}
