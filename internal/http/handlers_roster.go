package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/data"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/service"
)

const (
	defaultListLimit       = 50
	maxListLimit           = 200
	dashboardRecentClasses = 10
	dateLayout             = "2006-01-02"
)

// RosterServiceInterface defines the roster operations the handlers need.
type RosterServiceInterface interface {
	GetStudent(ctx context.Context, studentID string) (*model.Student, error)
	ListStudents(ctx context.Context, limit, offset int) ([]*model.Student, error)
	ListAttendance(ctx context.Context, params core.AttendanceListParams) ([]*model.AttendanceRecord, error)
	ListCourses(ctx context.Context) ([]*model.Course, error)
	ListEnrolledCourses(ctx context.Context, studentID string) ([]*model.Course, error)
	GetDashboard(ctx context.Context, studentID string, recentLimit int) (*service.Dashboard, error)
}

// RosterHandlers serves student, attendance, course, and dashboard endpoints.
type RosterHandlers struct {
	Svc      RosterServiceInterface
	Resolver *StudentResolver
	Logger   *slog.Logger
}

func (h *RosterHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Me returns the calling student's own profile.
// GET /api/students/me.
func (h *RosterHandlers) Me(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.callerStudentID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	student, err := h.Svc.GetStudent(r.Context(), studentID)
	if err != nil {
		if errors.Is(err, data.ErrStudentNotFound) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "student_not_found",
				Err:     errors.New("student not found"),
			})
			return
		}
		h.writeInternal(w, r, "fetching student profile failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{"student": student})
}

// ListStudents returns the full roster. Admin only; the route guard enforces
// the role before this handler runs.
// GET /api/students.
func (h *RosterHandlers) ListStudents(w http.ResponseWriter, r *http.Request) {
	limit, offset := ParseLimitOffset(r, defaultListLimit, maxListLimit)
	students, err := h.Svc.ListStudents(r.Context(), limit, offset)
	if err != nil {
		h.writeInternal(w, r, "listing students failed", err)
		return
	}
	if students == nil {
		students = []*model.Student{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"students": students})
}

// Attendance returns attendance records scoped by role: students get their
// own records only, equality-filtered by the server-resolved id; admins must
// name a student via ?student_id=.
// GET /api/attendance[?student_id=][&from=][&to=][&limit=].
func (h *RosterHandlers) Attendance(w http.ResponseWriter, r *http.Request) {
	rs, _ := GetRequestSession(r.Context())

	params := core.AttendanceListParams{Limit: parseIntQuery(r, "limit", 0)}
	switch {
	case rs.HasRole(domainauth.RoleAdmin):
		params.StudentID = r.URL.Query().Get("student_id")
		if params.StudentID == "" {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "missing_student_id",
				Err:     errors.New("student_id parameter is required"),
			})
			return
		}
	case rs.HasRole(domainauth.RoleStudent):
		studentID, ok := h.Resolver.ResolveStudentID(r.Context(), r)
		if !ok {
			writeUnauthorized(w)
			return
		}
		params.StudentID = studentID
	default:
		writeUnauthorized(w)
		return
	}

	var ok bool
	if params.From, ok = parseDateQuery(w, r, "from"); !ok {
		return
	}
	if params.To, ok = parseDateQuery(w, r, "to"); !ok {
		return
	}

	records, err := h.Svc.ListAttendance(r.Context(), params)
	if err != nil {
		h.writeInternal(w, r, "listing attendance failed", err)
		return
	}
	if records == nil {
		records = []*model.AttendanceRecord{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"attendance": records})
}

// Courses returns the course catalog. Any authenticated caller may browse it.
// GET /api/courses.
func (h *RosterHandlers) Courses(w http.ResponseWriter, r *http.Request) {
	courses, err := h.Svc.ListCourses(r.Context())
	if err != nil {
		h.writeInternal(w, r, "listing courses failed", err)
		return
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

// EnrolledCourses returns the courses the caller is enrolled in. Admins may
// inspect any student's enrollment via ?student_id=.
// GET /api/courses/enrolled.
func (h *RosterHandlers) EnrolledCourses(w http.ResponseWriter, r *http.Request) {
	rs, _ := GetRequestSession(r.Context())

	var studentID string
	switch {
	case rs.HasRole(domainauth.RoleAdmin):
		studentID = r.URL.Query().Get("student_id")
		if studentID == "" {
			WriteError(w, ErrorParams{
				Code:    http.StatusBadRequest,
				ErrCode: "missing_student_id",
				Err:     errors.New("student_id parameter is required"),
			})
			return
		}
	case rs.HasRole(domainauth.RoleStudent):
		var ok bool
		if studentID, ok = h.Resolver.ResolveStudentID(r.Context(), r); !ok {
			writeUnauthorized(w)
			return
		}
	default:
		writeUnauthorized(w)
		return
	}

	courses, err := h.Svc.ListEnrolledCourses(r.Context(), studentID)
	if err != nil {
		h.writeInternal(w, r, "listing enrolled courses failed", err)
		return
	}
	if courses == nil {
		courses = []*model.Course{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"courses": courses})
}

// Dashboard returns the aggregate view backing the student dashboard page.
// GET /api/dashboard.
func (h *RosterHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	studentID, ok := h.callerStudentID(r)
	if !ok {
		writeUnauthorized(w)
		return
	}

	dashboard, err := h.Svc.GetDashboard(r.Context(), studentID, dashboardRecentClasses)
	if err != nil {
		if errors.Is(err, data.ErrStudentNotFound) {
			WriteError(w, ErrorParams{
				Code:    http.StatusNotFound,
				ErrCode: "student_not_found",
				Err:     errors.New("student not found"),
			})
			return
		}
		h.writeInternal(w, r, "building dashboard failed", err)
		return
	}
	WriteJSON(w, http.StatusOK, dashboard)
}

// callerStudentID resolves the caller to a student id. Students resolve their
// own identity; admins may name any student via ?student_id=.
func (h *RosterHandlers) callerStudentID(r *http.Request) (string, bool) {
	rs, _ := GetRequestSession(r.Context())
	switch {
	case rs.HasRole(domainauth.RoleStudent):
		return h.Resolver.ResolveStudentID(r.Context(), r)
	case rs.HasRole(domainauth.RoleAdmin):
		if override := r.URL.Query().Get("student_id"); override != "" {
			return override, true
		}
		return "", false
	default:
		return "", false
	}
}

// parseDateQuery parses an optional YYYY-MM-DD query param. On a malformed
// value it writes a 400 and reports false.
func parseDateQuery(w http.ResponseWriter, r *http.Request, key string) (time.Time, bool) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return time.Time{}, true
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		WriteError(w, ErrorParams{
			Code:    http.StatusBadRequest,
			ErrCode: "invalid_date",
			Err:     errors.New(key + " must be formatted as YYYY-MM-DD"),
		})
		return time.Time{}, false
	}
	return t, true
}

func (h *RosterHandlers) writeInternal(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.logger().ErrorContext(r.Context(), msg, "error", err)
	WriteError(w, ErrorParams{
		Code:    http.StatusInternalServerError,
		ErrCode: "internal_error",
		Err:     errors.New("request failed"),
	})
}
