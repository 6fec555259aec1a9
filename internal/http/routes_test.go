package httpx

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/service"
)

// newTestRouter wires the full middleware chain around fake services.
func newTestRouter(t *testing.T) (http.Handler, *fakeAuthService) {
	t.Helper()
	s1 := "s1"
	auth := newFakeAuthService(
		studentSession("sess-student", "u1", "s1"),
		adminSession("sess-admin", "u2"),
	)
	router := NewRouter(RouterServices{
		Auth:      auth,
		Assistant: assistantFixture(),
		Gurbani:   &fakeGurbaniService{},
		Roster:    rosterFixture(),
		Users:     &fakeUserRepo{studentIDs: map[string]*string{"u1": &s1}},
	})
	return router, auth
}

func TestRouter_EdgeGuardOnPages(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("anonymous page request redirects to login", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/student-dashboard", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("signed-in caller is bounced off the login page", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		addAuthCookies(r, "sess-student", "u1", domainauth.RoleStudent)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})

	t.Run("anonymous login page renders", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Sign In")
	})
}

func TestRouter_AuthDisabled(t *testing.T) {
	// Bootstrap leaves the auth service unwired when it cannot be built; the
	// router must degrade rather than dereference a typed-nil service.
	s1 := "s1"
	router := NewRouter(RouterServices{
		Auth:      (*service.AuthService)(nil),
		Assistant: assistantFixture(),
		Gurbani:   &fakeGurbaniService{},
		Roster:    rosterFixture(),
		Users:     &fakeUserRepo{studentIDs: map[string]*string{"u1": &s1}},
	})

	t.Run("page request with auth cookies is treated as anonymous", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		addAuthCookies(r, "sess-student", "u1", domainauth.RoleStudent)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("password login answers 503 JSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"a@b.c","password":"pw"}`))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.JSONEq(t,
			`{"error":"auth_disabled","message":"authentication is not available"}`,
			w.Body.String())
	})

	t.Run("status reports unauthenticated", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/auth/status", nil)
		addAuthCookies(r, "sess-student", "u1", domainauth.RoleStudent)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
	})
}

func TestRouter_PageGuards(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		sessionID  string
		userID     string
		role       domainauth.Role
		wantStatus int
		wantLoc    string
	}{
		{"student on own dashboard", "/student-dashboard", "sess-student", "u1", domainauth.RoleStudent, http.StatusOK, ""},
		{"student on admin page", "/admin", "sess-student", "u1", domainauth.RoleStudent, http.StatusSeeOther, "/student-dashboard"},
		{"admin on admin page", "/admin", "sess-admin", "u2", domainauth.RoleAdmin, http.StatusOK, ""},
		{"admin on student dashboard", "/student-dashboard", "sess-admin", "u2", domainauth.RoleAdmin, http.StatusSeeOther, "/"},
		{"authenticated home", "/", "sess-student", "u1", domainauth.RoleStudent, http.StatusOK, ""},
		{"stale session cookie on page", "/admin", "sess-gone", "u2", domainauth.RoleAdmin, http.StatusSeeOther, "/auth/login"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			addAuthCookies(r, tt.sessionID, tt.userID, tt.role)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
		})
	}
}

func TestRouter_HistoryEndpointRoleBranching(t *testing.T) {
	router, _ := newTestRouter(t)

	t.Run("student gets own messages", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assistant/messages", nil)
		addAuthCookies(r, "sess-student", "u1", domainauth.RoleStudent)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var payload historyPayload
		require.NoError(t, decodeBody(w.Body.Bytes(), &payload))
		require.Len(t, payload.Messages, 2)
		for _, m := range payload.Messages {
			assert.Equal(t, "s1", m.StudentID)
		}
	})

	t.Run("admin gets all messages", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assistant/messages", nil)
		addAuthCookies(r, "sess-admin", "u2", domainauth.RoleAdmin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)

		require.Equal(t, http.StatusOK, w.Code)
		var payload historyPayload
		require.NoError(t, decodeBody(w.Body.Bytes(), &payload))
		assert.Len(t, payload.Messages, 3)
	})

	t.Run("no role cookie is 401, not a redirect", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assistant/messages", nil)
		r.AddCookie(&http.Cookie{Name: CookieSession, Value: "sess-student"})
		r.AddCookie(&http.Cookie{Name: CookieUserID, Value: "u1"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("forged role cookie is 401", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/assistant/messages", nil)
		addAuthCookies(r, "sess-student", "u1", domainauth.RoleAdmin)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRouter_APIUnaffectedByEdgeGuard(t *testing.T) {
	router, _ := newTestRouter(t)

	// API routes answer with status codes, never login redirects.
	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Header().Get("Location"))
}

func TestRouter_AdminOnlyStudentList(t *testing.T) {
	router, _ := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
	addAuthCookies(r, "sess-student", "u1", domainauth.RoleStudent)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_Healthz(t *testing.T) {
	router, _ := newTestRouter(t)

	r := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","service":"portal"}`, w.Body.String())
}

func TestRouter_OAuthLoginMode(t *testing.T) {
	s1 := "s1"
	auth := newFakeAuthService()
	router := NewRouter(RouterServices{
		Auth:       auth,
		Assistant:  assistantFixture(),
		Gurbani:    &fakeGurbaniService{},
		Roster:     rosterFixture(),
		Users:      &fakeUserRepo{studentIDs: map[string]*string{"u1": &s1}},
		OAuthLogin: true,
	})

	r := httptest.NewRequest(http.MethodGet, "/auth/login", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://idp.example.com/authorize", w.Header().Get("Location"))
}
