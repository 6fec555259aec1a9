package httpx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestEdgeGuard(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		hasSession bool
		wantStatus int
		wantLoc    string
	}{
		{"no session, protected page", "/student-dashboard", false, http.StatusSeeOther, "/auth/login"},
		{"no session, root", "/", false, http.StatusSeeOther, "/auth/login"},
		{"no session, login page", "/auth/login", false, http.StatusOK, ""},
		{"no session, callback", "/auth/callback", false, http.StatusOK, ""},
		{"session, login page", "/auth/login", true, http.StatusSeeOther, "/"},
		{"session, signed-out page", "/auth/signed-out", true, http.StatusSeeOther, "/"},
		{"session, protected page", "/student-dashboard", true, http.StatusOK, ""},
		{"no session, api route excluded", "/api/gurbani/search", false, http.StatusOK, ""},
		{"no session, static excluded", "/static/app.js", false, http.StatusOK, ""},
		{"no session, healthz excluded", "/healthz", false, http.StatusOK, ""},
		{"no session, favicon excluded", "/favicon.ico", false, http.StatusOK, ""},
	}

	guard := EdgeGuard()(okHandler())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.hasSession {
				r.AddCookie(&http.Cookie{Name: CookieSession, Value: "sess-1"})
			}
			w := httptest.NewRecorder()
			guard.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
		})
	}
}

func TestEdgeGuard_IgnoresCookieValue(t *testing.T) {
	// The guard is presence-only; even a garbage value passes.
	guard := EdgeGuard()(okHandler())
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieSession, Value: "not-a-real-session"})
	w := httptest.NewRecorder()
	guard.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionContext_Derivation(t *testing.T) {
	session := studentSession("sess-1", "user-1", "student-1")
	svc := newFakeAuthService(session)

	var got domainauth.RequestSession
	h := SessionContext(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetRequestSession(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name      string
		setup     func(r *http.Request)
		wantAuth  bool
		wantRole  domainauth.Role
		wantSeshn bool
	}{
		{
			"all cookies valid",
			func(r *http.Request) { addAuthCookies(r, "sess-1", "user-1", domainauth.RoleStudent) },
			true, domainauth.RoleStudent, true,
		},
		{
			"no cookies",
			func(_ *http.Request) {},
			false, "", false,
		},
		{
			"missing role cookie",
			func(r *http.Request) { addAuthCookies(r, "sess-1", "user-1", "") },
			false, "", false,
		},
		{
			"unknown role value",
			func(r *http.Request) { addAuthCookies(r, "sess-1", "user-1", "teacher") },
			false, "", false,
		},
		{
			"unknown session id",
			func(r *http.Request) { addAuthCookies(r, "sess-unknown", "user-1", domainauth.RoleStudent) },
			false, "", false,
		},
		{
			"role marker disagrees with server session",
			func(r *http.Request) { addAuthCookies(r, "sess-1", "user-1", domainauth.RoleAdmin) },
			false, "", false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
			tt.setup(r)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantAuth, got.Authenticated)
			assert.Equal(t, tt.wantRole, got.Role)
			if tt.wantSeshn {
				require.NotNil(t, got.Session)
				assert.Equal(t, "student-1", got.Session.StudentID)
			} else {
				assert.Nil(t, got.Session)
			}
		})
	}
}

func TestSessionContext_UserIDFallsBackToSession(t *testing.T) {
	session := studentSession("sess-1", "user-1", "student-1")
	svc := newFakeAuthService(session)

	var got domainauth.RequestSession
	h := SessionContext(svc)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = GetRequestSession(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	addAuthCookies(r, "sess-1", "", domainauth.RoleStudent)
	h.ServeHTTP(httptest.NewRecorder(), r)

	assert.True(t, got.Authenticated)
	assert.Equal(t, "user-1", got.UserID)
}

func TestRequireAuthPage(t *testing.T) {
	h := RequireAuthPage()(okHandler())

	t.Run("unauthenticated redirects to login", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = withRequestSession(r, domainauth.RequestSession{})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, "/auth/login", w.Header().Get("Location"))
	})

	t.Run("authenticated passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r = withRequestSession(r, authedRequestSession(studentSession("s", "u", "st")))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequirePageRole_Matrix(t *testing.T) {
	tests := []struct {
		name       string
		required   domainauth.Role
		caller     domainauth.RequestSession
		wantStatus int
		wantLoc    string
	}{
		{
			"admin page, anonymous",
			domainauth.RoleAdmin,
			domainauth.RequestSession{},
			http.StatusSeeOther, "/auth/login",
		},
		{
			"admin page, student",
			domainauth.RoleAdmin,
			authedRequestSession(studentSession("s1", "u1", "st1")),
			http.StatusSeeOther, "/student-dashboard",
		},
		{
			"admin page, admin",
			domainauth.RoleAdmin,
			authedRequestSession(adminSession("s2", "u2")),
			http.StatusOK, "",
		},
		{
			"student page, admin",
			domainauth.RoleStudent,
			authedRequestSession(adminSession("s2", "u2")),
			http.StatusSeeOther, "/",
		},
		{
			"student page, student",
			domainauth.RoleStudent,
			authedRequestSession(studentSession("s1", "u1", "st1")),
			http.StatusOK, "",
		},
		{
			"student page, anonymous",
			domainauth.RoleStudent,
			domainauth.RequestSession{},
			http.StatusSeeOther, "/auth/login",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := RequirePageRole(tt.required)(okHandler())
			r := httptest.NewRequest(http.MethodGet, "/page", nil)
			r = withRequestSession(r, tt.caller)
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantLoc != "" {
				assert.Equal(t, tt.wantLoc, w.Header().Get("Location"))
			}
		})
	}
}

func TestRequirePageRole_CanceledContextSuppressesRedirect(t *testing.T) {
	// A stale check must never navigate the client.
	h := RequirePageRole(domainauth.RoleAdmin)(okHandler())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := httptest.NewRequest(http.MethodGet, "/admin", nil).WithContext(ctx)
	r = withRequestSession(r, domainauth.RequestSession{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)

	assert.Empty(t, w.Header().Get("Location"))
}

func TestRequireAPIAuth(t *testing.T) {
	h := RequireAPIAuth()(okHandler())

	r := httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r = withRequestSession(r, domainauth.RequestSession{})
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "authentication_required")

	r = httptest.NewRequest(http.MethodGet, "/api/courses", nil)
	r = withRequestSession(r, authedRequestSession(studentSession("s", "u", "st")))
	w = httptest.NewRecorder()
	h.ServeHTTP(w, r)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAPIRole(t *testing.T) {
	h := RequireAPIRole(domainauth.RoleAdmin)(okHandler())

	t.Run("anonymous gets 401", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
		r = withRequestSession(r, domainauth.RequestSession{})
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("student gets 403", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
		r = withRequestSession(r, authedRequestSession(studentSession("s", "u", "st")))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("admin passes", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/api/students", nil)
		r = withRequestSession(r, authedRequestSession(adminSession("s", "u")))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
