package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/observability/statsd"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

// Metrics returns a middleware that emits request counts and durations.
// A nil client disables emission; the wrapping stays cheap either way.
func Metrics(stats *statsd.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			tags := map[string]string{
				"method": r.Method,
				"status": strconv.Itoa(ww.status),
			}
			stats.Count("http.requests", 1, tags)
			stats.Timing("http.request.duration", time.Since(start), tags)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// sessionFreePaths are page paths that must be reachable without a session.
// Everything the login flow itself touches belongs here.
var sessionFreePaths = map[string]bool{ //nolint:gochecknoglobals // read-only allow-list
	pathLogin:     true,
	pathCallback:  true,
	pathSignedOut: true,
}

// edgeGuardExcluded reports whether the edge guard skips the given path.
// API routes answer with status codes, static assets and probes carry no
// session semantics at all.
func edgeGuardExcluded(path string) bool {
	if strings.HasPrefix(path, "/api/") || strings.HasPrefix(path, "/static/") {
		return true
	}
	return path == "/healthz" || path == "/favicon.ico"
}

// EdgeGuard returns the outermost page middleware. It decides from the mere
// presence of the session cookie whether to allow the request, redirect to
// login, or redirect an already-signed-in caller away from the login pages.
// The cookie value is never inspected here.
func EdgeGuard() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if edgeGuardExcluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			_, err := r.Cookie(CookieSession)
			hasSession := err == nil
			allowListed := sessionFreePaths[r.URL.Path]

			switch {
			case !hasSession && !allowListed:
				http.Redirect(w, r, pathLogin, http.StatusSeeOther)
			case hasSession && allowListed:
				http.Redirect(w, r, pathHome, http.StatusSeeOther)
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// SessionContext derives the request-scoped authorization state exactly once
// per request and threads it through the context. Downstream guards and
// handlers consume the context value only; nothing re-reads cookies for
// authorization decisions.
func SessionContext(authSvc AuthServiceInterface) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rs := deriveRequestSession(r, authSvc)
			ctx := SetRequestSession(r.Context(), rs)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// deriveRequestSession resolves the three auth cookies against the session
// store. The request is authenticated only when all three cookies are present,
// the role marker parses to a known role, the server-side session exists, and
// the marker agrees with the session's role. Every failure mode collapses to
// an unauthenticated result.
func deriveRequestSession(r *http.Request, authSvc AuthServiceInterface) domainauth.RequestSession {
	var rs domainauth.RequestSession

	// With auth disabled there is no session store to consult; every request
	// is unauthenticated.
	if authSvc == nil {
		return rs
	}

	sessionCookie, err := r.Cookie(CookieSession)
	if err != nil {
		return rs
	}
	rs.SessionID = sessionCookie.Value

	if userCookie, cookieErr := r.Cookie(CookieUserID); cookieErr == nil {
		rs.UserID = userCookie.Value
	}

	roleCookie, err := r.Cookie(CookieRole)
	if err != nil {
		return rs
	}
	role, ok := domainauth.ParseRole(roleCookie.Value)
	if !ok {
		return rs
	}

	session, err := authSvc.GetSession(r.Context(), rs.SessionID)
	if err != nil || session == nil {
		return rs
	}
	if session.Role != role {
		// A marker that disagrees with the server session is not trusted.
		return rs
	}

	rs.Role = role
	rs.Session = session
	rs.Authenticated = true
	if rs.UserID == "" {
		rs.UserID = session.UserID
	}
	return rs
}

// RequireAuthPage guards a page route: any authenticated caller passes,
// everyone else is redirected to the login page. A canceled request context
// suppresses the redirect so a stale check never navigates the client.
func RequireAuthPage() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Err() != nil {
				return
			}
			rs, _ := GetRequestSession(r.Context())
			if !rs.Authenticated {
				http.Redirect(w, r, pathLogin, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequirePageRole guards a page route behind a specific role. Unauthenticated
// callers go to login; authenticated callers with the wrong role go to a
// role-appropriate fallback: students hitting an admin page land on the
// student dashboard, everyone else lands on the application root.
func RequirePageRole(required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Context().Err() != nil {
				return
			}
			rs, _ := GetRequestSession(r.Context())
			switch {
			case !rs.Authenticated:
				http.Redirect(w, r, pathLogin, http.StatusSeeOther)
			case rs.Role == required:
				next.ServeHTTP(w, r)
			case required == domainauth.RoleAdmin && rs.Role == domainauth.RoleStudent:
				http.Redirect(w, r, pathStudentDashboard, http.StatusSeeOther)
			default:
				http.Redirect(w, r, pathHome, http.StatusSeeOther)
			}
		})
	}
}

// RequireAPIAuth guards an API route: unauthenticated callers receive a 401
// JSON body, never a redirect.
func RequireAPIAuth() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rs, _ := GetRequestSession(r.Context())
			if !rs.Authenticated {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAPIRole guards an API route behind a specific role: 401 when
// unauthenticated, 403 when authenticated with a different role.
func RequireAPIRole(required domainauth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rs, _ := GetRequestSession(r.Context())
			if !rs.Authenticated {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: "authentication_required",
					Err:     errors.New("authentication required"),
				})
				return
			}
			if rs.Role != required {
				WriteError(w, ErrorParams{
					Code:    http.StatusForbidden,
					ErrCode: "insufficient_permissions",
					Err:     errors.New("insufficient permissions"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
