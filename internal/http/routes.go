package httpx

import (
	"log/slog"
	"net/http"

	"github.com/gurmatacademy/portal/internal/core"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/observability/statsd"
	"github.com/gurmatacademy/portal/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Auth      AuthServiceInterface
	Assistant AssistantHistoryService
	Gurbani   GurbaniServiceInterface
	Roster    RosterServiceInterface
	Users     core.UserRepository
	// OAuthLogin makes GET /auth/login redirect to the identity provider
	// instead of serving the local sign-in page.
	OAuthLogin   bool
	CookieDomain string
	Stats        *statsd.Client
	Logger       *slog.Logger
}

// NewRouter creates and configures the portal's HTTP handler. The middleware
// chain, outermost first, is Recover, Logging, Metrics, EdgeGuard,
// SessionContext; page guards are applied per route.
func NewRouter(services RouterServices) http.Handler {
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	// Collapse a typed-nil auth service to a nil interface so the disabled
	// state stays detectable downstream.
	if svc, ok := services.Auth.(*service.AuthService); ok && svc == nil {
		services.Auth = nil
	}

	mux := http.NewServeMux()

	resolver := &StudentResolver{Users: services.Users, Logger: logger}
	authHandlers := &AuthHandlers{Svc: services.Auth, CookieDomain: services.CookieDomain, Logger: logger}

	registerAuthRoutes(mux, authHandlers, services.OAuthLogin)
	registerAssistantRoutes(mux, &AssistantHandlers{Svc: services.Assistant, Resolver: resolver, Logger: logger})
	registerGurbaniRoutes(mux, &GurbaniHandlers{Svc: services.Gurbani, Logger: logger})
	registerRosterRoutes(mux, &RosterHandlers{Svc: services.Roster, Resolver: resolver, Logger: logger})
	registerPageRoutes(mux)

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	var handler http.Handler = mux
	handler = SessionContext(services.Auth)(handler)
	handler = EdgeGuard()(handler)
	handler = Metrics(services.Stats)(handler)
	handler = Logging(logger)(handler)
	handler = Recover(logger)(handler)
	return handler
}

func registerAuthRoutes(mux *http.ServeMux, h *AuthHandlers, oauthLogin bool) {
	if oauthLogin {
		mux.Handle("GET "+pathLogin, http.HandlerFunc(h.Login))
	} else {
		mux.Handle("GET "+pathLogin, pageHandler(loginPage))
	}
	mux.Handle("GET "+pathCallback, http.HandlerFunc(h.Callback))
	mux.Handle("POST /auth/logout", http.HandlerFunc(h.Logout))
	mux.Handle("GET "+pathSignedOut, pageHandler(signedOutPage))

	mux.Handle("POST /api/auth/login", http.HandlerFunc(h.PasswordLogin))
	mux.Handle("GET /api/auth/status", http.HandlerFunc(h.Status))
}

func registerAssistantRoutes(mux *http.ServeMux, h *AssistantHandlers) {
	mux.Handle("GET /api/assistant/messages", http.HandlerFunc(h.History))
}

func registerGurbaniRoutes(mux *http.ServeMux, h *GurbaniHandlers) {
	requireAuth := RequireAPIAuth()
	mux.Handle("GET /api/gurbani/search", requireAuth(http.HandlerFunc(h.Search)))
	mux.Handle("GET /api/gurbani/raags", requireAuth(http.HandlerFunc(h.Raags)))
}

func registerRosterRoutes(mux *http.ServeMux, h *RosterHandlers) {
	requireAuth := RequireAPIAuth()
	requireAdmin := RequireAPIRole(domainauth.RoleAdmin)

	mux.Handle("GET /api/students/me", http.HandlerFunc(h.Me))
	mux.Handle("GET /api/students", requireAdmin(http.HandlerFunc(h.ListStudents)))
	mux.Handle("GET /api/attendance", http.HandlerFunc(h.Attendance))
	mux.Handle("GET /api/courses", requireAuth(http.HandlerFunc(h.Courses)))
	mux.Handle("GET /api/courses/enrolled", http.HandlerFunc(h.EnrolledCourses))
	mux.Handle("GET /api/dashboard", http.HandlerFunc(h.Dashboard))
}

func registerPageRoutes(mux *http.ServeMux) {
	requireAuth := RequireAuthPage()
	requireAdmin := RequirePageRole(domainauth.RoleAdmin)
	requireStudent := RequirePageRole(domainauth.RoleStudent)

	mux.Handle("GET /{$}", requireAuth(pageHandler(homePage)))
	mux.Handle("GET "+pathStudentDashboard, requireStudent(pageHandler(studentDashboardPage)))
	mux.Handle("GET /admin", requireAdmin(pageHandler(adminPage)))
}
