package httpx

// Cookie names shared by the login handlers, the guard middleware, and the
// identity resolver. auth_session is the opaque session marker; user_id and
// user_role are client-visible markers the pages branch on.
const (
	CookieSession = "auth_session"
	CookieUserID  = "user_id"
	CookieRole    = "user_role"
)

// Short-lived cookies used only during the OAuth login flow.
const (
	cookieOAuthState        = "oauth_state"
	cookieOAuthNonce        = "oauth_nonce"
	cookiePostLoginRedirect = "post_login_redirect"
)

// Fixed redirect targets used by the guards.
const (
	pathLogin            = "/auth/login"
	pathHome             = "/"
	pathStudentDashboard = "/student-dashboard"
	pathSignedOut        = "/auth/signed-out"
	pathCallback         = "/auth/callback"
)
