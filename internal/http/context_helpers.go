package httpx

import (
	"context"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
// Centralized in this file so all handlers/middleware use the same key.
type sessionKey struct{}

// SetRequestSession returns a child context carrying the derived request session.
func SetRequestSession(ctx context.Context, rs domainauth.RequestSession) context.Context {
	return context.WithValue(ctx, sessionKey{}, rs)
}

// GetRequestSession returns the request session derived by SessionContext and a
// boolean indicating whether the middleware ran. A missing value means no
// authorization state was derived; callers must treat it as unauthenticated.
func GetRequestSession(ctx context.Context) (domainauth.RequestSession, bool) {
	if rs, ok := ctx.Value(sessionKey{}).(domainauth.RequestSession); ok {
		return rs, true
	}
	return domainauth.RequestSession{}, false
}

// SessionFromContext returns the server-side session record when the request
// is authenticated, nil otherwise.
func SessionFromContext(ctx context.Context) *domainauth.Session {
	rs, ok := GetRequestSession(ctx)
	if !ok || !rs.Authenticated {
		return nil
	}
	return rs.Session
}
