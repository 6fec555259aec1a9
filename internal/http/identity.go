package httpx

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gurmatacademy/portal/internal/core"
)

// Typed resolution failures. They exist for operator logs; the HTTP-facing
// ResolveStudentID collapses all of them to a deny.
var (
	// ErrNoSession indicates the session marker cookie was absent.
	ErrNoSession = errors.New("no session cookie")
	// ErrNoUserCookie indicates the user id cookie was absent.
	ErrNoUserCookie = errors.New("no user id cookie")
	// ErrNoStudentMapping indicates the user record carries no student id.
	ErrNoStudentMapping = errors.New("user has no student mapping")
)

// StudentResolver maps request cookies to a durable student identity. It is
// the sole authority handlers use to enforce "a student may only access their
// own records": calling routes equality-filter their queries by the resolved
// id rather than trusting any client-supplied one.
//
// Resolution is re-derived from cookies plus one row lookup on every call; it
// shares no state with the session middleware and is idempotent for unchanged
// cookies and store contents.
type StudentResolver struct {
	Users  core.UserRepository
	Logger *slog.Logger
}

func (sr *StudentResolver) logger() *slog.Logger {
	if sr != nil && sr.Logger != nil {
		return sr.Logger
	}
	return slog.Default()
}

// Resolve returns the caller's student id or a typed error naming the exact
// failure. Callers that only need a deny/allow answer should use
// ResolveStudentID instead.
func (sr *StudentResolver) Resolve(ctx context.Context, r *http.Request) (string, error) {
	if _, err := r.Cookie(CookieSession); err != nil {
		return "", ErrNoSession
	}
	userCookie, err := r.Cookie(CookieUserID)
	if err != nil || userCookie.Value == "" {
		return "", ErrNoUserCookie
	}

	studentID, err := sr.Users.GetStudentID(ctx, userCookie.Value)
	if err != nil {
		return "", fmt.Errorf("student lookup for user %q: %w", userCookie.Value, err)
	}
	if studentID == nil || *studentID == "" {
		return "", ErrNoStudentMapping
	}
	return *studentID, nil
}

// ResolveStudentID collapses every failure to ("", false) after logging the
// underlying cause. Callers must treat false as unauthorized, never as
// "no data".
func (sr *StudentResolver) ResolveStudentID(ctx context.Context, r *http.Request) (string, bool) {
	id, err := sr.Resolve(ctx, r)
	if err != nil {
		sr.logger().InfoContext(ctx, "student identity unresolved", "error", err)
		return "", false
	}
	return id, true
}
