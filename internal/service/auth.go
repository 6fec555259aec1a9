package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/ports"
)

// StudentMappingLookup resolves the student record owned by a user account.
// Satisfied by the user repository; nil lookups (no mapping) are legal for
// admin accounts.
type StudentMappingLookup interface {
	GetStudentID(ctx context.Context, userID string) (*string, error)
}

// AuthServiceOptions groups dependencies for AuthService.
// Provider drives oauth/mock logins; Credentials drives password logins.
// Either may be nil when the corresponding mode is not configured.
type AuthServiceOptions struct {
	Provider    ports.AuthProvider
	Credentials ports.CredentialVerifier
	Sessions    ports.SessionStore
	Roles       ports.RoleMapper
	Students    StudentMappingLookup
}

// AuthService orchestrates authentication flows by coordinating provider,
// role mapping, student mapping, and session persistence.
type AuthService struct {
	provider    ports.AuthProvider
	credentials ports.CredentialVerifier
	sessions    ports.SessionStore
	roles       ports.RoleMapper
	students    StudentMappingLookup
}

var (
	errSessionExpired = errors.New("session expired")

	// ErrNoRoleAssigned is returned when an authenticated identity maps to no
	// known role. Default deny: such users never get a session.
	ErrNoRoleAssigned = errors.New("identity maps to no known role")
)

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) *AuthService {
	return &AuthService{
		provider:    opts.Provider,
		credentials: opts.Credentials,
		sessions:    opts.Sessions,
		roles:       opts.Roles,
		students:    opts.Students,
	}
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
	Nonce   string
}

// BeginLogin initiates a provider authentication flow and returns the provider auth URL with state and nonce.
func (s *AuthService) BeginLogin(ctx context.Context, redirectURL string) (*BeginLoginResult, error) {
	if redirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if s.provider == nil {
		return nil, errors.New("provider login is not configured")
	}

	input := ports.BeginInput{RedirectURL: redirectURL}
	authURL, state, nonce, err := s.provider.Begin(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("begin auth flow: %w", err)
	}

	return &BeginLoginResult{
		AuthURL: authURL,
		State:   state,
		Nonce:   nonce,
	}, nil
}

// CompleteLoginInput groups parameters for completing a login flow.
type CompleteLoginInput struct {
	Code  string
	State string
	Nonce string
}

// CompleteLoginResult contains the result of completing a login flow.
type CompleteLoginResult struct {
	Session domainauth.Session
}

// CompleteLogin completes a provider authentication flow by exchanging the
// code for an identity, mapping roles and student ownership, and persisting
// a session.
func (s *AuthService) CompleteLogin(ctx context.Context, input CompleteLoginInput) (*CompleteLoginResult, error) {
	if input.Code == "" {
		return nil, errors.New("authorization code is required")
	}
	if input.State == "" {
		return nil, errors.New("state parameter is required")
	}
	if input.Nonce == "" {
		return nil, errors.New("nonce parameter is required")
	}
	if s.provider == nil {
		return nil, errors.New("provider login is not configured")
	}

	exchangeInput := ports.ExchangeInput{
		Code:  input.Code,
		State: input.State,
		Nonce: input.Nonce,
	}
	identity, err := s.provider.Exchange(ctx, exchangeInput)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	return s.establishSession(ctx, identity)
}

// PasswordLogin verifies a local email/password credential pair and persists
// a session. Failures are uniform: callers can not distinguish a wrong
// password from an unknown account.
func (s *AuthService) PasswordLogin(ctx context.Context, email, password string) (*CompleteLoginResult, error) {
	if email == "" || password == "" {
		return nil, errors.New("email and password are required")
	}
	if s.credentials == nil {
		return nil, errors.New("password login is not configured")
	}

	identity, err := s.credentials.Verify(ctx, email, password)
	if err != nil {
		return nil, fmt.Errorf("verify credentials: %w", err)
	}

	return s.establishSession(ctx, identity)
}

// establishSession maps the identity to a role, resolves student ownership,
// and persists the session. Identities with no mappable role are denied.
func (s *AuthService) establishSession(ctx context.Context, identity domainauth.Identity) (*CompleteLoginResult, error) {
	role, ok := s.roles.Map(identity.Groups)
	if !ok {
		return nil, ErrNoRoleAssigned
	}

	session := domainauth.Session{
		ID:        generateSessionID(),
		UserID:    identity.UserID,
		Name:      identity.Name,
		Email:     identity.Email,
		Role:      role,
		ExpiresAt: identity.ExpiresAt,
	}

	if role == domainauth.RoleStudent && s.students != nil {
		studentID, lookupErr := s.students.GetStudentID(ctx, identity.UserID)
		// A provider identity may have no local account yet; that only means
		// no student mapping, not a failed login.
		if lookupErr == nil && studentID != nil {
			session.StudentID = *studentID
		}
	}

	if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
		return nil, fmt.Errorf("save session: %w", saveErr)
	}

	return &CompleteLoginResult{Session: session}, nil
}

// GetSession retrieves a session by ID.
func (s *AuthService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, errors.New("session ID is required")
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}

	// Check if session is expired
	if time.Now().After(session.ExpiresAt) {
		// Clean up expired session
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr))
		}
		return nil, errSessionExpired
	}

	return &session, nil
}

// Logout removes a session.
func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil // Nothing to logout
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	// Use UUID for session ID - it's URL-safe and has good entropy
	id := uuid.New()
	return id.String()
}
