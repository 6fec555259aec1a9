package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gurmatacademy/portal/internal/core"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/service"
)

// fakeAuthService is an in-memory AuthServiceInterface for handler tests.
type fakeAuthService struct {
	sessions    map[string]*domainauth.Session
	beginResult *service.BeginLoginResult
	beginErr    error
	passwordFn  func(ctx context.Context, email, password string) (*service.CompleteLoginResult, error)
	completeFn  func(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error)
	loggedOut   []string
}

func newFakeAuthService(sessions ...*domainauth.Session) *fakeAuthService {
	svc := &fakeAuthService{sessions: make(map[string]*domainauth.Session)}
	for _, s := range sessions {
		svc.sessions[s.ID] = s
	}
	return svc
}

func (f *fakeAuthService) BeginLogin(_ context.Context, _ string) (*service.BeginLoginResult, error) {
	if f.beginErr != nil {
		return nil, f.beginErr
	}
	if f.beginResult != nil {
		return f.beginResult, nil
	}
	return &service.BeginLoginResult{AuthURL: "https://idp.example.com/authorize", State: "state-1", Nonce: "nonce-1"}, nil
}

func (f *fakeAuthService) CompleteLogin(ctx context.Context, input service.CompleteLoginInput) (*service.CompleteLoginResult, error) {
	if f.completeFn != nil {
		return f.completeFn(ctx, input)
	}
	return nil, errors.New("complete login not configured")
}

func (f *fakeAuthService) PasswordLogin(ctx context.Context, email, password string) (*service.CompleteLoginResult, error) {
	if f.passwordFn != nil {
		return f.passwordFn(ctx, email, password)
	}
	return nil, errors.New("password login not configured")
}

func (f *fakeAuthService) GetSession(_ context.Context, sessionID string) (*domainauth.Session, error) {
	if s, ok := f.sessions[sessionID]; ok {
		return s, nil
	}
	return nil, errors.New("session not found")
}

func (f *fakeAuthService) Logout(_ context.Context, sessionID string) error {
	f.loggedOut = append(f.loggedOut, sessionID)
	delete(f.sessions, sessionID)
	return nil
}

// fakeUserRepo backs the student resolver in tests.
type fakeUserRepo struct {
	studentIDs map[string]*string
	lookupErr  error
}

func (f *fakeUserRepo) Create(_ context.Context, _ *model.CreateUserRequest, _ []byte) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByID(_ context.Context, _ string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeUserRepo) GetStudentID(_ context.Context, userID string) (*string, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	if id, ok := f.studentIDs[userID]; ok {
		return id, nil
	}
	return nil, errors.New("user not found")
}

var _ core.UserRepository = (*fakeUserRepo)(nil)

// studentSession returns a valid student session and registers nothing.
func studentSession(id, userID, studentID string) *domainauth.Session {
	return &domainauth.Session{
		ID:        id,
		UserID:    userID,
		Name:      "Harleen Kaur",
		Email:     "harleen@example.com",
		Role:      domainauth.RoleStudent,
		StudentID: studentID,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

func adminSession(id, userID string) *domainauth.Session {
	return &domainauth.Session{
		ID:        id,
		UserID:    userID,
		Name:      "Admin",
		Email:     "admin@example.com",
		Role:      domainauth.RoleAdmin,
		ExpiresAt: time.Now().Add(time.Hour),
	}
}

// addAuthCookies attaches the three auth cookies to a request.
func addAuthCookies(r *http.Request, sessionID, userID string, role domainauth.Role) {
	r.AddCookie(&http.Cookie{Name: CookieSession, Value: sessionID})
	if userID != "" {
		r.AddCookie(&http.Cookie{Name: CookieUserID, Value: userID})
	}
	if role != "" {
		r.AddCookie(&http.Cookie{Name: CookieRole, Value: string(role)})
	}
}

// withRequestSession attaches a derived request session directly, bypassing
// the middleware, for handler-level tests.
func withRequestSession(r *http.Request, rs domainauth.RequestSession) *http.Request {
	return r.WithContext(SetRequestSession(r.Context(), rs))
}

func authedRequestSession(s *domainauth.Session) domainauth.RequestSession {
	return domainauth.RequestSession{
		Authenticated: true,
		SessionID:     s.ID,
		UserID:        s.UserID,
		Role:          s.Role,
		Session:       s,
	}
}

func decodeBody(body []byte, dst any) error {
	return json.Unmarshal(body, dst)
}
