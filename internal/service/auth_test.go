package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	mocks "github.com/gurmatacademy/portal/internal/mocks/auth"
	"github.com/gurmatacademy/portal/internal/ports"
)

// mockSessionStore is a test helper for testing session store errors.
type mockSessionStore struct {
	saveFunc   func(context.Context, domainauth.Session) error
	getFunc    func(context.Context, string) (domainauth.Session, error)
	deleteFunc func(context.Context, string) error
}

func (m *mockSessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, sess)
	}
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, id)
	}
	return domainauth.Session{}, nil
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

// mockStudentLookup is a test helper for student mapping resolution.
type mockStudentLookup struct {
	mapping map[string]string
	err     error
}

func (m *mockStudentLookup) GetStudentID(_ context.Context, userID string) (*string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if id, ok := m.mapping[userID]; ok {
		return &id, nil
	}
	return nil, nil
}

func defaultRoles() mocks.StaticRoleMapper {
	return mocks.StaticRoleMapper{AdminGroup: "staff", StudentGroup: "students"}
}

func TestAuthService_BeginLogin_Success(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
	})

	result, err := service.BeginLogin(context.Background(), "http://localhost:8080/auth/callback")

	require.NoError(t, err)
	assert.Equal(t, "https://mock-idp/auth", result.AuthURL)
	assert.Equal(t, "state-1", result.State)
	assert.Equal(t, "nonce-1", result.Nonce)
}

func TestAuthService_BeginLogin_EmptyRedirectURL(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
	})

	_, err := service.BeginLogin(context.Background(), "")
	require.Error(t, err)
}

func TestAuthService_CompleteLogin_StudentWithMapping(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: sessions,
		Roles:    defaultRoles(),
		Students: &mockStudentLookup{mapping: map[string]string{"mock-user-1": "student-7"}},
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code:  "code",
		State: "state-1",
		Nonce: "nonce-1",
	})

	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStudent, result.Session.Role)
	assert.Equal(t, "student-7", result.Session.StudentID)
	assert.NotEmpty(t, result.Session.ID)

	stored, err := sessions.Get(context.Background(), result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, result.Session, stored)
}

func TestAuthService_CompleteLogin_AdminHasNoStudentMapping(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.DefaultUser = domainauth.Identity{
		UserID:    "admin-1",
		Name:      "Admin",
		Email:     "admin@example.com",
		Groups:    []string{"staff"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	service := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
		Students: &mockStudentLookup{mapping: map[string]string{"admin-1": "should-not-be-used"}},
	})

	result, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "s", Nonce: "n",
	})

	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleAdmin, result.Session.Role)
	assert.Empty(t, result.Session.StudentID)
}

func TestAuthService_CompleteLogin_UnknownGroupsDenied(t *testing.T) {
	provider := mocks.NewMockAuthProvider()
	provider.DefaultUser = domainauth.Identity{
		UserID:    "outsider",
		Email:     "outsider@example.com",
		Groups:    []string{"parents"},
		ExpiresAt: time.Now().Add(time.Hour),
	}

	service := NewAuthService(AuthServiceOptions{
		Provider: provider,
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
	})

	_, err := service.CompleteLogin(context.Background(), CompleteLoginInput{
		Code: "code", State: "s", Nonce: "n",
	})

	assert.ErrorIs(t, err, ErrNoRoleAssigned)
}

func TestAuthService_CompleteLogin_MissingParams(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
	})

	tests := []struct {
		name  string
		input CompleteLoginInput
	}{
		{"missing code", CompleteLoginInput{State: "s", Nonce: "n"}},
		{"missing state", CompleteLoginInput{Code: "c", Nonce: "n"}},
		{"missing nonce", CompleteLoginInput{Code: "c", State: "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.CompleteLogin(context.Background(), tt.input)
			require.Error(t, err)
		})
	}
}

func TestAuthService_CompleteLogin_SaveFailure(t *testing.T) {
	sessions := &mockSessionStore{
		saveFunc: func(context.Context, domainauth.Session) error {
			return errors.New("redis down")
		},
	}

	service := NewAuthService(AuthServiceOptions{
		Provider: mocks.NewMockAuthProvider(),
		Sessions: sessions,
		Roles:    defaultRoles(),
	})

	_, err := service.CompleteLogin(context.Background(), CompleteLoginInput{Code: "c", State: "s", Nonce: "n"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "save session")
}

func TestAuthService_PasswordLogin_Success(t *testing.T) {
	verifier := &mocks.MockCredentialVerifier{
		Email:    "harleen@example.com",
		Password: "s3cret",
		Identity: domainauth.Identity{
			UserID: "user-1",
			Name:   "Harleen Kaur",
			Email:  "harleen@example.com",
			Groups: []string{"students"},
		},
	}

	service := NewAuthService(AuthServiceOptions{
		Credentials: verifier,
		Sessions:    mocks.NewMemorySessionStore(),
		Roles:       defaultRoles(),
		Students:    &mockStudentLookup{mapping: map[string]string{"user-1": "student-1"}},
	})

	result, err := service.PasswordLogin(context.Background(), "harleen@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, domainauth.RoleStudent, result.Session.Role)
	assert.Equal(t, "student-1", result.Session.StudentID)
}

func TestAuthService_PasswordLogin_InvalidCredentials(t *testing.T) {
	verifier := &mocks.MockCredentialVerifier{Email: "a@b.c", Password: "right"}

	service := NewAuthService(AuthServiceOptions{
		Credentials: verifier,
		Sessions:    mocks.NewMemorySessionStore(),
		Roles:       defaultRoles(),
	})

	_, err := service.PasswordLogin(context.Background(), "a@b.c", "wrong")
	require.Error(t, err)
	assert.ErrorIs(t, err, mocks.ErrInvalidCredentials)
}

func TestAuthService_PasswordLogin_NotConfigured(t *testing.T) {
	service := NewAuthService(AuthServiceOptions{
		Sessions: mocks.NewMemorySessionStore(),
		Roles:    defaultRoles(),
	})

	_, err := service.PasswordLogin(context.Background(), "a@b.c", "pw")
	require.Error(t, err)
}

func TestAuthService_GetSession(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{Sessions: sessions, Roles: defaultRoles()})

	sess := domainauth.Session{
		ID:        "sess-1",
		UserID:    "user-1",
		Role:      domainauth.RoleStudent,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, sessions.Save(context.Background(), sess))

	got, err := service.GetSession(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Equal(t, sess, *got)
}

func TestAuthService_GetSession_Expired(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{Sessions: sessions, Roles: defaultRoles()})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "sess-old",
		ExpiresAt: time.Now().Add(time.Second),
	}))
	// Force expiry without sleeping by rewriting the stored session.
	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "sess-old",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	_, err := service.GetSession(context.Background(), "sess-old")
	require.Error(t, err)

	// Expired session was cleaned up.
	_, err = sessions.Get(context.Background(), "sess-old")
	assert.ErrorIs(t, err, mocks.ErrNotFound)
}

func TestAuthService_Logout(t *testing.T) {
	sessions := mocks.NewMemorySessionStore()
	service := NewAuthService(AuthServiceOptions{Sessions: sessions, Roles: defaultRoles()})

	require.NoError(t, sessions.Save(context.Background(), domainauth.Session{
		ID:        "sess-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}))

	require.NoError(t, service.Logout(context.Background(), "sess-1"))

	_, err := sessions.Get(context.Background(), "sess-1")
	assert.ErrorIs(t, err, mocks.ErrNotFound)

	// Logging out an empty session ID is a no-op.
	assert.NoError(t, service.Logout(context.Background(), ""))
}

// Compile-time check: the provider port shape used by BeginLogin.
var _ ports.AuthProvider = (*mocks.MockAuthProvider)(nil)
