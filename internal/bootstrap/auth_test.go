package bootstrap

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/gurmatacademy/portal/config"
	"github.com/gurmatacademy/portal/internal/domain/model"
	"github.com/gurmatacademy/portal/internal/testutil"
)

type stubUserRepo struct{}

func (stubUserRepo) Create(_ context.Context, _ *model.CreateUserRequest, _ []byte) (*model.User, error) {
	return nil, nil
}

func (stubUserRepo) GetByID(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (stubUserRepo) GetByEmail(_ context.Context, _ string) (*model.User, error) {
	return nil, nil
}

func (stubUserRepo) GetStudentID(_ context.Context, _ string) (*string, error) {
	return nil, nil
}

func TestBuildAuthServiceReturnsNilWithoutRedis(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name string
		auth config.AuthConfig
	}{
		{
			name: "password mode",
			auth: config.AuthConfig{
				Mode:            config.AuthModePassword,
				SessionDuration: 12 * time.Hour,
			},
		},
		{
			name: "dev auth mode",
			auth: config.AuthConfig{
				Mode:         config.AuthModeMock,
				AdminGroup:   "staff",
				StudentGroup: "students",
				DevAuth: config.DevAuthConfig{
					UserID: "dev",
					Email:  "dev@example.com",
					Groups: []string{"staff"},
				},
			},
		},
		{
			name: "oauth mode",
			auth: config.AuthConfig{
				Mode:         config.AuthModeOAuth,
				AdminGroup:   "staff",
				StudentGroup: "students",
				OAuth: config.OAuthConfig{
					ClientID:     "client-id",
					ClientSecret: "client-secret",
					DiscoveryURL: "https://issuer.example.com",
					RedirectURL:  "https://portal.example.com/auth/callback",
					Scope:        "openid",
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := AuthConfig{
				Auth:        tt.auth,
				Users:       stubUserRepo{},
				RedisClient: nil,
				Logger:      logger,
			}

			if svc := BuildAuthService(cfg); svc != nil {
				t.Fatalf("BuildAuthService() = %v, want nil", svc)
			}
		})
	}
}

func TestBuildAuthServicePasswordMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode:            config.AuthModePassword,
			SessionDuration: 12 * time.Hour,
		},
		Users:       stubUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc == nil {
		t.Fatal("BuildAuthService() = nil, want service")
	}

	// Password mode without a user repository cannot verify anything.
	cfg.Users = nil
	if svc := BuildAuthService(cfg); svc != nil {
		t.Fatalf("BuildAuthService() without users = %v, want nil", svc)
	}
}

func TestBuildAuthServiceMockMode(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode:         config.AuthModeMock,
			AdminGroup:   "staff",
			StudentGroup: "students",
			DevAuth: config.DevAuthConfig{
				UserID: "dev",
				Email:  "dev@example.com",
				Groups: []string{"staff"},
			},
		},
		Users:       stubUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc == nil {
		t.Fatal("BuildAuthService() = nil, want service")
	}
}

func TestBuildAuthServiceOAuthIncomplete(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })

	cfg := AuthConfig{
		Auth: config.AuthConfig{
			Mode: config.AuthModeOAuth,
			OAuth: config.OAuthConfig{
				ClientID: "client-id",
				// no secret or discovery URL
			},
		},
		Users:       stubUserRepo{},
		RedisClient: client,
		Logger:      logger,
	}

	if svc := BuildAuthService(cfg); svc != nil {
		t.Fatalf("BuildAuthService() with incomplete oauth config = %v, want nil", svc)
	}
}
