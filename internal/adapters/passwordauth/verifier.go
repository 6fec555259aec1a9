package passwordauth

// Package passwordauth verifies local email/password credentials against the
// users table. It is the production CredentialVerifier for password mode.

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/gurmatacademy/portal/internal/core"
	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
)

// ErrInvalidCredentials is returned for every verification failure. Callers
// must not learn whether the account exists or the password was wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Verifier checks credentials against stored bcrypt hashes.
// The returned identity carries the account's role as its sole group, so the
// standard role mapper applies unchanged in password mode.
type Verifier struct {
	users           core.UserRepository
	sessionDuration time.Duration
}

// NewVerifier constructs a Verifier. sessionDuration bounds the lifetime of
// identities it returns.
func NewVerifier(users core.UserRepository, sessionDuration time.Duration) (*Verifier, error) {
	if users == nil {
		return nil, errors.New("user repository is required")
	}
	if sessionDuration <= 0 {
		return nil, errors.New("session duration must be positive")
	}
	return &Verifier{users: users, sessionDuration: sessionDuration}, nil
}

func (v *Verifier) Verify(ctx context.Context, email, password string) (domainauth.Identity, error) {
	if email == "" || password == "" {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	user, err := v.users.GetByEmail(ctx, email)
	if err != nil {
		// Burn a comparison so unknown accounts cost the same as wrong passwords.
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	if compareErr := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); compareErr != nil {
		return domainauth.Identity{}, ErrInvalidCredentials
	}

	return domainauth.Identity{
		UserID:    user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Groups:    []string{string(user.Role)},
		ExpiresAt: time.Now().Add(v.sessionDuration),
	}, nil
}

// HashPassword produces a bcrypt hash for storage at account creation.
func HashPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, errors.New("password is required")
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// dummyHash is a valid bcrypt hash of an unguessable value, used to equalize
// timing between unknown-account and wrong-password failures.
var dummyHash = func() []byte {
	h, err := bcrypt.GenerateFromPassword([]byte("portal-dummy-credential"), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return h
}()
