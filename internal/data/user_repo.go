package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/gurmatacademy/portal/internal/data/pgxutil"
	"github.com/gurmatacademy/portal/internal/domain/model"
	apperrors "github.com/gurmatacademy/portal/internal/errors"
)

// UserRepo provides database operations for application accounts.
type UserRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewUserRepo creates a new UserRepo with real time provider.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewUserRepoWithTimeProvider creates a new UserRepo with a custom time provider (useful for tests).
func NewUserRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *UserRepo {
	return &UserRepo{DB: db, timeProvider: tp}
}

// Create inserts a new account. The password hash is computed by the caller;
// the repo never sees plaintext credentials.
func (r *UserRepo) Create(
	ctx context.Context,
	req *model.CreateUserRequest,
	passwordHash []byte,
) (*model.User, error) {
	if req == nil {
		return nil, errors.New("create user request is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if len(passwordHash) == 0 {
		return nil, errors.New("password hash is required")
	}

	createdAt := r.timeProvider.Now().UTC()
	var out model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO users (
				email, name, role, student_id, password_hash, created_at
			) VALUES (
				$1, $2, $3, $4, $5, $6
			) RETURNING id, email, name, role, student_id, password_hash, created_at, updated_at
		`,
			strings.ToLower(strings.TrimSpace(req.Email)),
			strings.TrimSpace(req.Name),
			req.Role,
			req.StudentID,
			passwordHash,
			createdAt,
		)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, r.mapWriteErr(err)
	}
	return &out, nil
}

// GetByID retrieves an account by ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	return r.getByQuery(ctx, userGetByIDQuery, "failed to get user by ID", id)
}

// GetByEmail retrieves an account by email. The lookup is case-insensitive
// because emails are stored lowercased.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.getByQuery(
		ctx,
		userGetByEmailQuery,
		"failed to get user by email",
		strings.ToLower(strings.TrimSpace(email)),
	)
}

// GetStudentID returns the student_id attribute for the given account.
// An account without a student mapping yields (nil, nil); a missing account
// yields ErrUserNotFound.
func (r *UserRepo) GetStudentID(ctx context.Context, userID string) (*string, error) {
	var studentID *string
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		return conn.QueryRow(ctx, `SELECT student_id FROM users WHERE id = $1`, userID).
			Scan(&studentID)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get student mapping: %w", err)
	}
	return studentID, nil
}

// List retrieves accounts with pagination, newest first.
func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*model.User, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	var rowsOut []model.User
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, userListQuery, limit, offset)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.User])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	res := make([]*model.User, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

// Delete deletes an account by ID.
func (r *UserRepo) Delete(ctx context.Context, id string) (bool, error) {
	var rows int64
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		ct, err := conn.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return err
		}
		rows = ct.RowsAffected()
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete user: %w", err)
	}
	return rows > 0, nil
}

// --- helpers ---

const (
	userGetByIDQuery = `
		SELECT id, email, name, role, student_id, password_hash, created_at, updated_at
		FROM users
		WHERE id = $1`

	userGetByEmailQuery = `
		SELECT id, email, name, role, student_id, password_hash, created_at, updated_at
		FROM users
		WHERE email = $1`

	userListQuery = `
		SELECT id, email, name, role, student_id, password_hash, created_at, updated_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
)

func (r *UserRepo) getByQuery(
	ctx context.Context,
	q string,
	errMsg string,
	args ...any,
) (*model.User, error) {
	var user model.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		user, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.User])
		return err
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	return &user, nil
}

func (r *UserRepo) mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ErrUserEmailExists
	}
	return apperrors.MapDBError(err)
}
