package data

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/gurmatacademy/portal/internal/data/pgxutil"
	"github.com/gurmatacademy/portal/internal/domain/model"
	apperrors "github.com/gurmatacademy/portal/internal/errors"
)

// AssistantMessageRepo provides database operations for assistant conversation history.
type AssistantMessageRepo struct {
	DB           *sql.DB
	timeProvider TimeProvider
}

// NewAssistantMessageRepo creates a new AssistantMessageRepo with real time provider.
func NewAssistantMessageRepo(db *sql.DB) *AssistantMessageRepo {
	return &AssistantMessageRepo{DB: db, timeProvider: &RealTimeProvider{}}
}

// NewAssistantMessageRepoWithTimeProvider creates a new AssistantMessageRepo with a custom time provider.
func NewAssistantMessageRepoWithTimeProvider(db *sql.DB, tp TimeProvider) *AssistantMessageRepo {
	return &AssistantMessageRepo{DB: db, timeProvider: tp}
}

// Append inserts a message at the end of a student's conversation.
func (r *AssistantMessageRepo) Append(
	ctx context.Context,
	msg *model.AssistantMessage,
) (*model.AssistantMessage, error) {
	if msg == nil {
		return nil, errors.New("assistant message is required")
	}
	if msg.StudentID == "" {
		return nil, ErrMessageStudentRequired
	}
	if strings.TrimSpace(msg.Content) == "" {
		return nil, ErrMessageContentRequired
	}
	if !msg.Sender.Valid() {
		return nil, fmt.Errorf("invalid message sender: %q", msg.Sender)
	}

	var out model.AssistantMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO assistant_messages (student_id, sender, content, created_at)
			VALUES ($1, $2, $3, $4)
			RETURNING id, student_id, sender, content, created_at
		`, msg.StudentID, msg.Sender, msg.Content, r.timeProvider.Now().UTC())
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[model.AssistantMessage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to append assistant message: %w", apperrors.MapDBError(err))
	}
	return &out, nil
}

// ListByStudent retrieves a student's conversation in insertion order, oldest first.
func (r *AssistantMessageRepo) ListByStudent(
	ctx context.Context,
	studentID string,
) ([]*model.AssistantMessage, error) {
	if studentID == "" {
		return nil, ErrMessageStudentRequired
	}
	return r.list(ctx, assistantListByStudentQuery, studentID)
}

// ListAll retrieves every student's messages in insertion order, oldest first.
// Intended for the admin review surface.
func (r *AssistantMessageRepo) ListAll(ctx context.Context) ([]*model.AssistantMessage, error) {
	return r.list(ctx, assistantListAllQuery)
}

func (r *AssistantMessageRepo) list(
	ctx context.Context,
	q string,
	args ...any,
) ([]*model.AssistantMessage, error) {
	var rowsOut []model.AssistantMessage
	if err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, q, args...)
		if err != nil {
			return err
		}
		defer rows.Close()
		rowsOut, err = pgx.CollectRows(rows, pgx.RowToStructByName[model.AssistantMessage])
		return err
	}); err != nil {
		return nil, fmt.Errorf("failed to list assistant messages: %w", err)
	}

	res := make([]*model.AssistantMessage, len(rowsOut))
	for i := range rowsOut {
		res[i] = &rowsOut[i]
	}
	return res, nil
}

const (
	assistantListByStudentQuery = `
		SELECT id, student_id, sender, content, created_at
		FROM assistant_messages
		WHERE student_id = $1
		ORDER BY created_at ASC, id ASC`

	assistantListAllQuery = `
		SELECT id, student_id, sender, content, created_at
		FROM assistant_messages
		ORDER BY created_at ASC, id ASC`
)
