package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	domainauth "github.com/gurmatacademy/portal/internal/domain/auth"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// AssistantHistoryService lists assistant conversation history.
type AssistantHistoryService interface {
	HistoryForStudent(ctx context.Context, studentID string) ([]*model.AssistantMessage, error)
	HistoryAll(ctx context.Context) ([]*model.AssistantMessage, error)
}

// AssistantHandlers serves the assistant message history endpoint.
type AssistantHandlers struct {
	Svc      AssistantHistoryService
	Resolver *StudentResolver
	Logger   *slog.Logger
}

func (h *AssistantHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// History returns conversation history scoped by the caller's role.
// GET /api/assistant/messages[?student_id=<id>].
//
// Students see only their own messages, filtered by the server-resolved
// student id, never by anything client-supplied. Admins see everything and
// may narrow to one student via the query parameter; the override is honored
// only because the admin role was already confirmed against the server-side
// session upstream.
func (h *AssistantHandlers) History(w http.ResponseWriter, r *http.Request) {
	rs, _ := GetRequestSession(r.Context())

	var (
		messages []*model.AssistantMessage
		err      error
	)
	switch {
	case rs.HasRole(domainauth.RoleAdmin):
		if override := r.URL.Query().Get("student_id"); override != "" {
			messages, err = h.Svc.HistoryForStudent(r.Context(), override)
		} else {
			messages, err = h.Svc.HistoryAll(r.Context())
		}
	case rs.HasRole(domainauth.RoleStudent):
		studentID, ok := h.Resolver.ResolveStudentID(r.Context(), r)
		if !ok {
			writeUnauthorized(w)
			return
		}
		messages, err = h.Svc.HistoryForStudent(r.Context(), studentID)
	default:
		writeUnauthorized(w)
		return
	}

	if err != nil {
		h.logger().ErrorContext(r.Context(), "listing assistant history failed", "error", err)
		WriteError(w, ErrorParams{
			Code:    http.StatusInternalServerError,
			ErrCode: "history_failed",
			Err:     errors.New("failed to list messages"),
		})
		return
	}

	if messages == nil {
		messages = []*model.AssistantMessage{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{"messages": messages})
}

// writeUnauthorized answers 401 with the uniform missing-credential body.
func writeUnauthorized(w http.ResponseWriter) {
	WriteError(w, ErrorParams{
		Code:    http.StatusUnauthorized,
		ErrCode: "authentication_required",
		Err:     errors.New("authentication required"),
	})
}
