package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gurmatacademy/portal/internal/core"
	"github.com/gurmatacademy/portal/internal/domain/model"
)

// AssistantService manages the AI-assistant conversation history.
// Authorization happens at the HTTP layer; this service only enforces data
// validity and ownership-scoped access paths.
type AssistantService struct {
	messages core.AssistantMessageRepository
}

// NewAssistantService constructs a new AssistantService.
func NewAssistantService(messages core.AssistantMessageRepository) *AssistantService {
	return &AssistantService{messages: messages}
}

// HistoryForStudent returns one student's conversation, oldest first.
func (s *AssistantService) HistoryForStudent(ctx context.Context, studentID string) ([]*model.AssistantMessage, error) {
	if studentID == "" {
		return nil, errors.New("student ID is required")
	}
	msgs, err := s.messages.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return msgs, nil
}

// HistoryAll returns every student's messages, oldest first. Admin surface only.
func (s *AssistantService) HistoryAll(ctx context.Context) ([]*model.AssistantMessage, error) {
	msgs, err := s.messages.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all history: %w", err)
	}
	return msgs, nil
}

// Record appends a message to a student's conversation.
func (s *AssistantService) Record(ctx context.Context, studentID string, sender model.MessageSender, content string) (*model.AssistantMessage, error) {
	if studentID == "" {
		return nil, errors.New("student ID is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, errors.New("message content is required")
	}
	if !sender.Valid() {
		return nil, fmt.Errorf("invalid sender: %q", sender)
	}

	msg, err := s.messages.Append(ctx, &model.AssistantMessage{
		StudentID: studentID,
		Sender:    sender,
		Content:   content,
	})
	if err != nil {
		return nil, fmt.Errorf("append message: %w", err)
	}
	return msg, nil
}
