//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

import (
	"strings"
	"time"
)

// MessageSender identifies who produced an assistant conversation message.
type MessageSender string

const (
	SenderStudent   MessageSender = "student"
	SenderAssistant MessageSender = "assistant"
)

// Valid reports whether the sender is supported.
func (s MessageSender) Valid() bool {
	switch s {
	case SenderStudent, SenderAssistant:
		return true
	default:
		return false
	}
}

// ParseMessageSender normalizes a sender string and reports whether it is supported.
func ParseMessageSender(value string) (MessageSender, bool) {
	s := MessageSender(strings.ToLower(strings.TrimSpace(value)))
	if s.Valid() {
		return s, true
	}
	return "", false
}

// AssistantMessage is one entry in a student's assistant conversation history.
// History listings are ordered by insertion time, oldest first.
type AssistantMessage struct {
	ID        string        `json:"id"         db:"id"`
	StudentID string        `json:"student_id" db:"student_id"`
	Sender    MessageSender `json:"sender"     db:"sender"`
	Content   string        `json:"content"    db:"content"`
	CreatedAt time.Time     `json:"created_at" db:"created_at"`
}
