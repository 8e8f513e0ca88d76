package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Streamed relay contract ---
//
// The relay endpoint keeps camelCase field names because the frontend
// client sends them that way; everything else in this package follows
// the usual snake_case convention.

type ChatMessageDTO struct {
	Id      string `json:"id,omitempty"`
	Role    string `json:"role" validate:"required,oneof=user assistant system"`
	Content string `json:"content" validate:"required"`
}

type StreamChatRequest struct {
	Messages        []ChatMessageDTO    `json:"messages" validate:"required,min=1,dive"`
	UserPreferences *ChatPreferencesDTO `json:"userPreferences"`
	MentorId        string              `json:"mentorId" validate:"required"`
	UserId          string              `json:"userId"`
	ChatSessionId   string              `json:"chatSessionId"`
	Stream          bool                `json:"stream"`
}

// StreamChunk is one SSE event payload. Content carries the cumulative
// text so far, not just the latest delta, so the client render-replaces.
type StreamChunk struct {
	Content   string `json:"content"`
	SessionId string `json:"sessionId,omitempty"`
	Warning   string `json:"warning,omitempty"`
	Done      bool   `json:"done,omitempty"`
}

// StreamChatResponse is the non-streaming fallback body.
type StreamChatResponse struct {
	Response  string `json:"response"`
	SessionId string `json:"sessionId,omitempty"`
	Warning   string `json:"warning,omitempty"`
}

// --- Session management ---

type CreateSessionRequest struct {
	MentorId string `json:"mentor_id" validate:"required"`
	Title    string `json:"title"`
}

type CreateSessionResponse struct {
	Id uuid.UUID `json:"id"`
}

type GetAllSessionsResponse struct {
	Id         uuid.UUID  `json:"id"`
	MentorId   string     `json:"mentor_id"`
	MentorType string     `json:"mentor_type"`
	Title      string     `json:"title"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  *time.Time `json:"updated_at"`
}

type GetChatHistoryResponse struct {
	Id        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type RenameSessionRequest struct {
	ChatSessionId uuid.UUID `json:"chat_session_id" validate:"required"`
	Title         string    `json:"title" validate:"required,min=1,max=200"`
}

// ChatCompletedMessage is the queue payload emitted after an assistant
// reply is persisted; the titling worker consumes it.
type ChatCompletedMessage struct {
	ChatSessionId uuid.UUID `json:"chat_session_id"`
	UserId        uuid.UUID `json:"user_id"`
	UserText      string    `json:"user_text"`
	AssistantText string    `json:"assistant_text"`
}
