package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatMessage is append-only, ordered by CreatedAt, owned by its session.
type ChatMessage struct {
	Id            uuid.UUID
	ChatSessionId uuid.UUID
	UserId        uuid.UUID
	Role          string
	Content       string
	CreatedAt     time.Time
	DeletedAt     *time.Time
	IsDeleted     bool
}
