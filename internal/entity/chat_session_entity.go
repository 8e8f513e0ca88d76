package entity

import (
	"time"

	"github.com/google/uuid"
)

// ChatSession is one persisted conversation thread between one user and one
// mentor. MentorId holds either a template id (string) or a custom mentor
// UUID rendered as text; MentorType tells the two apart. The id shape is
// never re-sniffed after session creation.
type ChatSession struct {
	Id         uuid.UUID
	UserId     uuid.UUID
	MentorId   string
	MentorType string
	Title      string
	CreatedAt  time.Time
	UpdatedAt  *time.Time
	DeletedAt  *time.Time
	IsDeleted  bool
}
