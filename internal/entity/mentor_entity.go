package entity

import (
	"time"

	"github.com/google/uuid"
)

// MentorTemplate is an administrator-defined persona catalog entry.
// Templates are seeded, immutable, and read-only to end users. Their ids are
// human-readable strings (e.g. "crypto_day_trader_wyckoff_ta"), a separate
// identifier space from custom mentor UUIDs.
type MentorTemplate struct {
	TemplateId       string
	DisplayName      string
	Category         string
	Description      string
	Icon             string
	SystemPromptBase string
	CreatedAt        time.Time
}

// Mentor is a user-authored persona, visible only to its creator.
type Mentor struct {
	Id           uuid.UUID
	OwnerUserId  uuid.UUID
	Name         string
	Description  string
	Color        string
	Icon         string
	SystemPrompt string
	CreatedAt    time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
