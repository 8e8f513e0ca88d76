package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByChatSessionID struct {
	ChatSessionID uuid.UUID
}

func (s ByChatSessionID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("chat_session_id = ?", s.ChatSessionID)
}

type ByMentor struct {
	MentorId   string
	MentorType string
}

func (s ByMentor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("mentor_id = ? AND mentor_type = ?", s.MentorId, s.MentorType)
}

type ByRole struct {
	Role string
}

func (s ByRole) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("role = ?", s.Role)
}
