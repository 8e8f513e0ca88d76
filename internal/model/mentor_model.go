package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorTemplate struct {
	TemplateId       string    `gorm:"type:varchar(255);primaryKey"`
	DisplayName      string    `gorm:"type:varchar(255);not null"`
	Category         string    `gorm:"type:varchar(100);not null;index"`
	Description      string    `gorm:"type:text"`
	Icon             string    `gorm:"type:varchar(100)"`
	SystemPromptBase string    `gorm:"type:text;not null"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
}

func (MentorTemplate) TableName() string {
	return "mentor_templates"
}

type Mentor struct {
	Id           uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OwnerUserId  uuid.UUID      `gorm:"type:uuid;not null;index"`
	Name         string         `gorm:"type:varchar(255);not null"`
	Description  string         `gorm:"type:text"`
	Color        string         `gorm:"type:varchar(50)"`
	Icon         string         `gorm:"type:varchar(100)"`
	SystemPrompt string         `gorm:"type:text;not null"`
	CreatedAt    time.Time      `gorm:"autoCreateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Mentor) TableName() string {
	return "mentors"
}
