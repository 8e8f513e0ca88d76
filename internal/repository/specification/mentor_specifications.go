package specification

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ByTemplateID struct {
	TemplateID string
}

func (s ByTemplateID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("template_id = ?", s.TemplateID)
}

type ByCategory struct {
	Category string
}

func (s ByCategory) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("category = ?", s.Category)
}

type OwnedByUser struct {
	UserID uuid.UUID
}

func (s OwnedByUser) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("owner_user_id = ?", s.UserID)
}
