package mapper

import (
	"time"

	"makementors-be/internal/entity"
	"makementors-be/internal/model"

	"gorm.io/gorm"
)

type MentorMapper struct{}

func NewMentorMapper() *MentorMapper {
	return &MentorMapper{}
}

func (m *MentorMapper) TemplateToEntity(t *model.MentorTemplate) *entity.MentorTemplate {
	if t == nil {
		return nil
	}
	return &entity.MentorTemplate{
		TemplateId:       t.TemplateId,
		DisplayName:      t.DisplayName,
		Category:         t.Category,
		Description:      t.Description,
		Icon:             t.Icon,
		SystemPromptBase: t.SystemPromptBase,
		CreatedAt:        t.CreatedAt,
	}
}

func (m *MentorMapper) TemplateToModel(t *entity.MentorTemplate) *model.MentorTemplate {
	if t == nil {
		return nil
	}
	return &model.MentorTemplate{
		TemplateId:       t.TemplateId,
		DisplayName:      t.DisplayName,
		Category:         t.Category,
		Description:      t.Description,
		Icon:             t.Icon,
		SystemPromptBase: t.SystemPromptBase,
		CreatedAt:        t.CreatedAt,
	}
}

func (m *MentorMapper) MentorToEntity(mm *model.Mentor) *entity.Mentor {
	if mm == nil {
		return nil
	}

	var deletedAt *time.Time
	if mm.DeletedAt.Valid {
		t := mm.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Mentor{
		Id:           mm.Id,
		OwnerUserId:  mm.OwnerUserId,
		Name:         mm.Name,
		Description:  mm.Description,
		Color:        mm.Color,
		Icon:         mm.Icon,
		SystemPrompt: mm.SystemPrompt,
		CreatedAt:    mm.CreatedAt,
		DeletedAt:    deletedAt,
		IsDeleted:    mm.DeletedAt.Valid,
	}
}

func (m *MentorMapper) MentorToModel(e *entity.Mentor) *model.Mentor {
	if e == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if e.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *e.DeletedAt, Valid: true}
	} else if e.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Mentor{
		Id:           e.Id,
		OwnerUserId:  e.OwnerUserId,
		Name:         e.Name,
		Description:  e.Description,
		Color:        e.Color,
		Icon:         e.Icon,
		SystemPrompt: e.SystemPrompt,
		CreatedAt:    e.CreatedAt,
		DeletedAt:    deletedAt,
	}
}
