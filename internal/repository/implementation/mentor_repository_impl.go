package implementation

import (
	"context"
	"errors"

	"makementors-be/internal/entity"
	"makementors-be/internal/mapper"
	"makementors-be/internal/model"
	"makementors-be/internal/repository/contract"
	"makementors-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MentorTemplateRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MentorMapper
}

func NewMentorTemplateRepository(db *gorm.DB) contract.MentorTemplateRepository {
	return &MentorTemplateRepositoryImpl{
		db:     db,
		mapper: mapper.NewMentorMapper(),
	}
}

func (r *MentorTemplateRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MentorTemplateRepositoryImpl) Create(ctx context.Context, template *entity.MentorTemplate) error {
	m := r.mapper.TemplateToModel(template)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*template = *r.mapper.TemplateToEntity(m)
	return nil
}

func (r *MentorTemplateRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentorTemplate, error) {
	var m model.MentorTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.TemplateToEntity(&m), nil
}

func (r *MentorTemplateRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorTemplate, error) {
	var models []*model.MentorTemplate
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.MentorTemplate, len(models))
	for i, m := range models {
		entities[i] = r.mapper.TemplateToEntity(m)
	}
	return entities, nil
}

func (r *MentorTemplateRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.MentorTemplate{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type MentorRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.MentorMapper
}

func NewMentorRepository(db *gorm.DB) contract.MentorRepository {
	return &MentorRepositoryImpl{
		db:     db,
		mapper: mapper.NewMentorMapper(),
	}
}

func (r *MentorRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *MentorRepositoryImpl) Create(ctx context.Context, mentor *entity.Mentor) error {
	m := r.mapper.MentorToModel(mentor)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*mentor = *r.mapper.MentorToEntity(m)
	return nil
}

func (r *MentorRepositoryImpl) Update(ctx context.Context, mentor *entity.Mentor) error {
	m := r.mapper.MentorToModel(mentor)
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MentorRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&model.Mentor{}, id).Error
}

func (r *MentorRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mentor, error) {
	var m model.Mentor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.MentorToEntity(&m), nil
}

func (r *MentorRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mentor, error) {
	var models []*model.Mentor
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.Mentor, len(models))
	for i, m := range models {
		entities[i] = r.mapper.MentorToEntity(m)
	}
	return entities, nil
}

func (r *MentorRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Mentor{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
