package contract

import (
	"context"

	"makementors-be/internal/entity"
	"makementors-be/internal/repository/specification"

	"github.com/google/uuid"
)

// MentorTemplateRepository reads the seeded persona catalog. Templates are
// immutable at runtime; Create exists for the seeder only.
type MentorTemplateRepository interface {
	Create(ctx context.Context, template *entity.MentorTemplate) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.MentorTemplate, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.MentorTemplate, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}

type MentorRepository interface {
	Create(ctx context.Context, mentor *entity.Mentor) error
	Update(ctx context.Context, mentor *entity.Mentor) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Mentor, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Mentor, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
