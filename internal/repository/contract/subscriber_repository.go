package contract

import (
	"context"

	"makementors-be/internal/entity"
	"makementors-be/internal/repository/specification"

	"github.com/google/uuid"
)

type SubscriberRepository interface {
	// Upsert inserts or updates the single row keyed by user_id.
	Upsert(ctx context.Context, subscriber *entity.Subscriber) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscriber, error)
	FindByStripeCustomerId(ctx context.Context, customerId string) (*entity.Subscriber, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	UpdateStripeCustomerId(ctx context.Context, userId uuid.UUID, customerId string) error
}
