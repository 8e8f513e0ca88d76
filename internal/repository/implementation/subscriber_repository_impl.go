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
	"gorm.io/gorm/clause"
)

type SubscriberRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriberMapper
}

func NewSubscriberRepository(db *gorm.DB) contract.SubscriberRepository {
	return &SubscriberRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriberMapper(),
	}
}

func (r *SubscriberRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SubscriberRepositoryImpl) Upsert(ctx context.Context, subscriber *entity.Subscriber) error {
	m := r.mapper.ToModel(subscriber)
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"email", "stripe_customer_id", "subscribed", "subscription_tier", "subscription_end", "updated_at",
		}),
	}).Create(m).Error
	if err != nil {
		return err
	}
	*subscriber = *r.mapper.ToEntity(m)
	return nil
}

func (r *SubscriberRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscriber, error) {
	var m model.Subscriber
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubscriberRepositoryImpl) FindByStripeCustomerId(ctx context.Context, customerId string) (*entity.Subscriber, error) {
	var m model.Subscriber
	if err := r.db.WithContext(ctx).Where("stripe_customer_id = ?", customerId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SubscriberRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Subscriber{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SubscriberRepositoryImpl) UpdateStripeCustomerId(ctx context.Context, userId uuid.UUID, customerId string) error {
	return r.db.WithContext(ctx).Model(&model.Subscriber{}).
		Where("user_id = ?", userId).
		Update("stripe_customer_id", customerId).Error
}
