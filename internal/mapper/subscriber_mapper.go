package mapper

import (
	"makementors-be/internal/entity"
	"makementors-be/internal/model"
)

type SubscriberMapper struct{}

func NewSubscriberMapper() *SubscriberMapper {
	return &SubscriberMapper{}
}

func (m *SubscriberMapper) ToEntity(s *model.Subscriber) *entity.Subscriber {
	if s == nil {
		return nil
	}
	return &entity.Subscriber{
		Id:               s.Id,
		UserId:           s.UserId,
		Email:            s.Email,
		StripeCustomerId: s.StripeCustomerId,
		Subscribed:       s.Subscribed,
		SubscriptionTier: entity.SubscriptionTier(s.SubscriptionTier),
		SubscriptionEnd:  s.SubscriptionEnd,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}

func (m *SubscriberMapper) ToModel(s *entity.Subscriber) *model.Subscriber {
	if s == nil {
		return nil
	}
	return &model.Subscriber{
		Id:               s.Id,
		UserId:           s.UserId,
		Email:            s.Email,
		StripeCustomerId: s.StripeCustomerId,
		Subscribed:       s.Subscribed,
		SubscriptionTier: string(s.SubscriptionTier),
		SubscriptionEnd:  s.SubscriptionEnd,
		CreatedAt:        s.CreatedAt,
		UpdatedAt:        s.UpdatedAt,
	}
}
