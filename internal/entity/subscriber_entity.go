package entity

import (
	"time"

	"github.com/google/uuid"
)

type SubscriptionTier string

const (
	SubscriptionTierFree    SubscriptionTier = "free"
	SubscriptionTierMonthly SubscriptionTier = "monthly"
	SubscriptionTierAnnual  SubscriptionTier = "annual"
)

// Subscriber is one row per user, upserted from Stripe webhook events.
type Subscriber struct {
	Id               uuid.UUID
	UserId           uuid.UUID
	Email            string
	StripeCustomerId *string
	Subscribed       bool
	SubscriptionTier SubscriptionTier
	SubscriptionEnd  *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
