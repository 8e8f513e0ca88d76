package dto

import (
	"time"
)

// --- Stripe checkout / portal ---

type CreateCheckoutRequest struct {
	Tier string `json:"tier" validate:"required,oneof=monthly annual"`
}

type CreateCheckoutResponse struct {
	Url string `json:"url"`
}

type CustomerPortalResponse struct {
	Url string `json:"url"`
}

// CheckSubscriptionResponse mirrors what the frontend polls after
// returning from checkout.
type CheckSubscriptionResponse struct {
	Subscribed       bool       `json:"subscribed"`
	SubscriptionTier string     `json:"subscription_tier"`
	SubscriptionEnd  *time.Time `json:"subscription_end,omitempty"`
}
