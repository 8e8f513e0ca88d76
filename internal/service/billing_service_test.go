package service

import (
	"testing"

	"makementors-be/internal/entity"

	"github.com/stripe/stripe-go/v76"
)

func TestTierFromSubscription(t *testing.T) {
	s := &billingService{cfg: StripeConfig{
		MonthlyPriceId: "price_monthly",
		AnnualPriceId:  "price_annual",
	}}

	tests := []struct {
		name   string
		sub    *stripe.Subscription
		active bool
		want   entity.SubscriptionTier
	}{
		{
			name: "monthly price",
			sub: &stripe.Subscription{Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_monthly"}}},
			}},
			active: true,
			want:   entity.SubscriptionTierMonthly,
		},
		{
			name: "annual price",
			sub: &stripe.Subscription{Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_annual"}}},
			}},
			active: true,
			want:   entity.SubscriptionTierAnnual,
		},
		{
			name: "inactive subscription drops to free",
			sub: &stripe.Subscription{Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_monthly"}}},
			}},
			active: false,
			want:   entity.SubscriptionTierFree,
		},
		{
			name:   "payload without items",
			sub:    &stripe.Subscription{},
			active: true,
			want:   entity.SubscriptionTierFree,
		},
		{
			name:   "empty items list",
			sub:    &stripe.Subscription{Items: &stripe.SubscriptionItemList{}},
			active: true,
			want:   entity.SubscriptionTierFree,
		},
		{
			name: "item without price",
			sub: &stripe.Subscription{Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{}},
			}},
			active: true,
			want:   entity.SubscriptionTierFree,
		},
		{
			name: "unknown price",
			sub: &stripe.Subscription{Items: &stripe.SubscriptionItemList{
				Data: []*stripe.SubscriptionItem{{Price: &stripe.Price{ID: "price_other"}}},
			}},
			active: true,
			want:   entity.SubscriptionTierFree,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.tierFromSubscription(tt.sub, tt.active); got != tt.want {
				t.Errorf("tier = %q, want %q", got, tt.want)
			}
		})
	}
}
