package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"makementors-be/internal/dto"
	"makementors-be/internal/entity"
	"makementors-be/internal/repository/specification"
	"makementors-be/internal/repository/unitofwork"

	"makementors-be/pkg/events"
	pktNats "makementors-be/pkg/nats" // Renamed to avoid collision

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v76"
	portalsession "github.com/stripe/stripe-go/v76/billingportal/session"
	checkoutsession "github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/customer"
	"github.com/stripe/stripe-go/v76/subscription"
	"github.com/stripe/stripe-go/v76/webhook"
)

// StripeConfig carries the keys and price ids the billing service needs.
type StripeConfig struct {
	SecretKey      string
	WebhookSecret  string
	MonthlyPriceId string
	AnnualPriceId  string
	SuccessURL     string
	CancelURL      string
	PortalReturn   string
}

type IBillingService interface {
	CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error)
	CustomerPortal(ctx context.Context, userId uuid.UUID) (*dto.CustomerPortalResponse, error)
	CheckSubscription(ctx context.Context, userId uuid.UUID) (*dto.CheckSubscriptionResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type billingService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	cfg            StripeConfig
}

func NewBillingService(uowFactory unitofwork.RepositoryFactory, eventPublisher *pktNats.Publisher, cfg StripeConfig) IBillingService {
	stripe.Key = cfg.SecretKey
	return &billingService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		cfg:            cfg,
	}
}

func (s *billingService) priceForTier(tier string) (string, error) {
	switch tier {
	case string(entity.SubscriptionTierMonthly):
		return s.cfg.MonthlyPriceId, nil
	case string(entity.SubscriptionTierAnnual):
		return s.cfg.AnnualPriceId, nil
	}
	return "", errors.New("unknown subscription tier")
}

func (s *billingService) tierForPrice(priceId string) entity.SubscriptionTier {
	switch priceId {
	case s.cfg.MonthlyPriceId:
		return entity.SubscriptionTierMonthly
	case s.cfg.AnnualPriceId:
		return entity.SubscriptionTierAnnual
	}
	return entity.SubscriptionTierFree
}

// tierFromSubscription derives the tier from the subscription's first
// price. Webhook payloads may omit the items list entirely.
func (s *billingService) tierFromSubscription(stripeSub *stripe.Subscription, active bool) entity.SubscriptionTier {
	if !active || stripeSub.Items == nil || len(stripeSub.Items.Data) == 0 || stripeSub.Items.Data[0].Price == nil {
		return entity.SubscriptionTierFree
	}
	return s.tierForPrice(stripeSub.Items.Data[0].Price.ID)
}

// ensureCustomer returns the user's Stripe customer id, creating the
// customer on first use and remembering it on the subscriber row.
func (s *billingService) ensureCustomer(ctx context.Context, uow unitofwork.UnitOfWork, userId uuid.UUID) (string, string, error) {
	user, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", errors.New("user not found")
	}

	sub, err := uow.SubscriberRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return "", "", err
	}
	if sub != nil && sub.StripeCustomerId != nil && *sub.StripeCustomerId != "" {
		return *sub.StripeCustomerId, user.Email, nil
	}

	cust, err := customer.New(&stripe.CustomerParams{
		Email: stripe.String(user.Email),
		Name:  stripe.String(user.FullName),
		Metadata: map[string]string{
			"user_id": userId.String(),
		},
	})
	if err != nil {
		return "", "", err
	}

	if sub == nil {
		err = uow.SubscriberRepository().Upsert(ctx, &entity.Subscriber{
			Id:               uuid.New(),
			UserId:           userId,
			Email:            user.Email,
			StripeCustomerId: &cust.ID,
			Subscribed:       false,
			SubscriptionTier: entity.SubscriptionTierFree,
		})
	} else {
		err = uow.SubscriberRepository().UpdateStripeCustomerId(ctx, userId, cust.ID)
	}
	if err != nil {
		return "", "", err
	}
	return cust.ID, user.Email, nil
}

func (s *billingService) CreateCheckout(ctx context.Context, userId uuid.UUID, req *dto.CreateCheckoutRequest) (*dto.CreateCheckoutResponse, error) {
	priceId, err := s.priceForTier(req.Tier)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	customerId, _, err := s.ensureCustomer(ctx, uow, userId)
	if err != nil {
		return nil, err
	}

	sess, err := checkoutsession.New(&stripe.CheckoutSessionParams{
		Mode:     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		Customer: stripe.String(customerId),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(priceId),
				Quantity: stripe.Int64(1),
			},
		},
		ClientReferenceID: stripe.String(userId.String()),
		SuccessURL:        stripe.String(s.cfg.SuccessURL),
		CancelURL:         stripe.String(s.cfg.CancelURL),
		Metadata: map[string]string{
			"user_id": userId.String(),
			"tier":    req.Tier,
		},
	})
	if err != nil {
		return nil, err
	}

	return &dto.CreateCheckoutResponse{Url: sess.URL}, nil
}

func (s *billingService) CustomerPortal(ctx context.Context, userId uuid.UUID) (*dto.CustomerPortalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriberRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.StripeCustomerId == nil || *sub.StripeCustomerId == "" {
		return nil, errors.New("no billing account for this user")
	}

	sess, err := portalsession.New(&stripe.BillingPortalSessionParams{
		Customer:  stripe.String(*sub.StripeCustomerId),
		ReturnURL: stripe.String(s.cfg.PortalReturn),
	})
	if err != nil {
		return nil, err
	}

	return &dto.CustomerPortalResponse{Url: sess.URL}, nil
}

func (s *billingService) CheckSubscription(ctx context.Context, userId uuid.UUID) (*dto.CheckSubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriberRepository().FindOne(ctx, specification.UserOwnedBy{UserID: userId})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.CheckSubscriptionResponse{
			Subscribed:       false,
			SubscriptionTier: string(entity.SubscriptionTierFree),
		}, nil
	}

	subscribed := sub.Subscribed
	if subscribed && sub.SubscriptionEnd != nil && sub.SubscriptionEnd.Before(time.Now()) {
		// The webhook for the lapse may not have arrived yet.
		subscribed = false
	}

	return &dto.CheckSubscriptionResponse{
		Subscribed:       subscribed,
		SubscriptionTier: string(sub.SubscriptionTier),
		SubscriptionEnd:  sub.SubscriptionEnd,
	}, nil
}

// HandleWebhook verifies the Stripe signature and applies the event to
// the subscriber row. Unknown event types are acknowledged silently.
func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
	if err != nil {
		return errors.New("invalid webhook signature")
	}

	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return err
		}
		return s.applyCheckoutCompleted(ctx, &sess)

	case "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return err
		}
		return s.applySubscriptionChange(ctx, &sub)
	}

	return nil
}

func (s *billingService) applyCheckoutCompleted(ctx context.Context, sess *stripe.CheckoutSession) error {
	userId, err := uuid.Parse(sess.ClientReferenceID)
	if err != nil {
		return errors.New("checkout session missing user reference")
	}

	tier := entity.SubscriptionTier(sess.Metadata["tier"])
	if tier != entity.SubscriptionTierMonthly && tier != entity.SubscriptionTierAnnual {
		tier = entity.SubscriptionTierMonthly
	}

	var subscriptionEnd *time.Time
	if sess.Subscription != nil {
		if stripeSub, err := subscription.Get(sess.Subscription.ID, nil); err == nil {
			end := time.Unix(stripeSub.CurrentPeriodEnd, 0)
			subscriptionEnd = &end
		}
	}

	var customerId *string
	if sess.Customer != nil {
		customerId = &sess.Customer.ID
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	err = uow.SubscriberRepository().Upsert(ctx, &entity.Subscriber{
		Id:               uuid.New(),
		UserId:           userId,
		Email:            sess.CustomerEmail,
		StripeCustomerId: customerId,
		Subscribed:       true,
		SubscriptionTier: tier,
		SubscriptionEnd:  subscriptionEnd,
	})
	if err != nil {
		return err
	}

	s.publishSubscriptionUpdated(ctx, userId, string(tier), true)
	return nil
}

func (s *billingService) applySubscriptionChange(ctx context.Context, stripeSub *stripe.Subscription) error {
	if stripeSub.Customer == nil {
		return errors.New("subscription event missing customer")
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriberRepository().FindByStripeCustomerId(ctx, stripeSub.Customer.ID)
	if err != nil {
		return err
	}
	if sub == nil {
		// Customer created outside this app; nothing to update.
		return nil
	}

	active := stripeSub.Status == stripe.SubscriptionStatusActive ||
		stripeSub.Status == stripe.SubscriptionStatusTrialing

	tier := s.tierFromSubscription(stripeSub, active)

	end := time.Unix(stripeSub.CurrentPeriodEnd, 0)

	sub.Subscribed = active
	sub.SubscriptionTier = tier
	sub.SubscriptionEnd = &end
	if err := uow.SubscriberRepository().Upsert(ctx, sub); err != nil {
		return err
	}

	s.publishSubscriptionUpdated(ctx, sub.UserId, string(tier), active)
	return nil
}

func (s *billingService) publishSubscriptionUpdated(ctx context.Context, userId uuid.UUID, tier string, subscribed bool) {
	if s.eventPublisher == nil {
		return
	}
	_ = s.eventPublisher.Publish(ctx, events.NewSubscriptionUpdatedEvent(userId.String(), tier, subscribed))
}
