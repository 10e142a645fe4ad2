package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/stripe/stripe-go/v79"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/pkg/crypto"
	"auto-concierge.backend/pkg/logger"
	"auto-concierge.backend/pkg/mailer"
)

const (
	// DefaultTrialDays applies when Stripe reports no trial end
	DefaultTrialDays = 14
	// sequentialIDRetries bounds the DEALER-nnnn collision loop
	sequentialIDRetries = 50
)

// BillingUsecase reconciles Stripe webhook events into dealer profiles.
// Every handler is idempotent: replayed events find the state they would
// have written and change nothing.
type BillingUsecase struct {
	dealerRepo repositories.DealerRepository
	mail       mailer.Mailer
}

// NewBillingUsecase creates a new billing usecase
func NewBillingUsecase(dealerRepo repositories.DealerRepository, mail mailer.Mailer) *BillingUsecase {
	return &BillingUsecase{dealerRepo: dealerRepo, mail: mail}
}

// HandleEvent dispatches a verified Stripe event
func (u *BillingUsecase) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch string(event.Type) {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
			return domainerrors.BadRequest("malformed checkout session payload")
		}
		return u.handleCheckoutCompleted(ctx, &session)
	case "customer.subscription.created", "customer.subscription.updated", "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return domainerrors.BadRequest("malformed subscription payload")
		}
		return u.handleSubscriptionChanged(ctx, &sub)
	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return domainerrors.BadRequest("malformed invoice payload")
		}
		return u.handlePaymentFailed(ctx, &invoice)
	default:
		logger.Debug(ctx, "ignoring billing event", zap.String("type", string(event.Type)))
		return nil
	}
}

// handleCheckoutCompleted links a completed checkout to an existing profile
// or provisions a brand-new dealer with a sequential id
func (u *BillingUsecase) handleCheckoutCompleted(ctx context.Context, session *stripe.CheckoutSession) error {
	customerID := ""
	if session.Customer != nil {
		customerID = session.Customer.ID
	}
	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}
	if customerID == "" && subscriptionID == "" {
		return domainerrors.BadRequest("checkout session carries no customer or subscription")
	}

	dealer, err := u.findByBillingIDs(ctx, customerID, subscriptionID)
	if err != nil {
		return err
	}
	if dealer != nil {
		// Replay or pre-provisioned profile: just make sure the ids stick
		changed := false
		if customerID != "" && dealer.StripeCustomerID.String != customerID {
			dealer.StripeCustomerID = null.StringFrom(customerID)
			changed = true
		}
		if subscriptionID != "" && dealer.StripeSubscriptionID.String != subscriptionID {
			dealer.StripeSubscriptionID = null.StringFrom(subscriptionID)
			changed = true
		}
		if !changed {
			return nil
		}
		return u.dealerRepo.Update(ctx, dealer)
	}

	return u.provisionDealer(ctx, session, customerID, subscriptionID)
}

func (u *BillingUsecase) provisionDealer(ctx context.Context, session *stripe.CheckoutSession, customerID, subscriptionID string) error {
	name := "New Dealer"
	email := ""
	if session.CustomerDetails != nil {
		if session.CustomerDetails.Name != "" {
			name = session.CustomerDetails.Name
		}
		email = session.CustomerDetails.Email
	}

	passcode, err := crypto.GeneratePasscode()
	if err != nil {
		return err
	}
	hash, err := crypto.HashPasscode(passcode)
	if err != nil {
		return err
	}

	dealer := &entities.Dealer{
		Name:                     name,
		Status:                   entities.DealerStatusActive,
		Email:                    optString(email),
		PasscodeHash:             hash,
		TrialEndsAt:              null.TimeFrom(time.Now().AddDate(0, 0, DefaultTrialDays)),
		StripeCustomerID:         optString(customerID),
		StripeSubscriptionID:     optString(subscriptionID),
		StripeSubscriptionStatus: null.StringFrom(entities.SubscriptionStatusTrialing),
	}

	if err := u.createWithSequentialID(ctx, dealer); err != nil {
		return err
	}
	logger.Info(ctx, "provisioned dealer from checkout", zap.String("dealerId", dealer.DealerID))

	if dealer.Email.Valid {
		go func(to, dealerID, passcode string) {
			if err := u.mail.SendWelcomeEmail(to, dealerID, passcode); err != nil {
				logger.Error(context.Background(), "failed to send welcome email", zap.String("dealerId", dealerID), zap.Error(err))
			}
		}(dealer.Email.String, dealer.DealerID, passcode)
	}
	return nil
}

// createWithSequentialID assigns the next DEALER-nnnn id, stepping over
// collisions from concurrent provisioning, with a random fallback
func (u *BillingUsecase) createWithSequentialID(ctx context.Context, dealer *entities.Dealer) error {
	next := 1
	latest, err := u.dealerRepo.LatestSequentialID(ctx)
	if err != nil {
		return err
	}
	if latest != "" {
		var n int
		if _, err := fmt.Sscanf(latest, "DEALER-%04d", &n); err == nil {
			next = n + 1
		}
	}

	for i := 0; i < sequentialIDRetries; i++ {
		dealer.DealerID = fmt.Sprintf("DEALER-%04d", next+i)
		err := u.dealerRepo.Create(ctx, dealer)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domainerrors.ErrAlreadyExists) {
			return err
		}
	}

	suffix, err := crypto.GenerateRandomToken(4)
	if err != nil {
		return err
	}
	dealer.DealerID = "DEALER-" + suffix
	return u.dealerRepo.Create(ctx, dealer)
}

// handleSubscriptionChanged mirrors the subscription status onto the
// profile; canceled or unpaid pauses the dealer with one suspension email
func (u *BillingUsecase) handleSubscriptionChanged(ctx context.Context, sub *stripe.Subscription) error {
	customerID := ""
	if sub.Customer != nil {
		customerID = sub.Customer.ID
	}

	dealer, err := u.findByBillingIDs(ctx, customerID, sub.ID)
	if err != nil {
		return err
	}
	if dealer == nil {
		logger.Warn(ctx, "subscription has no matching dealer", zap.String("subscriptionId", sub.ID))
		return nil
	}

	status := string(sub.Status)
	dealer.StripeSubscriptionStatus = null.StringFrom(status)
	if sub.ID != "" {
		dealer.StripeSubscriptionID = null.StringFrom(sub.ID)
	}
	if sub.TrialEnd > 0 {
		dealer.TrialEndsAt = null.TimeFrom(time.Unix(sub.TrialEnd, 0))
	}

	suspend := (status == entities.SubscriptionStatusCanceled || status == entities.SubscriptionStatusUnpaid) &&
		dealer.Status != entities.DealerStatusPaused
	if suspend {
		dealer.Status = entities.DealerStatusPaused
	}

	if err := u.dealerRepo.Update(ctx, dealer); err != nil {
		return err
	}

	if suspend && dealer.Email.Valid {
		go func(to, dealerID string) {
			if err := u.mail.SendSuspensionEmail(to, dealerID); err != nil {
				logger.Error(context.Background(), "failed to send suspension email", zap.String("dealerId", dealerID), zap.Error(err))
			}
		}(dealer.Email.String, dealer.DealerID)
	}
	return nil
}

// handlePaymentFailed notifies the dealer; no profile state changes
func (u *BillingUsecase) handlePaymentFailed(ctx context.Context, invoice *stripe.Invoice) error {
	customerID := ""
	if invoice.Customer != nil {
		customerID = invoice.Customer.ID
	}

	dealer, err := u.findByBillingIDs(ctx, customerID, "")
	if err != nil {
		return err
	}
	if dealer == nil || !dealer.Email.Valid {
		return nil
	}

	go func(to, dealerID string) {
		if err := u.mail.SendPaymentFailedEmail(to, dealerID); err != nil {
			logger.Error(context.Background(), "failed to send payment-failed email", zap.String("dealerId", dealerID), zap.Error(err))
		}
	}(dealer.Email.String, dealer.DealerID)
	return nil
}

func (u *BillingUsecase) findByBillingIDs(ctx context.Context, customerID, subscriptionID string) (*entities.Dealer, error) {
	if customerID != "" {
		dealer, err := u.dealerRepo.GetByStripeCustomerID(ctx, customerID)
		if err == nil {
			return dealer, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	if subscriptionID != "" {
		dealer, err := u.dealerRepo.GetByStripeSubscriptionID(ctx, subscriptionID)
		if err == nil {
			return dealer, nil
		}
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
	}
	return nil, nil
}
