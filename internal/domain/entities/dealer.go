package entities

import (
	"regexp"
	"time"

	"github.com/volatiletech/null/v8"
)

// DealerStatus represents a dealer profile status
type DealerStatus string

const (
	DealerStatusActive DealerStatus = "active"
	DealerStatusPaused DealerStatus = "paused"
)

// Subscription statuses mirrored from the billing provider
const (
	SubscriptionStatusTrialing = "trialing"
	SubscriptionStatusActive   = "active"
	SubscriptionStatusPastDue  = "past_due"
	SubscriptionStatusCanceled = "canceled"
	SubscriptionStatusUnpaid   = "unpaid"
)

var dealerIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{3,40}$`)

// IsValidDealerID reports whether id matches the dealer id format
func IsValidDealerID(id string) bool {
	return dealerIDPattern.MatchString(id)
}

// Dealer represents a dealer profile. Profiles are never deleted; paused is
// the terminal-ish inactive state and is reversible by admin or billing.
type Dealer struct {
	DealerID                 string       `json:"dealerId"`
	Name                     string       `json:"name"`
	Status                   DealerStatus `json:"status"`
	WhatsApp                 null.String  `json:"whatsapp,omitempty"`
	Email                    null.String  `json:"email,omitempty"`
	LogoURL                  null.String  `json:"logoUrl,omitempty"`
	PasscodeHash             string       `json:"-"`
	Plan                     null.String  `json:"plan,omitempty"`
	TrialEndsAt              null.Time    `json:"trialEndsAt,omitempty"`
	StripeCustomerID         null.String  `json:"-"`
	StripeSubscriptionID     null.String  `json:"-"`
	StripeSubscriptionStatus null.String  `json:"subscriptionStatus,omitempty"`
	ReferralCode             null.String  `json:"referralCode,omitempty"`
	ReferredBy               null.String  `json:"referredBy,omitempty"`
	ReferralCredits          int          `json:"referralCredits"`
	CreatedAt                time.Time    `json:"createdAt"`
	UpdatedAt                time.Time    `json:"updatedAt"`
}

// HasActiveSubscription reports whether the dealer may use dealer endpoints.
// Trialing counts as active; an empty status means billing was never wired
// (admin-created dealers) and is allowed.
func (d *Dealer) HasActiveSubscription() bool {
	switch d.StripeSubscriptionStatus.String {
	case "", SubscriptionStatusActive, SubscriptionStatusTrialing, SubscriptionStatusPastDue:
		return true
	default:
		return false
	}
}

// PublicDealer is the sanitized storefront view of a profile
type PublicDealer struct {
	DealerID string      `json:"dealerId"`
	Name     string      `json:"name"`
	WhatsApp null.String `json:"whatsapp,omitempty"`
	LogoURL  null.String `json:"logoUrl,omitempty"`
}

// Public returns the storefront-safe fields of a dealer
func (d *Dealer) Public() *PublicDealer {
	return &PublicDealer{
		DealerID: d.DealerID,
		Name:     d.Name,
		WhatsApp: d.WhatsApp,
		LogoURL:  d.LogoURL,
	}
}

// CreateDealerInput represents admin dealer creation input
type CreateDealerInput struct {
	DealerID   string `json:"dealerId" binding:"required"`
	Name       string `json:"name" binding:"required"`
	WhatsApp   string `json:"whatsapp,omitempty"`
	Email      string `json:"email,omitempty"`
	LogoURL    string `json:"logoUrl,omitempty"`
	Plan       string `json:"plan,omitempty"`
	Passcode   string `json:"passcode,omitempty"`
	ReferredBy string `json:"referredBy,omitempty"`
}

// UpdateDealerInput represents an admin dealer patch; nil fields are left
// untouched
type UpdateDealerInput struct {
	Name     *string `json:"name,omitempty"`
	Status   *string `json:"status,omitempty"`
	WhatsApp *string `json:"whatsapp,omitempty"`
	Email    *string `json:"email,omitempty"`
	LogoURL  *string `json:"logoUrl,omitempty"`
	Plan     *string `json:"plan,omitempty"`
}

// DealerLoginInput represents dealer login input; Identifier is a dealer id
// or the profile email
type DealerLoginInput struct {
	DealerID   string `json:"dealerId,omitempty"`
	Identifier string `json:"identifier,omitempty"`
	Passcode   string `json:"passcode" binding:"required"`
}

// LoginIdentifier returns whichever identifier field was supplied
func (i *DealerLoginInput) LoginIdentifier() string {
	if i.Identifier != "" {
		return i.Identifier
	}
	return i.DealerID
}
