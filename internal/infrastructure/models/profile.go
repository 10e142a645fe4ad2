package models

import (
	"time"
)

// Profile is the dealer profile row. Profiles are never deleted.
type Profile struct {
	DealerID                 string `gorm:"column:dealer_id;type:varchar(40);primaryKey"`
	Name                     string `gorm:"type:varchar(255);not null"`
	Status                   string `gorm:"type:varchar(20);not null;default:'active';index"`
	WhatsApp                 string `gorm:"column:whatsapp;type:varchar(32)"`
	Email                    string `gorm:"type:varchar(255);index"`
	LogoURL                  string `gorm:"column:logo_url;type:text"`
	PasscodeHash             string `gorm:"column:passcode_hash;type:text;not null"`
	Plan                     string `gorm:"type:varchar(50)"`
	TrialEndsAt              *time.Time
	StripeCustomerID         string `gorm:"column:stripe_customer_id;type:varchar(255);index"`
	StripeSubscriptionID     string `gorm:"column:stripe_subscription_id;type:varchar(255);index"`
	StripeSubscriptionStatus string `gorm:"column:stripe_subscription_status;type:varchar(50)"`
	ReferralCode             string `gorm:"column:referral_code;type:varchar(64)"`
	ReferredBy               string `gorm:"column:referred_by;type:varchar(64)"`
	ReferralCredits          int    `gorm:"column:referral_credits;default:0"`
	CreatedAt                time.Time
	UpdatedAt                time.Time
}

// TableName overrides the table name
func (Profile) TableName() string {
	return "profiles"
}
