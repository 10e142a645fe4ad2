package repositories

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/internal/infrastructure/models"
)

// DealerRepository implements dealer profile data operations
type DealerRepository struct {
	db *gorm.DB
}

// NewDealerRepository creates a new dealer repository
func NewDealerRepository(db *gorm.DB) *DealerRepository {
	return &DealerRepository{db: db}
}

// Create creates a new dealer profile
func (r *DealerRepository) Create(ctx context.Context, dealer *entities.Dealer) error {
	now := time.Now()
	dealer.CreatedAt = now
	dealer.UpdatedAt = now
	if dealer.Status == "" {
		dealer.Status = entities.DealerStatusActive
	}

	m := r.toModel(dealer)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a dealer by dealer id
func (r *DealerRepository) GetByID(ctx context.Context, dealerID string) (*entities.Dealer, error) {
	return r.getOne(ctx, "dealer_id = ?", dealerID)
}

// GetByEmail gets a dealer by profile email
func (r *DealerRepository) GetByEmail(ctx context.Context, email string) (*entities.Dealer, error) {
	return r.getOne(ctx, "email = ?", email)
}

// GetByStripeCustomerID gets a dealer by Stripe customer id
func (r *DealerRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*entities.Dealer, error) {
	return r.getOne(ctx, "stripe_customer_id = ?", customerID)
}

// GetByStripeSubscriptionID gets a dealer by Stripe subscription id
func (r *DealerRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*entities.Dealer, error) {
	return r.getOne(ctx, "stripe_subscription_id = ?", subscriptionID)
}

// Update updates a dealer profile
func (r *DealerRepository) Update(ctx context.Context, dealer *entities.Dealer) error {
	dealer.UpdatedAt = time.Now()

	m := r.toModel(dealer)
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("dealer_id = ?", dealer.DealerID).
		Select("*").Omit("dealer_id", "created_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// UpdatePasscode replaces the stored passcode hash
func (r *DealerRepository) UpdatePasscode(ctx context.Context, dealerID, passcodeHash string) error {
	result := r.db.WithContext(ctx).Model(&models.Profile{}).
		Where("dealer_id = ?", dealerID).
		Updates(map[string]interface{}{
			"passcode_hash": passcodeHash,
			"updated_at":    time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists dealers with optional status filter and name/email search
func (r *DealerRepository) List(ctx context.Context, filter repositories.DealerFilter) ([]*entities.Dealer, error) {
	var profileModels []models.Profile
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		searchTerm := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR dealer_id LIKE ?", searchTerm, searchTerm, searchTerm)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	dealers := make([]*entities.Dealer, 0, len(profileModels))
	for i := range profileModels {
		dealers = append(dealers, r.toEntity(&profileModels[i]))
	}
	return dealers, nil
}

// LatestSequentialID returns the highest existing DEALER-nnnn id. Random
// fallback ids and custom slugs share the prefix but are not part of the
// sequence, so candidates are validated as exactly four digits.
func (r *DealerRepository) LatestSequentialID(ctx context.Context) (string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&models.Profile{}).
		Where("dealer_id LIKE ?", "DEALER-____").
		Pluck("dealer_id", &ids).Error
	if err != nil {
		return "", err
	}

	latest, highest := "", -1
	for _, id := range ids {
		suffix := strings.TrimPrefix(id, "DEALER-")
		n, err := strconv.Atoi(suffix)
		if err != nil || n < 0 {
			continue
		}
		if n > highest {
			highest, latest = n, id
		}
	}
	return latest, nil
}

// ListExpiredTrials returns active dealers whose trial ended without the
// subscription ever becoming active
func (r *DealerRepository) ListExpiredTrials(ctx context.Context, limit int) ([]*entities.Dealer, error) {
	var profileModels []models.Profile
	query := r.db.WithContext(ctx).
		Where("status = ?", string(entities.DealerStatusActive)).
		Where("trial_ends_at IS NOT NULL AND trial_ends_at < ?", time.Now()).
		Where("stripe_subscription_status IN ?", []string{"", entities.SubscriptionStatusTrialing})
	if limit > 0 {
		query = query.Limit(limit)
	}

	if err := query.Find(&profileModels).Error; err != nil {
		return nil, err
	}

	dealers := make([]*entities.Dealer, 0, len(profileModels))
	for i := range profileModels {
		dealers = append(dealers, r.toEntity(&profileModels[i]))
	}
	return dealers, nil
}

func (r *DealerRepository) getOne(ctx context.Context, cond string, arg string) (*entities.Dealer, error) {
	if arg == "" {
		return nil, domainerrors.ErrNotFound
	}
	var m models.Profile
	if err := r.db.WithContext(ctx).Where(cond, arg).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

func (r *DealerRepository) toModel(d *entities.Dealer) *models.Profile {
	var trialEndsAt *time.Time
	if d.TrialEndsAt.Valid {
		t := d.TrialEndsAt.Time
		trialEndsAt = &t
	}
	return &models.Profile{
		DealerID:                 d.DealerID,
		Name:                     d.Name,
		Status:                   string(d.Status),
		WhatsApp:                 d.WhatsApp.String,
		Email:                    d.Email.String,
		LogoURL:                  d.LogoURL.String,
		PasscodeHash:             d.PasscodeHash,
		Plan:                     d.Plan.String,
		TrialEndsAt:              trialEndsAt,
		StripeCustomerID:         d.StripeCustomerID.String,
		StripeSubscriptionID:     d.StripeSubscriptionID.String,
		StripeSubscriptionStatus: d.StripeSubscriptionStatus.String,
		ReferralCode:             d.ReferralCode.String,
		ReferredBy:               d.ReferredBy.String,
		ReferralCredits:          d.ReferralCredits,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

func (r *DealerRepository) toEntity(m *models.Profile) *entities.Dealer {
	return &entities.Dealer{
		DealerID:                 m.DealerID,
		Name:                     m.Name,
		Status:                   entities.DealerStatus(m.Status),
		WhatsApp:                 nullString(m.WhatsApp),
		Email:                    nullString(m.Email),
		LogoURL:                  nullString(m.LogoURL),
		PasscodeHash:             m.PasscodeHash,
		Plan:                     nullString(m.Plan),
		TrialEndsAt:              null.TimeFromPtr(m.TrialEndsAt),
		StripeCustomerID:         nullString(m.StripeCustomerID),
		StripeSubscriptionID:     nullString(m.StripeSubscriptionID),
		StripeSubscriptionStatus: nullString(m.StripeSubscriptionStatus),
		ReferralCode:             nullString(m.ReferralCode),
		ReferredBy:               nullString(m.ReferredBy),
		ReferralCredits:          m.ReferralCredits,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func nullString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
