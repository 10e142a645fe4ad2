package repositories

import (
	"context"

	"auto-concierge.backend/internal/domain/entities"
)

// DealerFilter narrows dealer list queries
type DealerFilter struct {
	Status string
	Search string
}

// DealerRepository defines dealer profile data operations
type DealerRepository interface {
	Create(ctx context.Context, dealer *entities.Dealer) error
	GetByID(ctx context.Context, dealerID string) (*entities.Dealer, error)
	GetByEmail(ctx context.Context, email string) (*entities.Dealer, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*entities.Dealer, error)
	GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*entities.Dealer, error)
	Update(ctx context.Context, dealer *entities.Dealer) error
	UpdatePasscode(ctx context.Context, dealerID, passcodeHash string) error
	List(ctx context.Context, filter DealerFilter) ([]*entities.Dealer, error)
	// LatestSequentialID returns the highest existing "DEALER-nnnn" id, or
	// empty when none exist yet.
	LatestSequentialID(ctx context.Context) (string, error)
	// ListExpiredTrials returns active dealers whose trial has ended and
	// whose subscription never became active.
	ListExpiredTrials(ctx context.Context, limit int) ([]*entities.Dealer, error)
}
