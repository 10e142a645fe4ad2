package usecases_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"auto-concierge.backend/internal/domain/entities"
	"auto-concierge.backend/internal/domain/repositories"
)

// Mock DealerRepository
type MockDealerRepository struct {
	mock.Mock
}

func (m *MockDealerRepository) Create(ctx context.Context, dealer *entities.Dealer) error {
	args := m.Called(ctx, dealer)
	return args.Error(0)
}

func (m *MockDealerRepository) GetByID(ctx context.Context, dealerID string) (*entities.Dealer, error) {
	args := m.Called(ctx, dealerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dealer), args.Error(1)
}

func (m *MockDealerRepository) GetByEmail(ctx context.Context, email string) (*entities.Dealer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dealer), args.Error(1)
}

func (m *MockDealerRepository) GetByStripeCustomerID(ctx context.Context, customerID string) (*entities.Dealer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dealer), args.Error(1)
}

func (m *MockDealerRepository) GetByStripeSubscriptionID(ctx context.Context, subscriptionID string) (*entities.Dealer, error) {
	args := m.Called(ctx, subscriptionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Dealer), args.Error(1)
}

func (m *MockDealerRepository) Update(ctx context.Context, dealer *entities.Dealer) error {
	args := m.Called(ctx, dealer)
	return args.Error(0)
}

func (m *MockDealerRepository) UpdatePasscode(ctx context.Context, dealerID, passcodeHash string) error {
	args := m.Called(ctx, dealerID, passcodeHash)
	return args.Error(0)
}

func (m *MockDealerRepository) List(ctx context.Context, filter repositories.DealerFilter) ([]*entities.Dealer, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Dealer), args.Error(1)
}

func (m *MockDealerRepository) LatestSequentialID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockDealerRepository) ListExpiredTrials(ctx context.Context, limit int) ([]*entities.Dealer, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Dealer), args.Error(1)
}

// Mock VehicleRepository
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *entities.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, vehicleID string) (*entities.Vehicle, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *entities.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) Archive(ctx context.Context, vehicleID string) error {
	args := m.Called(ctx, vehicleID)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, filter entities.VehicleFilter) ([]*entities.Vehicle, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) UpdateStatusBulk(ctx context.Context, vehicleIDs []string, status entities.VehicleStatus) (int64, error) {
	args := m.Called(ctx, vehicleIDs, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) CountByDealer(ctx context.Context, dealerID string) (int64, error) {
	args := m.Called(ctx, dealerID)
	return args.Get(0).(int64), args.Error(1)
}

// Mock ViewingRequestRepository
type MockViewingRequestRepository struct {
	mock.Mock
}

func (m *MockViewingRequestRepository) Create(ctx context.Context, request *entities.ViewingRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockViewingRequestRepository) GetByID(ctx context.Context, requestID string) (*entities.ViewingRequest, error) {
	args := m.Called(ctx, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ViewingRequest), args.Error(1)
}

func (m *MockViewingRequestRepository) UpdateStatus(ctx context.Context, requestID string, status entities.RequestStatus) error {
	args := m.Called(ctx, requestID, status)
	return args.Error(0)
}

func (m *MockViewingRequestRepository) List(ctx context.Context, filter entities.RequestFilter) ([]*entities.ViewingRequest, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.ViewingRequest), args.Error(1)
}

func (m *MockViewingRequestRepository) CountStaleNew(ctx context.Context, olderThanHours int) (map[string]int64, error) {
	args := m.Called(ctx, olderThanHours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

// Mock Mailer
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendWelcomeEmail(to, dealerID, passcode string) error {
	args := m.Called(to, dealerID, passcode)
	return args.Error(0)
}

func (m *MockMailer) SendPasscodeResetEmail(to, dealerID, resetLink string) error {
	args := m.Called(to, dealerID, resetLink)
	return args.Error(0)
}

func (m *MockMailer) SendSuspensionEmail(to, dealerID string) error {
	args := m.Called(to, dealerID)
	return args.Error(0)
}

func (m *MockMailer) SendPaymentFailedEmail(to, dealerID string) error {
	args := m.Called(to, dealerID)
	return args.Error(0)
}

func (m *MockMailer) SendStaleRequestAlert(to, dealerID string, pendingCount int) error {
	args := m.Called(to, dealerID, pendingCount)
	return args.Error(0)
}
