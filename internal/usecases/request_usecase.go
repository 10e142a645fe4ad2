package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
)

// MinPhoneDigits is the least digits a lead phone number must carry
const MinPhoneDigits = 7

// RequestUsecase handles viewing request (lead) business logic
type RequestUsecase struct {
	dealerRepo  repositories.DealerRepository
	vehicleRepo repositories.VehicleRepository
	requestRepo repositories.ViewingRequestRepository
}

// NewRequestUsecase creates a new request usecase
func NewRequestUsecase(
	dealerRepo repositories.DealerRepository,
	vehicleRepo repositories.VehicleRepository,
	requestRepo repositories.ViewingRequestRepository,
) *RequestUsecase {
	return &RequestUsecase{
		dealerRepo:  dealerRepo,
		vehicleRepo: vehicleRepo,
		requestRepo: requestRepo,
	}
}

// CreatePublicRequest records a storefront lead against a dealer. The
// request type goes through alias normalization; anything outside the
// closed set is rejected before touching storage.
func (u *RequestUsecase) CreatePublicRequest(ctx context.Context, dealerID string, input *entities.CreateRequestInput) (*entities.ViewingRequest, error) {
	return u.createRequest(ctx, dealerID, input, entities.RequestSourceStorefront)
}

// CreateAdminRequest records a lead on a dealer's behalf, for walk-ins and
// phone calls the operator logs manually. Same validation as the storefront
// path, but a paused dealer does not block the operator.
func (u *RequestUsecase) CreateAdminRequest(ctx context.Context, dealerID string, input *entities.CreateRequestInput) (*entities.ViewingRequest, error) {
	return u.createRequest(ctx, dealerID, input, entities.RequestSourceAdmin)
}

func (u *RequestUsecase) createRequest(ctx context.Context, dealerID string, input *entities.CreateRequestInput, source string) (*entities.ViewingRequest, error) {
	if !entities.IsValidDealerID(dealerID) {
		return nil, domainerrors.BadRequest("invalid dealer id")
	}

	dealer, err := u.dealerRepo.GetByID(ctx, dealerID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("dealer not found")
		}
		return nil, err
	}
	if source == entities.RequestSourceStorefront && dealer.Status == entities.DealerStatusPaused {
		return nil, domainerrors.Forbidden("dealer is not available")
	}

	reqType, ok := entities.NormalizeRequestType(input.RequestType)
	if !ok {
		return nil, domainerrors.BadRequest("invalid request type: " + input.RequestType)
	}

	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		return nil, domainerrors.BadRequest("customerName is required")
	}
	phone := strings.TrimSpace(input.Phone)
	if entities.CountPhoneDigits(phone) < MinPhoneDigits {
		return nil, domainerrors.BadRequest("phone must contain at least 7 digits")
	}

	if input.VehicleID != "" {
		vehicle, err := u.vehicleRepo.GetByID(ctx, input.VehicleID)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.BadRequest("unknown vehicle")
			}
			return nil, err
		}
		if vehicle.DealerID != dealerID {
			return nil, domainerrors.BadRequest("vehicle does not belong to this dealer")
		}
	}

	request := &entities.ViewingRequest{
		RequestID:     "REQ-" + uuid.NewString(),
		DealerID:      dealerID,
		VehicleID:     optString(input.VehicleID),
		Type:          reqType,
		Status:        entities.RequestStatusNew,
		Name:          name,
		Phone:         phone,
		Email:         optString(strings.TrimSpace(input.Email)),
		PreferredDate: optString(input.PreferredDate),
		PreferredTime: optString(input.PreferredTime),
		Notes:         optString(input.Notes),
		Source:        source,
	}

	if err := u.requestRepo.Create(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListRequests lists requests for a dealer (or all, for admin) with
// optional status/type filters
func (u *RequestUsecase) ListRequests(ctx context.Context, filter entities.RequestFilter) ([]*entities.ViewingRequest, error) {
	if filter.Status != "" {
		if !entities.IsValidRequestStatus(filter.Status) {
			return nil, domainerrors.BadRequest("invalid request status: " + filter.Status)
		}
		filter.Status = strings.ToLower(filter.Status)
	}
	if filter.Type != "" {
		reqType, ok := entities.NormalizeRequestType(filter.Type)
		if !ok {
			return nil, domainerrors.BadRequest("invalid request type: " + filter.Type)
		}
		filter.Type = string(reqType)
	}
	return u.requestRepo.List(ctx, filter)
}

// UpdateRequestStatus moves a request through its lifecycle. An empty
// actorDealerID skips the ownership check (admin path).
func (u *RequestUsecase) UpdateRequestStatus(ctx context.Context, actorDealerID, requestID, status string) (*entities.ViewingRequest, error) {
	if !entities.IsValidRequestStatus(status) {
		return nil, domainerrors.BadRequest("invalid request status: " + status)
	}

	request, err := u.requestRepo.GetByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("request not found")
		}
		return nil, err
	}
	if actorDealerID != "" && request.DealerID != actorDealerID {
		return nil, domainerrors.Forbidden("request belongs to another dealer")
	}

	newStatus := entities.RequestStatus(strings.ToLower(status))
	if err := u.requestRepo.UpdateStatus(ctx, requestID, newStatus); err != nil {
		return nil, err
	}
	request.Status = newStatus
	return request, nil
}
