package usecases

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/domain/repositories"
)

// MaxPublicDealers caps the multi-dealer storefront aggregation
const MaxPublicDealers = 3

// InventoryUsecase handles vehicle inventory and public storefront browsing
type InventoryUsecase struct {
	dealerRepo  repositories.DealerRepository
	vehicleRepo repositories.VehicleRepository
}

// NewInventoryUsecase creates a new inventory usecase
func NewInventoryUsecase(
	dealerRepo repositories.DealerRepository,
	vehicleRepo repositories.VehicleRepository,
) *InventoryUsecase {
	return &InventoryUsecase{
		dealerRepo:  dealerRepo,
		vehicleRepo: vehicleRepo,
	}
}

// GetPublicDealer returns the storefront view of a dealer profile
func (u *InventoryUsecase) GetPublicDealer(ctx context.Context, dealerID string) (*entities.PublicDealer, error) {
	dealer, err := u.guardPublicDealer(ctx, dealerID)
	if err != nil {
		return nil, err
	}
	return dealer.Public(), nil
}

// ListPublicVehicles returns the storefront inventory of one dealer.
// Archived vehicles never show; hidden (availability=false) vehicles only
// show when includeHidden is set.
func (u *InventoryUsecase) ListPublicVehicles(ctx context.Context, dealerID string, includeHidden bool) ([]*entities.Vehicle, error) {
	if _, err := u.guardPublicDealer(ctx, dealerID); err != nil {
		return nil, err
	}

	filter := entities.VehicleFilter{DealerID: dealerID, PublicOnly: true}
	if includeHidden {
		filter.PublicOnly = false
		filter.IncludeArchived = false
	}
	return u.vehicleRepo.List(ctx, filter)
}

// ListPublicVehiclesMulti aggregates public vehicles across up to
// MaxPublicDealers dealers. Paused and unknown dealers are skipped.
func (u *InventoryUsecase) ListPublicVehiclesMulti(ctx context.Context, dealerIDs []string) ([]*entities.Vehicle, error) {
	if len(dealerIDs) == 0 {
		return nil, domainerrors.BadRequest("dealerIds is required")
	}
	if len(dealerIDs) > MaxPublicDealers {
		return nil, domainerrors.BadRequest(fmt.Sprintf("at most %d dealers per query", MaxPublicDealers))
	}

	visible := make([]string, 0, len(dealerIDs))
	for _, id := range dealerIDs {
		if !entities.IsValidDealerID(id) {
			return nil, domainerrors.BadRequest("invalid dealer id: " + id)
		}
		dealer, err := u.dealerRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				continue
			}
			return nil, err
		}
		if dealer.Status == entities.DealerStatusActive {
			visible = append(visible, id)
		}
	}

	if len(visible) == 0 {
		return []*entities.Vehicle{}, nil
	}
	return u.vehicleRepo.List(ctx, entities.VehicleFilter{DealerIDs: visible, PublicOnly: true})
}

// ListDealerVehicles returns a dealer's own inventory
func (u *InventoryUsecase) ListDealerVehicles(ctx context.Context, dealerID string, includeArchived bool) ([]*entities.Vehicle, error) {
	return u.vehicleRepo.List(ctx, entities.VehicleFilter{DealerID: dealerID, IncludeArchived: includeArchived})
}

// ListVehicles lists vehicles for admin with optional dealer/status filters
func (u *InventoryUsecase) ListVehicles(ctx context.Context, dealerID, status string) ([]*entities.Vehicle, error) {
	if status != "" && !entities.IsValidVehicleStatus(status) {
		return nil, domainerrors.BadRequest("invalid vehicle status: " + status)
	}
	return u.vehicleRepo.List(ctx, entities.VehicleFilter{
		DealerID:        dealerID,
		Status:          status,
		IncludeArchived: true,
	})
}

// UpsertVehicle creates or updates a vehicle for the given owner. The owner
// is always forced server-side; a vehicleId that belongs to another dealer
// is a forbidden overwrite. The archived flag survives updates: once a
// vehicle is archived this path cannot bring it back.
func (u *InventoryUsecase) UpsertVehicle(ctx context.Context, ownerDealerID string, input *entities.UpsertVehicleInput) (*entities.Vehicle, error) {
	if input.Title == "" {
		return nil, domainerrors.BadRequest("title is required")
	}
	if input.Status != "" && !entities.IsValidVehicleStatus(input.Status) {
		return nil, domainerrors.BadRequest("invalid vehicle status: " + input.Status)
	}
	if input.Status == string(entities.VehicleStatusArchived) {
		return nil, domainerrors.BadRequest("archive vehicles through the archive endpoint")
	}

	if _, err := u.dealerRepo.GetByID(ctx, ownerDealerID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("dealer not found")
		}
		return nil, err
	}

	var existing *entities.Vehicle
	if input.VehicleID != "" {
		found, err := u.vehicleRepo.GetByID(ctx, input.VehicleID)
		if err != nil && !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		if found != nil {
			if found.DealerID != ownerDealerID {
				return nil, domainerrors.Forbidden("vehicle belongs to another dealer")
			}
			existing = found
		}
	}

	vehicle := u.applyInput(existing, ownerDealerID, input)
	if existing == nil {
		if err := u.vehicleRepo.Create(ctx, vehicle); err != nil {
			return nil, err
		}
		return vehicle, nil
	}
	if err := u.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, err
	}
	return vehicle, nil
}

// ArchiveVehicle archives a vehicle after an ownership check. Idempotent.
// An empty actorDealerID skips the check (admin path).
func (u *InventoryUsecase) ArchiveVehicle(ctx context.Context, actorDealerID, vehicleID string) error {
	vehicle, err := u.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("vehicle not found")
		}
		return err
	}
	if actorDealerID != "" && vehicle.DealerID != actorDealerID {
		return domainerrors.Forbidden("vehicle belongs to another dealer")
	}
	return u.vehicleRepo.Archive(ctx, vehicleID)
}

// BulkUpdateStatus sets one status on many vehicles at once (admin)
func (u *InventoryUsecase) BulkUpdateStatus(ctx context.Context, vehicleIDs []string, status string) (int64, error) {
	if len(vehicleIDs) == 0 {
		return 0, domainerrors.BadRequest("vehicleIds is required")
	}
	if !entities.IsValidVehicleStatus(status) {
		return 0, domainerrors.BadRequest("invalid vehicle status: " + status)
	}
	return u.vehicleRepo.UpdateStatusBulk(ctx, vehicleIDs, entities.VehicleStatus(status))
}

func (u *InventoryUsecase) guardPublicDealer(ctx context.Context, dealerID string) (*entities.Dealer, error) {
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
	if dealer.Status == entities.DealerStatusPaused {
		return nil, domainerrors.Forbidden("dealer is not available")
	}
	return dealer, nil
}

func (u *InventoryUsecase) applyInput(existing *entities.Vehicle, ownerDealerID string, input *entities.UpsertVehicleInput) *entities.Vehicle {
	vehicle := &entities.Vehicle{
		VehicleID:    input.VehicleID,
		DealerID:     ownerDealerID,
		Availability: true,
	}
	if existing != nil {
		vehicle.VehicleID = existing.VehicleID
		vehicle.Archived = existing.Archived
		vehicle.Availability = existing.Availability
		vehicle.CreatedAt = existing.CreatedAt
	}
	if vehicle.VehicleID == "" {
		vehicle.VehicleID = uuid.NewString()
	}

	vehicle.Title = input.Title
	vehicle.Make = optString(input.Make)
	vehicle.Model = optString(input.Model)
	vehicle.VIN = optString(input.VIN)
	vehicle.Color = optString(input.Color)
	vehicle.BodyType = optString(input.BodyType)
	vehicle.Transmission = optString(input.Transmission)
	vehicle.FuelType = optString(input.FuelType)
	vehicle.Description = optString(input.Description)
	if input.Year > 0 {
		vehicle.Year = null.IntFrom(input.Year)
	}
	if input.Price > 0 {
		vehicle.Price = null.Float64From(input.Price)
	}
	if input.Mileage > 0 {
		vehicle.Mileage = null.IntFrom(input.Mileage)
	}
	if input.Photos != nil {
		vehicle.Photos = input.Photos
	} else if existing != nil {
		vehicle.Photos = existing.Photos
	}
	if input.Availability != nil {
		vehicle.Availability = *input.Availability
	}

	switch {
	case vehicle.Archived:
		vehicle.Status = entities.VehicleStatusArchived
		vehicle.Availability = false
	case input.Status != "":
		vehicle.Status = entities.VehicleStatus(input.Status)
	case existing != nil:
		vehicle.Status = existing.Status
	default:
		vehicle.Status = entities.VehicleStatusAvailable
	}

	return vehicle
}

func optString(s string) null.String {
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
