package repositories

import (
	"context"

	"auto-concierge.backend/internal/domain/entities"
)

// VehicleRepository defines vehicle inventory data operations
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *entities.Vehicle) error
	GetByID(ctx context.Context, vehicleID string) (*entities.Vehicle, error)
	Update(ctx context.Context, vehicle *entities.Vehicle) error
	Archive(ctx context.Context, vehicleID string) error
	List(ctx context.Context, filter entities.VehicleFilter) ([]*entities.Vehicle, error)
	UpdateStatusBulk(ctx context.Context, vehicleIDs []string, status entities.VehicleStatus) (int64, error)
	CountByDealer(ctx context.Context, dealerID string) (int64, error)
}
