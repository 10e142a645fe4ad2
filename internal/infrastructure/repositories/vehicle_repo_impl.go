package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/infrastructure/models"
)

// VehicleRepository implements vehicle inventory data operations
type VehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository creates a new vehicle repository
func NewVehicleRepository(db *gorm.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create creates a new vehicle
func (r *VehicleRepository) Create(ctx context.Context, vehicle *entities.Vehicle) error {
	now := time.Now()
	vehicle.CreatedAt = now
	vehicle.UpdatedAt = now
	if vehicle.Status == "" {
		vehicle.Status = entities.VehicleStatusAvailable
	}

	m := r.toModel(vehicle)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a vehicle by vehicle id
func (r *VehicleRepository) GetByID(ctx context.Context, vehicleID string) (*entities.Vehicle, error) {
	var m models.Vehicle
	if err := r.db.WithContext(ctx).Where("vehicle_id = ?", vehicleID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// Update updates a vehicle
func (r *VehicleRepository) Update(ctx context.Context, vehicle *entities.Vehicle) error {
	vehicle.UpdatedAt = time.Now()

	m := r.toModel(vehicle)
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vehicle_id = ?", vehicle.VehicleID).
		Select("*").Omit("vehicle_id", "dealer_id", "created_at").
		Updates(m)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// Archive marks a vehicle archived. Archiving is idempotent and terminal.
func (r *VehicleRepository) Archive(ctx context.Context, vehicleID string) error {
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vehicle_id = ?", vehicleID).
		Updates(map[string]interface{}{
			"archived":     true,
			"availability": false,
			"status":       string(entities.VehicleStatusArchived),
			"updated_at":   time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists vehicles matching the filter
func (r *VehicleRepository) List(ctx context.Context, filter entities.VehicleFilter) ([]*entities.Vehicle, error) {
	var vehicleModels []models.Vehicle
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.DealerID != "" {
		query = query.Where("dealer_id = ?", filter.DealerID)
	}
	if len(filter.DealerIDs) > 0 {
		query = query.Where("dealer_id IN ?", filter.DealerIDs)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.PublicOnly {
		query = query.Where("availability = ? AND archived = ?", true, false)
	} else if !filter.IncludeArchived {
		query = query.Where("archived = ?", false)
	}

	if err := query.Find(&vehicleModels).Error; err != nil {
		return nil, err
	}

	vehicles := make([]*entities.Vehicle, 0, len(vehicleModels))
	for i := range vehicleModels {
		vehicles = append(vehicles, r.toEntity(&vehicleModels[i]))
	}
	return vehicles, nil
}

// UpdateStatusBulk sets the status on all of the given vehicles at once and
// returns how many rows matched
func (r *VehicleRepository) UpdateStatusBulk(ctx context.Context, vehicleIDs []string, status entities.VehicleStatus) (int64, error) {
	if len(vehicleIDs) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("vehicle_id IN ?", vehicleIDs).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// CountByDealer counts non-archived vehicles owned by a dealer
func (r *VehicleRepository) CountByDealer(ctx context.Context, dealerID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Vehicle{}).
		Where("dealer_id = ? AND archived = ?", dealerID, false).
		Count(&count).Error
	return count, err
}

func (r *VehicleRepository) toModel(v *entities.Vehicle) *models.Vehicle {
	photos := "[]"
	if len(v.Photos) > 0 {
		if b, err := json.Marshal(v.Photos); err == nil {
			photos = string(b)
		}
	}
	return &models.Vehicle{
		VehicleID:    v.VehicleID,
		DealerID:     v.DealerID,
		Title:        v.Title,
		Make:         v.Make.String,
		Model:        v.Model.String,
		Year:         v.Year.Int,
		VIN:          v.VIN.String,
		Price:        v.Price.Float64,
		Mileage:      v.Mileage.Int,
		Color:        v.Color.String,
		BodyType:     v.BodyType.String,
		Transmission: v.Transmission.String,
		FuelType:     v.FuelType.String,
		Description:  v.Description.String,
		Status:       string(v.Status),
		Availability: v.Availability,
		Archived:     v.Archived,
		Photos:       photos,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func (r *VehicleRepository) toEntity(m *models.Vehicle) *entities.Vehicle {
	var photos []string
	if m.Photos != "" {
		_ = json.Unmarshal([]byte(m.Photos), &photos)
	}
	if photos == nil {
		photos = []string{}
	}

	v := &entities.Vehicle{
		VehicleID:    m.VehicleID,
		DealerID:     m.DealerID,
		Title:        m.Title,
		Make:         nullString(m.Make),
		Model:        nullString(m.Model),
		VIN:          nullString(m.VIN),
		Color:        nullString(m.Color),
		BodyType:     nullString(m.BodyType),
		Transmission: nullString(m.Transmission),
		FuelType:     nullString(m.FuelType),
		Description:  nullString(m.Description),
		Status:       entities.VehicleStatus(m.Status),
		Availability: m.Availability,
		Archived:     m.Archived,
		Photos:       photos,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.Year != 0 {
		v.Year = null.IntFrom(m.Year)
	}
	if m.Price != 0 {
		v.Price = null.Float64From(m.Price)
	}
	if m.Mileage != 0 {
		v.Mileage = null.IntFrom(m.Mileage)
	}
	return v
}
