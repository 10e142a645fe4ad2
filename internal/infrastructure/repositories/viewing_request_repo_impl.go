package repositories

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/infrastructure/models"
)

// ViewingRequestRepository implements viewing request data operations
type ViewingRequestRepository struct {
	db *gorm.DB
}

// NewViewingRequestRepository creates a new viewing request repository
func NewViewingRequestRepository(db *gorm.DB) *ViewingRequestRepository {
	return &ViewingRequestRepository{db: db}
}

// Create creates a new viewing request
func (r *ViewingRequestRepository) Create(ctx context.Context, request *entities.ViewingRequest) error {
	now := time.Now()
	request.CreatedAt = now
	request.UpdatedAt = now
	if request.Status == "" {
		request.Status = entities.RequestStatusNew
	}
	if request.Source == "" {
		request.Source = entities.RequestSourceStorefront
	}

	m := r.toModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domainerrors.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// GetByID gets a viewing request by request id
func (r *ViewingRequestRepository) GetByID(ctx context.Context, requestID string) (*entities.ViewingRequest, error) {
	var m models.ViewingRequest
	if err := r.db.WithContext(ctx).Where("request_id = ?", requestID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return r.toEntity(&m), nil
}

// UpdateStatus moves a request through its lifecycle
func (r *ViewingRequestRepository) UpdateStatus(ctx context.Context, requestID string, status entities.RequestStatus) error {
	result := r.db.WithContext(ctx).Model(&models.ViewingRequest{}).
		Where("request_id = ?", requestID).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

// List lists viewing requests matching the filter, newest first
func (r *ViewingRequestRepository) List(ctx context.Context, filter entities.RequestFilter) ([]*entities.ViewingRequest, error) {
	var requestModels []models.ViewingRequest
	query := r.db.WithContext(ctx).Order("created_at DESC")

	if filter.DealerID != "" {
		query = query.Where("dealer_id = ?", filter.DealerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Type != "" {
		query = query.Where("type = ?", filter.Type)
	}

	if err := query.Find(&requestModels).Error; err != nil {
		return nil, err
	}

	requests := make([]*entities.ViewingRequest, 0, len(requestModels))
	for i := range requestModels {
		requests = append(requests, r.toEntity(&requestModels[i]))
	}
	return requests, nil
}

// CountStaleNew counts requests still sitting in status "new" older than the
// given number of hours, grouped by dealer
func (r *ViewingRequestRepository) CountStaleNew(ctx context.Context, olderThanHours int) (map[string]int64, error) {
	cutoff := time.Now().Add(-time.Duration(olderThanHours) * time.Hour)

	type row struct {
		DealerID string
		Total    int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&models.ViewingRequest{}).
		Select("dealer_id, COUNT(*) AS total").
		Where("status = ? AND created_at < ?", string(entities.RequestStatusNew), cutoff).
		Group("dealer_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.DealerID] = r.Total
	}
	return counts, nil
}

func (r *ViewingRequestRepository) toModel(v *entities.ViewingRequest) *models.ViewingRequest {
	return &models.ViewingRequest{
		RequestID:     v.RequestID,
		DealerID:      v.DealerID,
		VehicleID:     v.VehicleID.String,
		Type:          string(v.Type),
		Status:        string(v.Status),
		Name:          v.Name,
		Phone:         v.Phone,
		Email:         v.Email.String,
		PreferredDate: v.PreferredDate.String,
		PreferredTime: v.PreferredTime.String,
		Notes:         v.Notes.String,
		Source:        v.Source,
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func (r *ViewingRequestRepository) toEntity(m *models.ViewingRequest) *entities.ViewingRequest {
	return &entities.ViewingRequest{
		RequestID:     m.RequestID,
		DealerID:      m.DealerID,
		VehicleID:     nullString(m.VehicleID),
		Type:          entities.RequestType(m.Type),
		Status:        entities.RequestStatus(m.Status),
		Name:          m.Name,
		Phone:         m.Phone,
		Email:         nullString(m.Email),
		PreferredDate: nullString(m.PreferredDate),
		PreferredTime: nullString(m.PreferredTime),
		Notes:         nullString(m.Notes),
		Source:        m.Source,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}
