package repositories

import (
	"context"

	"auto-concierge.backend/internal/domain/entities"
)

// ViewingRequestRepository defines viewing request data operations
type ViewingRequestRepository interface {
	Create(ctx context.Context, request *entities.ViewingRequest) error
	GetByID(ctx context.Context, requestID string) (*entities.ViewingRequest, error)
	UpdateStatus(ctx context.Context, requestID string, status entities.RequestStatus) error
	List(ctx context.Context, filter entities.RequestFilter) ([]*entities.ViewingRequest, error)
	// CountStaleNew counts requests still in status "new" created more than
	// olderThanHours ago, grouped by dealer.
	CountStaleNew(ctx context.Context, olderThanHours int) (map[string]int64, error)
}
