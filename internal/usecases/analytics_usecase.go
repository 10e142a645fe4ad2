package usecases

import (
	"context"
	"sort"

	"auto-concierge.backend/internal/domain/entities"
	"auto-concierge.backend/internal/domain/repositories"
)

// RecentRequestCount is how many of the latest leads a dealer summary shows
const RecentRequestCount = 5

// DealerSummary aggregates one dealer's storefront activity
type DealerSummary struct {
	DealerID        string                     `json:"dealerId"`
	VehicleTotal    int                        `json:"vehicleTotal"`
	VehiclePublic   int                        `json:"vehiclePublic"`
	VehiclesByState map[string]int             `json:"vehiclesByStatus"`
	RequestTotal    int                        `json:"requestTotal"`
	RequestsByState map[string]int             `json:"requestsByStatus"`
	RequestsByType  map[string]int             `json:"requestsByType"`
	RecentRequests  []*entities.ViewingRequest `json:"recentRequests"`
}

// AdminDealerRow is one dealer's line in the platform summary
type AdminDealerRow struct {
	DealerID     string `json:"dealerId"`
	Name         string `json:"name"`
	Status       string `json:"status"`
	VehicleCount int    `json:"vehicleCount"`
	RequestCount int    `json:"requestCount"`
	NewRequests  int    `json:"newRequests"`
}

// AdminSummary aggregates platform-wide activity
type AdminSummary struct {
	DealerTotal   int               `json:"dealerTotal"`
	ActiveDealers int               `json:"activeDealers"`
	VehicleTotal  int               `json:"vehicleTotal"`
	RequestTotal  int               `json:"requestTotal"`
	Dealers       []*AdminDealerRow `json:"dealers"`
}

// AnalyticsUsecase aggregates inventory and lead activity in process; the
// row counts involved stay small enough that SQL aggregation would be
// premature.
type AnalyticsUsecase struct {
	dealerRepo  repositories.DealerRepository
	vehicleRepo repositories.VehicleRepository
	requestRepo repositories.ViewingRequestRepository
}

// NewAnalyticsUsecase creates a new analytics usecase
func NewAnalyticsUsecase(
	dealerRepo repositories.DealerRepository,
	vehicleRepo repositories.VehicleRepository,
	requestRepo repositories.ViewingRequestRepository,
) *AnalyticsUsecase {
	return &AnalyticsUsecase{
		dealerRepo:  dealerRepo,
		vehicleRepo: vehicleRepo,
		requestRepo: requestRepo,
	}
}

// GetDealerSummary builds the dealer dashboard numbers
func (u *AnalyticsUsecase) GetDealerSummary(ctx context.Context, dealerID string) (*DealerSummary, error) {
	vehicles, err := u.vehicleRepo.List(ctx, entities.VehicleFilter{DealerID: dealerID, IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	requests, err := u.requestRepo.List(ctx, entities.RequestFilter{DealerID: dealerID})
	if err != nil {
		return nil, err
	}

	summary := &DealerSummary{
		DealerID:        dealerID,
		VehicleTotal:    len(vehicles),
		VehiclesByState: map[string]int{},
		RequestTotal:    len(requests),
		RequestsByState: map[string]int{},
		RequestsByType:  map[string]int{},
	}

	for _, v := range vehicles {
		summary.VehiclesByState[string(v.Status)]++
		if v.PubliclyVisible() {
			summary.VehiclePublic++
		}
	}
	for _, r := range requests {
		summary.RequestsByState[string(r.Status)]++
		summary.RequestsByType[string(r.Type)]++
	}

	// Request lists come back newest first
	recent := requests
	if len(recent) > RecentRequestCount {
		recent = recent[:RecentRequestCount]
	}
	summary.RecentRequests = recent

	return summary, nil
}

// GetAdminSummary builds the platform overview, active dealers first and
// busiest dealers (by lead volume) at the top within each group
func (u *AnalyticsUsecase) GetAdminSummary(ctx context.Context) (*AdminSummary, error) {
	dealers, err := u.dealerRepo.List(ctx, repositories.DealerFilter{})
	if err != nil {
		return nil, err
	}
	vehicles, err := u.vehicleRepo.List(ctx, entities.VehicleFilter{IncludeArchived: true})
	if err != nil {
		return nil, err
	}
	requests, err := u.requestRepo.List(ctx, entities.RequestFilter{})
	if err != nil {
		return nil, err
	}

	vehicleCounts := map[string]int{}
	for _, v := range vehicles {
		vehicleCounts[v.DealerID]++
	}
	requestCounts := map[string]int{}
	newCounts := map[string]int{}
	for _, r := range requests {
		requestCounts[r.DealerID]++
		if r.Status == entities.RequestStatusNew {
			newCounts[r.DealerID]++
		}
	}

	summary := &AdminSummary{
		DealerTotal:  len(dealers),
		VehicleTotal: len(vehicles),
		RequestTotal: len(requests),
		Dealers:      make([]*AdminDealerRow, 0, len(dealers)),
	}
	for _, d := range dealers {
		if d.Status == entities.DealerStatusActive {
			summary.ActiveDealers++
		}
		summary.Dealers = append(summary.Dealers, &AdminDealerRow{
			DealerID:     d.DealerID,
			Name:         d.Name,
			Status:       string(d.Status),
			VehicleCount: vehicleCounts[d.DealerID],
			RequestCount: requestCounts[d.DealerID],
			NewRequests:  newCounts[d.DealerID],
		})
	}

	sort.SliceStable(summary.Dealers, func(i, j int) bool {
		a, b := summary.Dealers[i], summary.Dealers[j]
		if a.Status != b.Status {
			return a.Status == string(entities.DealerStatusActive)
		}
		return a.RequestCount > b.RequestCount
	})

	return summary, nil
}
