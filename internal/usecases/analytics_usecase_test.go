package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auto-concierge.backend/internal/domain/entities"
	"auto-concierge.backend/internal/domain/repositories"
	"auto-concierge.backend/internal/usecases"
)

func TestAnalyticsUsecase_DealerSummary(t *testing.T) {
	dealerRepo := new(MockDealerRepository)
	vehicleRepo := new(MockVehicleRepository)
	requestRepo := new(MockViewingRequestRepository)
	uc := usecases.NewAnalyticsUsecase(dealerRepo, vehicleRepo, requestRepo)
	ctx := context.Background()

	vehicleRepo.On("List", mock.Anything, entities.VehicleFilter{DealerID: "kingston-motors", IncludeArchived: true}).
		Return([]*entities.Vehicle{
			{VehicleID: "v1", Status: entities.VehicleStatusAvailable, Availability: true},
			{VehicleID: "v2", Status: entities.VehicleStatusAvailable, Availability: false},
			{VehicleID: "v3", Status: entities.VehicleStatusSold},
			{VehicleID: "v4", Status: entities.VehicleStatusArchived, Archived: true},
		}, nil)

	requests := make([]*entities.ViewingRequest, 0, 7)
	for i := 0; i < 6; i++ {
		requests = append(requests, &entities.ViewingRequest{
			RequestID: "r", Type: entities.RequestTypeWhatsApp, Status: entities.RequestStatusNew,
		})
	}
	requests = append(requests, &entities.ViewingRequest{
		RequestID: "r7", Type: entities.RequestTypeWalkIn, Status: entities.RequestStatusClosed,
	})
	requestRepo.On("List", mock.Anything, entities.RequestFilter{DealerID: "kingston-motors"}).
		Return(requests, nil)

	summary, err := uc.GetDealerSummary(ctx, "kingston-motors")
	require.NoError(t, err)
	require.Equal(t, 4, summary.VehicleTotal)
	require.Equal(t, 1, summary.VehiclePublic)
	require.Equal(t, 2, summary.VehiclesByState["available"])
	require.Equal(t, 1, summary.VehiclesByState["sold"])
	require.Equal(t, 7, summary.RequestTotal)
	require.Equal(t, 6, summary.RequestsByState["new"])
	require.Equal(t, 6, summary.RequestsByType["whatsapp"])
	require.Len(t, summary.RecentRequests, usecases.RecentRequestCount)
}

func TestAnalyticsUsecase_AdminSummarySort(t *testing.T) {
	dealerRepo := new(MockDealerRepository)
	vehicleRepo := new(MockVehicleRepository)
	requestRepo := new(MockViewingRequestRepository)
	uc := usecases.NewAnalyticsUsecase(dealerRepo, vehicleRepo, requestRepo)
	ctx := context.Background()

	dealerRepo.On("List", mock.Anything, repositories.DealerFilter{}).Return([]*entities.Dealer{
		{DealerID: "quiet-active", Name: "Quiet", Status: entities.DealerStatusActive},
		{DealerID: "busy-paused", Name: "Busy Paused", Status: entities.DealerStatusPaused},
		{DealerID: "busy-active", Name: "Busy", Status: entities.DealerStatusActive},
	}, nil)
	vehicleRepo.On("List", mock.Anything, entities.VehicleFilter{IncludeArchived: true}).Return([]*entities.Vehicle{
		{VehicleID: "v1", DealerID: "busy-active"},
		{VehicleID: "v2", DealerID: "busy-paused"},
	}, nil)
	requestRepo.On("List", mock.Anything, entities.RequestFilter{}).Return([]*entities.ViewingRequest{
		{RequestID: "r1", DealerID: "busy-active", Status: entities.RequestStatusNew},
		{RequestID: "r2", DealerID: "busy-active", Status: entities.RequestStatusClosed},
		{RequestID: "r3", DealerID: "busy-paused", Status: entities.RequestStatusNew},
		{RequestID: "r4", DealerID: "busy-paused", Status: entities.RequestStatusNew},
		{RequestID: "r5", DealerID: "busy-paused", Status: entities.RequestStatusNew},
	}, nil)

	summary, err := uc.GetAdminSummary(ctx)
	require.NoError(t, err)
	require.Equal(t, 3, summary.DealerTotal)
	require.Equal(t, 2, summary.ActiveDealers)
	require.Equal(t, 2, summary.VehicleTotal)
	require.Equal(t, 5, summary.RequestTotal)

	// active dealers first, busier ones on top, paused trail regardless of volume
	require.Equal(t, "busy-active", summary.Dealers[0].DealerID)
	require.Equal(t, "quiet-active", summary.Dealers[1].DealerID)
	require.Equal(t, "busy-paused", summary.Dealers[2].DealerID)
	require.Equal(t, 2, summary.Dealers[0].RequestCount)
	require.Equal(t, 1, summary.Dealers[0].NewRequests)
	require.Equal(t, 3, summary.Dealers[2].NewRequests)
}
