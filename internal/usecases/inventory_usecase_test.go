package usecases_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/usecases"
)

func newInventoryFixture() (*usecases.InventoryUsecase, *MockDealerRepository, *MockVehicleRepository) {
	dealerRepo := new(MockDealerRepository)
	vehicleRepo := new(MockVehicleRepository)
	return usecases.NewInventoryUsecase(dealerRepo, vehicleRepo), dealerRepo, vehicleRepo
}

func TestInventoryUsecase_GetPublicDealer(t *testing.T) {
	uc, dealerRepo, _ := newInventoryFixture()
	ctx := context.Background()

	dealerRepo.On("GetByID", mock.Anything, "kingston-motors").Return(&entities.Dealer{
		DealerID:     "kingston-motors",
		Name:         "Kingston Motors",
		Status:       entities.DealerStatusActive,
		PasscodeHash: "pbkdf2$1$a$b",
	}, nil)

	pub, err := uc.GetPublicDealer(ctx, "kingston-motors")
	require.NoError(t, err)
	require.Equal(t, "Kingston Motors", pub.Name)
}

func TestInventoryUsecase_PublicDealerGuards(t *testing.T) {
	uc, dealerRepo, _ := newInventoryFixture()
	ctx := context.Background()

	_, err := uc.GetPublicDealer(ctx, "x")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status, "too-short id fails the format check")

	dealerRepo.On("GetByID", mock.Anything, "ghost-dealer").Return(nil, domainerrors.ErrNotFound)
	_, err = uc.GetPublicDealer(ctx, "ghost-dealer")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Status)

	dealerRepo.On("GetByID", mock.Anything, "paused-dealer").Return(&entities.Dealer{
		DealerID: "paused-dealer", Status: entities.DealerStatusPaused,
	}, nil)
	_, err = uc.ListPublicVehicles(ctx, "paused-dealer", true)
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status, "paused dealer hidden regardless of flags")
}

func TestInventoryUsecase_ListPublicVehiclesMulti(t *testing.T) {
	uc, dealerRepo, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	_, err := uc.ListPublicVehiclesMulti(ctx, []string{"aaa", "bbb", "ccc", "ddd"})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status, "more than three dealers rejected")

	dealerRepo.On("GetByID", mock.Anything, "dealer-a").Return(&entities.Dealer{DealerID: "dealer-a", Status: entities.DealerStatusActive}, nil)
	dealerRepo.On("GetByID", mock.Anything, "dealer-b").Return(&entities.Dealer{DealerID: "dealer-b", Status: entities.DealerStatusPaused}, nil)
	dealerRepo.On("GetByID", mock.Anything, "dealer-c").Return(nil, domainerrors.ErrNotFound)
	vehicleRepo.On("List", mock.Anything, entities.VehicleFilter{DealerIDs: []string{"dealer-a"}, PublicOnly: true}).
		Return([]*entities.Vehicle{{VehicleID: "v1", DealerID: "dealer-a"}}, nil)

	vehicles, err := uc.ListPublicVehiclesMulti(ctx, []string{"dealer-a", "dealer-b", "dealer-c"})
	require.NoError(t, err)
	require.Len(t, vehicles, 1, "paused and unknown dealers skipped")
}

func TestInventoryUsecase_UpsertCreatesWithForcedOwner(t *testing.T) {
	uc, dealerRepo, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	dealerRepo.On("GetByID", mock.Anything, "kingston-motors").Return(&entities.Dealer{DealerID: "kingston-motors", Status: entities.DealerStatusActive}, nil)
	vehicleRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Vehicle")).Return(nil)

	vehicle, err := uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{
		Title: "2019 Toyota Corolla",
	})
	require.NoError(t, err)
	require.Equal(t, "kingston-motors", vehicle.DealerID)
	require.NotEmpty(t, vehicle.VehicleID)
	require.True(t, vehicle.Availability)
	require.Equal(t, entities.VehicleStatusAvailable, vehicle.Status)
}

func TestInventoryUsecase_UpsertCrossDealerIs403(t *testing.T) {
	uc, dealerRepo, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	dealerRepo.On("GetByID", mock.Anything, "kingston-motors").Return(&entities.Dealer{DealerID: "kingston-motors", Status: entities.DealerStatusActive}, nil)
	vehicleRepo.On("GetByID", mock.Anything, "v1").Return(&entities.Vehicle{VehicleID: "v1", DealerID: "other-dealer"}, nil)

	_, err := uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{
		VehicleID: "v1",
		Title:     "Hijacked listing",
	})
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status)
	vehicleRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	vehicleRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInventoryUsecase_UpsertCannotUnarchive(t *testing.T) {
	uc, dealerRepo, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	dealerRepo.On("GetByID", mock.Anything, "kingston-motors").Return(&entities.Dealer{DealerID: "kingston-motors", Status: entities.DealerStatusActive}, nil)
	avail := true
	vehicleRepo.On("GetByID", mock.Anything, "v1").Return(&entities.Vehicle{
		VehicleID: "v1", DealerID: "kingston-motors", Archived: true,
		Status: entities.VehicleStatusArchived,
	}, nil)
	vehicleRepo.On("Update", mock.Anything, mock.AnythingOfType("*entities.Vehicle")).Return(nil)

	vehicle, err := uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{
		VehicleID:    "v1",
		Title:        "Back from the dead",
		Status:       string(entities.VehicleStatusAvailable),
		Availability: &avail,
	})
	require.NoError(t, err)
	require.True(t, vehicle.Archived, "archived is monotonic through this path")
	require.False(t, vehicle.Availability)
	require.Equal(t, entities.VehicleStatusArchived, vehicle.Status)
}

func TestInventoryUsecase_UpsertValidation(t *testing.T) {
	uc, _, _ := newInventoryFixture()
	ctx := context.Background()

	var appErr *domainerrors.AppError
	_, err := uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)

	_, err = uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{Title: "x", Status: "flying"})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)

	_, err = uc.UpsertVehicle(ctx, "kingston-motors", &entities.UpsertVehicleInput{Title: "x", Status: "archived"})
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status, "archiving goes through the archive endpoint")
}

func TestInventoryUsecase_ArchiveOwnershipCheck(t *testing.T) {
	uc, _, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	vehicleRepo.On("GetByID", mock.Anything, "v1").Return(&entities.Vehicle{VehicleID: "v1", DealerID: "other-dealer"}, nil)
	err := uc.ArchiveVehicle(ctx, "kingston-motors", "v1")
	var appErr *domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 403, appErr.Status)

	// admin path skips the ownership check
	vehicleRepo.On("Archive", mock.Anything, "v1").Return(nil)
	require.NoError(t, uc.ArchiveVehicle(ctx, "", "v1"))

	vehicleRepo.On("GetByID", mock.Anything, "missing").Return(nil, domainerrors.ErrNotFound)
	err = uc.ArchiveVehicle(ctx, "kingston-motors", "missing")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 404, appErr.Status)
}

func TestInventoryUsecase_BulkUpdateStatus(t *testing.T) {
	uc, _, vehicleRepo := newInventoryFixture()
	ctx := context.Background()

	var appErr *domainerrors.AppError
	_, err := uc.BulkUpdateStatus(ctx, nil, "sold")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)

	_, err = uc.BulkUpdateStatus(ctx, []string{"v1"}, "flying")
	require.ErrorAs(t, err, &appErr)
	require.Equal(t, 400, appErr.Status)

	vehicleRepo.On("UpdateStatusBulk", mock.Anything, []string{"v1", "v2"}, entities.VehicleStatusSold).Return(int64(2), nil)
	n, err := uc.BulkUpdateStatus(ctx, []string{"v1", "v2"}, "sold")
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}
