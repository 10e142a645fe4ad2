package repositories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
)

func seedVehicle(t *testing.T, repo *VehicleRepository, dealerID string) *entities.Vehicle {
	t.Helper()
	v := &entities.Vehicle{
		VehicleID:    uuid.NewString(),
		DealerID:     dealerID,
		Title:        "2019 Toyota Corolla",
		Make:         null.StringFrom("Toyota"),
		Model:        null.StringFrom("Corolla"),
		Year:         null.IntFrom(2019),
		Price:        null.Float64From(2150000),
		Availability: true,
		Photos:       []string{"https://cdn.example.com/corolla-1.jpg"},
	}
	require.NoError(t, repo.Create(context.Background(), v))
	return v
}

func TestVehicleRepository_CreateGetUpdate(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	v := seedVehicle(t, repo, "kingston-motors")
	require.Equal(t, entities.VehicleStatusAvailable, v.Status, "status defaults to available")

	got, err := repo.GetByID(ctx, v.VehicleID)
	require.NoError(t, err)
	require.Equal(t, "2019 Toyota Corolla", got.Title)
	require.Equal(t, []string{"https://cdn.example.com/corolla-1.jpg"}, got.Photos)
	require.Equal(t, 2019, got.Year.Int)

	got.Title = "2019 Toyota Corolla LE"
	got.Status = entities.VehicleStatusSold
	got.Availability = false
	require.NoError(t, repo.Update(ctx, got))

	updated, err := repo.GetByID(ctx, v.VehicleID)
	require.NoError(t, err)
	require.Equal(t, "2019 Toyota Corolla LE", updated.Title)
	require.Equal(t, entities.VehicleStatusSold, updated.Status)
	require.False(t, updated.Availability)
	require.Equal(t, v.DealerID, updated.DealerID, "dealer_id is immutable on update")
}

func TestVehicleRepository_ArchiveIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	v := seedVehicle(t, repo, "kingston-motors")

	require.NoError(t, repo.Archive(ctx, v.VehicleID))
	require.NoError(t, repo.Archive(ctx, v.VehicleID))

	got, err := repo.GetByID(ctx, v.VehicleID)
	require.NoError(t, err)
	require.True(t, got.Archived)
	require.False(t, got.Availability)
	require.Equal(t, entities.VehicleStatusArchived, got.Status)

	require.ErrorIs(t, repo.Archive(ctx, "missing"), domainerrors.ErrNotFound)
}

func TestVehicleRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	visible := seedVehicle(t, repo, "dealer-a")
	hidden := seedVehicle(t, repo, "dealer-a")
	hidden.Availability = false
	require.NoError(t, repo.Update(ctx, hidden))
	archived := seedVehicle(t, repo, "dealer-a")
	require.NoError(t, repo.Archive(ctx, archived.VehicleID))
	seedVehicle(t, repo, "dealer-b")

	public, err := repo.List(ctx, entities.VehicleFilter{DealerID: "dealer-a", PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, public, 1)
	require.Equal(t, visible.VehicleID, public[0].VehicleID)

	mine, err := repo.List(ctx, entities.VehicleFilter{DealerID: "dealer-a"})
	require.NoError(t, err)
	require.Len(t, mine, 2, "archived rows hidden unless asked for")

	everything, err := repo.List(ctx, entities.VehicleFilter{DealerID: "dealer-a", IncludeArchived: true})
	require.NoError(t, err)
	require.Len(t, everything, 3)

	multi, err := repo.List(ctx, entities.VehicleFilter{DealerIDs: []string{"dealer-a", "dealer-b"}, PublicOnly: true})
	require.NoError(t, err)
	require.Len(t, multi, 2)
}

func TestVehicleRepository_UpdateStatusBulk(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	a := seedVehicle(t, repo, "dealer-a")
	b := seedVehicle(t, repo, "dealer-a")

	n, err := repo.UpdateStatusBulk(ctx, []string{a.VehicleID, b.VehicleID, "missing"}, entities.VehicleStatusSold)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)

	got, err := repo.GetByID(ctx, a.VehicleID)
	require.NoError(t, err)
	require.Equal(t, entities.VehicleStatusSold, got.Status)

	n, err = repo.UpdateStatusBulk(ctx, nil, entities.VehicleStatusSold)
	require.NoError(t, err)
	require.Zero(t, n)
}

func TestVehicleRepository_CountByDealer(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	seedVehicle(t, repo, "dealer-a")
	archived := seedVehicle(t, repo, "dealer-a")
	require.NoError(t, repo.Archive(ctx, archived.VehicleID))

	count, err := repo.CountByDealer(ctx, "dealer-a")
	require.NoError(t, err)
	require.EqualValues(t, 1, count)
}

func TestVehicleRepository_NotFoundAndDBErrors(t *testing.T) {
	db := newTestDB(t)
	createVehicleTable(t, db)
	repo := NewVehicleRepository(db)
	ctx := context.Background()

	_, err := repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	err = repo.Update(ctx, &entities.Vehicle{VehicleID: "missing", DealerID: "d", Title: "x"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)

	bare := newTestDB(t)
	// intentionally skip table creation
	badRepo := NewVehicleRepository(bare)
	_, err = badRepo.GetByID(ctx, "any")
	require.Error(t, err)
	_, err = badRepo.List(ctx, entities.VehicleFilter{})
	require.Error(t, err)
	_, err = badRepo.CountByDealer(ctx, "any")
	require.Error(t, err)
}
