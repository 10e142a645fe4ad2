package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"auto-concierge.backend/internal/domain/entities"
	"auto-concierge.backend/internal/infrastructure/repositories"
	"auto-concierge.backend/internal/usecases"
	"auto-concierge.backend/pkg/crypto"
	"auto-concierge.backend/pkg/jwt"
	"auto-concierge.backend/pkg/redis"
)

// noopMailer satisfies mailer.Mailer without sending anything
type noopMailer struct{}

func (noopMailer) SendWelcomeEmail(to, dealerID, passcode string) error        { return nil }
func (noopMailer) SendPasscodeResetEmail(to, dealerID, resetLink string) error { return nil }
func (noopMailer) SendSuspensionEmail(to, dealerID string) error               { return nil }
func (noopMailer) SendPaymentFailedEmail(to, dealerID string) error            { return nil }
func (noopMailer) SendStaleRequestAlert(to, dealerID string, n int) error      { return nil }

// testEnv wires real usecases over an in-memory database so handler tests
// exercise the full request path
type testEnv struct {
	db          *gorm.DB
	dealerRepo  *repositories.DealerRepository
	vehicleRepo *repositories.VehicleRepository
	requestRepo *repositories.ViewingRequestRepository
	jwtService  *jwt.JWTService

	authUsecase      *usecases.AuthUsecase
	inventoryUsecase *usecases.InventoryUsecase
	requestUsecase   *usecases.RequestUsecase
	analyticsUsecase *usecases.AnalyticsUsecase
	adminUsecase     *usecases.AdminUsecase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")

	for _, ddl := range []string{
		`CREATE TABLE profiles (
			dealer_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			status TEXT NOT NULL,
			whatsapp TEXT,
			email TEXT,
			logo_url TEXT,
			passcode_hash TEXT NOT NULL,
			plan TEXT,
			trial_ends_at DATETIME,
			stripe_customer_id TEXT,
			stripe_subscription_id TEXT,
			stripe_subscription_status TEXT,
			referral_code TEXT,
			referred_by TEXT,
			referral_credits INTEGER,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE vehicles (
			vehicle_id TEXT PRIMARY KEY,
			dealer_id TEXT NOT NULL,
			title TEXT NOT NULL,
			make TEXT,
			model TEXT,
			year INTEGER,
			vin TEXT,
			price DECIMAL(12,2),
			mileage INTEGER,
			color TEXT,
			body_type TEXT,
			transmission TEXT,
			fuel_type TEXT,
			description TEXT,
			status TEXT NOT NULL,
			availability BOOLEAN NOT NULL,
			archived BOOLEAN NOT NULL,
			photos TEXT,
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE viewing_requests (
			request_id TEXT PRIMARY KEY,
			dealer_id TEXT NOT NULL,
			vehicle_id TEXT,
			type TEXT NOT NULL,
			status TEXT NOT NULL,
			name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			preferred_date TEXT,
			preferred_time TEXT,
			notes TEXT,
			source TEXT NOT NULL,
			created_at DATETIME,
			updated_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(ddl).Error)
	}

	dealerRepo := repositories.NewDealerRepository(db)
	vehicleRepo := repositories.NewVehicleRepository(db)
	requestRepo := repositories.NewViewingRequestRepository(db)
	jwtService := jwt.NewJWTService("handler-test-secret", time.Hour)

	mail := noopMailer{}
	return &testEnv{
		db:          db,
		dealerRepo:  dealerRepo,
		vehicleRepo: vehicleRepo,
		requestRepo: requestRepo,
		jwtService:  jwtService,

		authUsecase: usecases.NewAuthUsecase(
			dealerRepo, jwtService, redis.NewResetTokenStore(), mail,
			"admin", "test-admin-password", "https://store.example.com"),
		inventoryUsecase: usecases.NewInventoryUsecase(dealerRepo, vehicleRepo),
		requestUsecase:   usecases.NewRequestUsecase(dealerRepo, vehicleRepo, requestRepo),
		analyticsUsecase: usecases.NewAnalyticsUsecase(dealerRepo, vehicleRepo, requestRepo),
		adminUsecase:     usecases.NewAdminUsecase(dealerRepo, vehicleRepo, requestRepo, mail),
	}
}

func (e *testEnv) seedDealer(t *testing.T, dealerID, passcode string, status entities.DealerStatus) *entities.Dealer {
	t.Helper()
	hash, err := crypto.HashPasscode(passcode)
	require.NoError(t, err)

	dealer := &entities.Dealer{
		DealerID:     dealerID,
		Name:         "Test Motors",
		Status:       status,
		WhatsApp:     null.StringFrom("+15550001111"),
		Email:        null.StringFrom(dealerID + "@example.com"),
		PasscodeHash: hash,
	}
	require.NoError(t, e.dealerRepo.Create(t.Context(), dealer))
	return dealer
}
