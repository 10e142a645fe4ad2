package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
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
	);`)
}

func createVehicleTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE vehicles (
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
	);`)
}

func createViewingRequestTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE viewing_requests (
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
	);`)
}
