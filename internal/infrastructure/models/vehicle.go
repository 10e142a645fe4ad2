package models

import (
	"time"
)

// Vehicle is an inventory row. Soft delete is the archived flag, not a
// deleted_at column: archived rows stay queryable for dealers and admins.
type Vehicle struct {
	VehicleID    string `gorm:"column:vehicle_id;type:varchar(64);primaryKey"`
	DealerID     string `gorm:"column:dealer_id;type:varchar(40);not null;index"`
	Title        string `gorm:"type:varchar(255);not null"`
	Make         string `gorm:"type:varchar(100)"`
	Model        string `gorm:"type:varchar(100)"`
	Year         int
	VIN          string  `gorm:"column:vin;type:varchar(32)"`
	Price        float64 `gorm:"type:decimal(12,2)"`
	Mileage      int
	Color        string `gorm:"type:varchar(50)"`
	BodyType     string `gorm:"column:body_type;type:varchar(50)"`
	Transmission string `gorm:"type:varchar(50)"`
	FuelType     string `gorm:"column:fuel_type;type:varchar(50)"`
	Description  string `gorm:"type:text"`
	Status       string `gorm:"type:varchar(20);not null;default:'available';index"`
	Availability bool   `gorm:"not null;default:true"`
	Archived     bool   `gorm:"not null;default:false;index"`
	Photos       string `gorm:"type:text"` // JSON array of media URLs
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName overrides the table name
func (Vehicle) TableName() string {
	return "vehicles"
}
