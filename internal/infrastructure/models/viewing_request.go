package models

import (
	"time"
)

// ViewingRequest is a buyer lead row. Rows are never deleted.
type ViewingRequest struct {
	RequestID     string `gorm:"column:request_id;type:varchar(64);primaryKey"`
	DealerID      string `gorm:"column:dealer_id;type:varchar(40);not null;index"`
	VehicleID     string `gorm:"column:vehicle_id;type:varchar(64)"`
	Type          string `gorm:"type:varchar(20);not null"`
	Status        string `gorm:"type:varchar(20);not null;default:'new';index"`
	Name          string `gorm:"type:varchar(255);not null"`
	Phone         string `gorm:"type:varchar(32);not null"`
	Email         string `gorm:"type:varchar(255)"`
	PreferredDate string `gorm:"column:preferred_date;type:varchar(32)"`
	PreferredTime string `gorm:"column:preferred_time;type:varchar(32)"`
	Notes         string `gorm:"type:text"`
	Source        string `gorm:"type:varchar(20);not null;default:'storefront'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TableName overrides the table name
func (ViewingRequest) TableName() string {
	return "viewing_requests"
}
