package entities

import (
	"time"

	"github.com/volatiletech/null/v8"
)

// VehicleStatus represents a vehicle listing status
type VehicleStatus string

const (
	VehicleStatusAvailable VehicleStatus = "available"
	VehicleStatusPending   VehicleStatus = "pending"
	VehicleStatusSold      VehicleStatus = "sold"
	VehicleStatusArchived  VehicleStatus = "archived"
)

// IsValidVehicleStatus reports whether s is a known vehicle status
func IsValidVehicleStatus(s string) bool {
	switch VehicleStatus(s) {
	case VehicleStatusAvailable, VehicleStatusPending, VehicleStatusSold, VehicleStatusArchived:
		return true
	default:
		return false
	}
}

// Vehicle represents an inventory item owned by exactly one dealer.
// Archived is a terminal soft-delete: once set it cannot be reverted
// through the dealer-facing paths.
type Vehicle struct {
	VehicleID    string        `json:"vehicleId"`
	DealerID     string        `json:"dealerId"`
	Title        string        `json:"title"`
	Make         null.String   `json:"make,omitempty"`
	Model        null.String   `json:"model,omitempty"`
	Year         null.Int      `json:"year,omitempty"`
	VIN          null.String   `json:"vin,omitempty"`
	Price        null.Float64  `json:"price,omitempty"`
	Mileage      null.Int      `json:"mileage,omitempty"`
	Color        null.String   `json:"color,omitempty"`
	BodyType     null.String   `json:"bodyType,omitempty"`
	Transmission null.String   `json:"transmission,omitempty"`
	FuelType     null.String   `json:"fuelType,omitempty"`
	Description  null.String   `json:"description,omitempty"`
	Status       VehicleStatus `json:"status"`
	Availability bool          `json:"availability"`
	Archived     bool          `json:"archived"`
	Photos       []string      `json:"photos"`
	CreatedAt    time.Time     `json:"createdAt"`
	UpdatedAt    time.Time     `json:"updatedAt"`
}

// PubliclyVisible reports whether the vehicle shows on the storefront
func (v *Vehicle) PubliclyVisible() bool {
	return v.Availability && !v.Archived
}

// UpsertVehicleInput represents dealer/admin vehicle create-or-update input.
// DealerID is always forced server-side on the dealer path.
type UpsertVehicleInput struct {
	VehicleID    string   `json:"vehicleId,omitempty"`
	Title        string   `json:"title" binding:"required"`
	Make         string   `json:"make,omitempty"`
	Model        string   `json:"model,omitempty"`
	Year         int      `json:"year,omitempty"`
	VIN          string   `json:"vin,omitempty"`
	Price        float64  `json:"price,omitempty"`
	Mileage      int      `json:"mileage,omitempty"`
	Color        string   `json:"color,omitempty"`
	BodyType     string   `json:"bodyType,omitempty"`
	Transmission string   `json:"transmission,omitempty"`
	FuelType     string   `json:"fuelType,omitempty"`
	Description  string   `json:"description,omitempty"`
	Status       string   `json:"status,omitempty"`
	Availability *bool    `json:"availability,omitempty"`
	Photos       []string `json:"photos,omitempty"`
}

// VehicleFilter narrows vehicle list queries
type VehicleFilter struct {
	DealerID        string
	DealerIDs       []string
	Status          string
	PublicOnly      bool
	IncludeArchived bool
}
