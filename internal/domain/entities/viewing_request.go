package entities

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
)

// RequestType represents the channel a buyer asked to view through
type RequestType string

const (
	RequestTypeWhatsApp  RequestType = "whatsapp"
	RequestTypeLiveVideo RequestType = "live_video"
	RequestTypeWalkIn    RequestType = "walk_in"
)

// RequestStatus represents the dealer-managed lifecycle of a lead
type RequestStatus string

const (
	RequestStatusNew       RequestStatus = "new"
	RequestStatusContacted RequestStatus = "contacted"
	RequestStatusBooked    RequestStatus = "booked"
	RequestStatusClosed    RequestStatus = "closed"
	RequestStatusNoShow    RequestStatus = "no_show"
)

// Request sources
const (
	RequestSourceStorefront = "storefront"
	RequestSourceAdmin      = "admin"
)

// requestTypeAliases maps storefront shorthand to the canonical enum
var requestTypeAliases = map[string]RequestType{
	"whatsapp":   RequestTypeWhatsApp,
	"wa":         RequestTypeWhatsApp,
	"chat":       RequestTypeWhatsApp,
	"live_video": RequestTypeLiveVideo,
	"livevideo":  RequestTypeLiveVideo,
	"live-video": RequestTypeLiveVideo,
	"video":      RequestTypeLiveVideo,
	"walk_in":    RequestTypeWalkIn,
	"walkin":     RequestTypeWalkIn,
	"walk-in":    RequestTypeWalkIn,
	"visit":      RequestTypeWalkIn,
	"in_person":  RequestTypeWalkIn,
}

// NormalizeRequestType maps a raw request type or alias to the canonical
// enum. ok is false for anything outside the closed set.
func NormalizeRequestType(raw string) (RequestType, bool) {
	t, ok := requestTypeAliases[strings.ToLower(strings.TrimSpace(raw))]
	return t, ok
}

// IsValidRequestStatus reports whether s is a known request status
func IsValidRequestStatus(s string) bool {
	switch RequestStatus(strings.ToLower(s)) {
	case RequestStatusNew, RequestStatusContacted, RequestStatusBooked, RequestStatusClosed, RequestStatusNoShow:
		return true
	default:
		return false
	}
}

// CountPhoneDigits returns the number of digits in a phone string
func CountPhoneDigits(phone string) int {
	count := 0
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			count++
		}
	}
	return count
}

// ViewingRequest represents a buyer-initiated lead. Requests are never
// deleted; dealers and admins only move them through statuses.
type ViewingRequest struct {
	RequestID     string        `json:"requestId"`
	DealerID      string        `json:"dealerId"`
	VehicleID     null.String   `json:"vehicleId,omitempty"`
	Type          RequestType   `json:"type"`
	Status        RequestStatus `json:"status"`
	Name          string        `json:"name"`
	Phone         string        `json:"phone"`
	Email         null.String   `json:"email,omitempty"`
	PreferredDate null.String   `json:"preferredDate,omitempty"`
	PreferredTime null.String   `json:"preferredTime,omitempty"`
	Notes         null.String   `json:"notes,omitempty"`
	Source        string        `json:"source"`
	CreatedAt     time.Time     `json:"createdAt"`
	UpdatedAt     time.Time     `json:"updatedAt"`
}

// CreateRequestInput represents the public storefront lead form
type CreateRequestInput struct {
	RequestType   string `json:"requestType" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	Phone         string `json:"phone" binding:"required"`
	Email         string `json:"email,omitempty"`
	VehicleID     string `json:"vehicleId,omitempty"`
	PreferredDate string `json:"preferredDate,omitempty"`
	PreferredTime string `json:"preferredTime,omitempty"`
	Notes         string `json:"notes,omitempty"`
}

// RequestFilter narrows viewing request list queries
type RequestFilter struct {
	DealerID string
	Status   string
	Type     string
}
