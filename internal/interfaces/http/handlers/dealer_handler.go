package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/interfaces/http/middleware"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/internal/usecases"
)

// DealerHandler handles the authenticated dealer endpoints
type DealerHandler struct {
	authUsecase      *usecases.AuthUsecase
	inventoryUsecase *usecases.InventoryUsecase
	requestUsecase   *usecases.RequestUsecase
	analyticsUsecase *usecases.AnalyticsUsecase
	mediaUsecase     *usecases.MediaUsecase
}

// NewDealerHandler creates a new dealer handler
func NewDealerHandler(
	authUsecase *usecases.AuthUsecase,
	inventoryUsecase *usecases.InventoryUsecase,
	requestUsecase *usecases.RequestUsecase,
	analyticsUsecase *usecases.AnalyticsUsecase,
	mediaUsecase *usecases.MediaUsecase,
) *DealerHandler {
	return &DealerHandler{
		authUsecase:      authUsecase,
		inventoryUsecase: inventoryUsecase,
		requestUsecase:   requestUsecase,
		analyticsUsecase: analyticsUsecase,
		mediaUsecase:     mediaUsecase,
	}
}

// Login authenticates a dealer
// POST /api/dealer/login
func (h *DealerHandler) Login(c *gin.Context) {
	var input entities.DealerLoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	dealer, token, err := h.authUsecase.DealerLogin(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"token": token, "dealer": dealer})
}

// RequestReset starts a passcode reset; always answers the same way
// POST /api/dealer/request-reset
func (h *DealerHandler) RequestReset(c *gin.Context) {
	var input struct {
		Identifier string `json:"identifier" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("identifier is required"))
		return
	}

	if err := h.authUsecase.RequestPasscodeReset(c.Request.Context(), input.Identifier); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "if the account exists, a reset link has been sent"})
}

// ResetPasscode completes a passcode reset with an emailed token
// POST /api/dealer/reset-passcode
func (h *DealerHandler) ResetPasscode(c *gin.Context) {
	var input struct {
		Token    string `json:"token" binding:"required"`
		Passcode string `json:"passcode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("token and passcode are required"))
		return
	}

	if err := h.authUsecase.ResetPasscode(c.Request.Context(), input.Token, input.Passcode); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "passcode updated"})
}

// Me returns the authenticated dealer's own profile
// GET /api/dealer/me
func (h *DealerHandler) Me(c *gin.Context) {
	dealer, ok := middleware.GetDealer(c)
	if !ok {
		response.Error(c, domainerrors.Unauthorized("authentication required"))
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dealer": dealer})
}

// ListVehicles returns the dealer's own inventory
// GET /api/dealer/vehicles
func (h *DealerHandler) ListVehicles(c *gin.Context) {
	dealerID, _ := middleware.GetDealerID(c)
	includeArchived := c.Query("includeArchived") == "1"

	vehicles, err := h.inventoryUsecase.ListDealerVehicles(c.Request.Context(), dealerID, includeArchived)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

// UpsertVehicle creates or updates one of the dealer's vehicles
// POST /api/dealer/vehicles
func (h *DealerHandler) UpsertVehicle(c *gin.Context) {
	var input entities.UpsertVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	dealerID, _ := middleware.GetDealerID(c)
	vehicle, err := h.inventoryUsecase.UpsertVehicle(c.Request.Context(), dealerID, &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	status := http.StatusOK
	if input.VehicleID == "" {
		status = http.StatusCreated
	}
	response.OK(c, status, gin.H{"vehicle": vehicle})
}

// ArchiveVehicle archives one of the dealer's vehicles
// POST /api/dealer/vehicles/:id/archive
func (h *DealerHandler) ArchiveVehicle(c *gin.Context) {
	dealerID, _ := middleware.GetDealerID(c)
	if err := h.inventoryUsecase.ArchiveVehicle(c.Request.Context(), dealerID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "vehicle archived"})
}

// ListRequests returns the dealer's viewing requests
// GET /api/dealer/requests
func (h *DealerHandler) ListRequests(c *gin.Context) {
	dealerID, _ := middleware.GetDealerID(c)
	requests, err := h.requestUsecase.ListRequests(c.Request.Context(), entities.RequestFilter{
		DealerID: dealerID,
		Status:   c.Query("status"),
		Type:     c.Query("type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"requests": requests})
}

// UpdateRequestStatus moves one of the dealer's requests along
// POST /api/dealer/requests/:id/status
func (h *DealerHandler) UpdateRequestStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("status is required"))
		return
	}

	dealerID, _ := middleware.GetDealerID(c)
	request, err := h.requestUsecase.UpdateRequestStatus(c.Request.Context(), dealerID, c.Param("id"), input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"request": request})
}

// Summary returns the dealer dashboard aggregation
// GET /api/dealer/summary
func (h *DealerHandler) Summary(c *gin.Context) {
	dealerID, _ := middleware.GetDealerID(c)
	summary, err := h.analyticsUsecase.GetDealerSummary(c.Request.Context(), dealerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"summary": summary})
}

// SignMedia signs a Cloudinary direct upload for the dealer's folder
// POST /api/dealer/media/sign
func (h *DealerHandler) SignMedia(c *gin.Context) {
	dealerID, _ := middleware.GetDealerID(c)
	signature, err := h.mediaUsecase.SignUpload(dealerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"upload": signature})
}
