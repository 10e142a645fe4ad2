package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/internal/usecases"
)

// AdminHandler handles the platform-operator endpoints
type AdminHandler struct {
	authUsecase      *usecases.AuthUsecase
	adminUsecase     *usecases.AdminUsecase
	inventoryUsecase *usecases.InventoryUsecase
	requestUsecase   *usecases.RequestUsecase
	analyticsUsecase *usecases.AnalyticsUsecase
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(
	authUsecase *usecases.AuthUsecase,
	adminUsecase *usecases.AdminUsecase,
	inventoryUsecase *usecases.InventoryUsecase,
	requestUsecase *usecases.RequestUsecase,
	analyticsUsecase *usecases.AnalyticsUsecase,
) *AdminHandler {
	return &AdminHandler{
		authUsecase:      authUsecase,
		adminUsecase:     adminUsecase,
		inventoryUsecase: inventoryUsecase,
		requestUsecase:   requestUsecase,
		analyticsUsecase: analyticsUsecase,
	}
}

// Login authenticates the platform operator
// POST /api/admin/login
func (h *AdminHandler) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("username and password are required"))
		return
	}

	token, err := h.authUsecase.AdminLogin(input.Username, input.Password)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"token": token})
}

// ListDealers lists dealer profiles with optional filters
// GET /api/admin/dealers?status=&search=
func (h *AdminHandler) ListDealers(c *gin.Context) {
	dealers, err := h.adminUsecase.ListDealers(c.Request.Context(), c.Query("status"), c.Query("search"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dealers": dealers})
}

// GetDealer returns one dealer profile
// GET /api/admin/dealers/:id
func (h *AdminHandler) GetDealer(c *gin.Context) {
	dealer, err := h.adminUsecase.GetDealer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dealer": dealer})
}

// CreateDealer provisions a dealer profile
// POST /api/admin/dealers
func (h *AdminHandler) CreateDealer(c *gin.Context) {
	var input entities.CreateDealerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	dealer, passcode, err := h.adminUsecase.CreateDealer(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	payload := gin.H{"dealer": dealer}
	if passcode != "" {
		// shown exactly once; never stored in plaintext
		payload["passcode"] = passcode
	}
	response.OK(c, http.StatusCreated, payload)
}

// UpdateDealer patches a dealer profile
// PATCH /api/admin/dealers/:id
func (h *AdminHandler) UpdateDealer(c *gin.Context) {
	var input entities.UpdateDealerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	dealer, err := h.adminUsecase.UpdateDealer(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dealer": dealer})
}

// ResetDealerPasscode regenerates a dealer passcode
// POST /api/admin/dealers/:id/reset-passcode
func (h *AdminHandler) ResetDealerPasscode(c *gin.Context) {
	passcode, err := h.adminUsecase.ResetDealerPasscode(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"passcode": passcode})
}

// ListVehicles lists vehicles across dealers
// GET /api/admin/vehicles?dealerId=&status=
func (h *AdminHandler) ListVehicles(c *gin.Context) {
	vehicles, err := h.inventoryUsecase.ListVehicles(c.Request.Context(), c.Query("dealerId"), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

// UpsertVehicle creates or updates a vehicle on behalf of a dealer
// POST /api/admin/vehicles
func (h *AdminHandler) UpsertVehicle(c *gin.Context) {
	var input struct {
		entities.UpsertVehicleInput
		DealerID string `json:"dealerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	vehicle, err := h.inventoryUsecase.UpsertVehicle(c.Request.Context(), input.DealerID, &input.UpsertVehicleInput)
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

// ArchiveVehicle archives any vehicle
// POST /api/admin/vehicles/:id/archive
func (h *AdminHandler) ArchiveVehicle(c *gin.Context) {
	if err := h.inventoryUsecase.ArchiveVehicle(c.Request.Context(), "", c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"message": "vehicle archived"})
}

// BulkUpdateVehicles sets one status on many vehicles
// POST /api/admin/vehicles/bulk-update
func (h *AdminHandler) BulkUpdateVehicles(c *gin.Context) {
	var input struct {
		VehicleIDs []string `json:"vehicleIds" binding:"required"`
		Status     string   `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("vehicleIds and status are required"))
		return
	}

	updated, err := h.inventoryUsecase.BulkUpdateStatus(c.Request.Context(), input.VehicleIDs, input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"updated": updated})
}

// ListRequests lists viewing requests across dealers
// GET /api/admin/requests?dealerId=&status=&type=
func (h *AdminHandler) ListRequests(c *gin.Context) {
	requests, err := h.requestUsecase.ListRequests(c.Request.Context(), entities.RequestFilter{
		DealerID: c.Query("dealerId"),
		Status:   c.Query("status"),
		Type:     c.Query("type"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"requests": requests})
}

// CreateRequest logs a lead on behalf of a dealer
// POST /api/admin/requests
func (h *AdminHandler) CreateRequest(c *gin.Context) {
	var input struct {
		entities.CreateRequestInput
		DealerID string `json:"dealerId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	request, err := h.requestUsecase.CreateAdminRequest(c.Request.Context(), input.DealerID, &input.CreateRequestInput)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"request": request})
}

// UpdateRequestStatus moves any request along its lifecycle
// POST /api/admin/requests/:id/status
func (h *AdminHandler) UpdateRequestStatus(c *gin.Context) {
	var input struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("status is required"))
		return
	}

	request, err := h.requestUsecase.UpdateRequestStatus(c.Request.Context(), "", c.Param("id"), input.Status)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"request": request})
}

// Summary returns the platform overview
// GET /api/admin/summary
func (h *AdminHandler) Summary(c *gin.Context) {
	summary, err := h.analyticsUsecase.GetAdminSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"summary": summary})
}

// CheckAlerts emails dealers sitting on stale leads
// POST /api/admin/check-alerts
func (h *AdminHandler) CheckAlerts(c *gin.Context) {
	sent, err := h.adminUsecase.CheckAlerts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"alertsSent": sent})
}

// ExportDealers streams all dealer profiles as CSV
// GET /api/admin/export/dealers
func (h *AdminHandler) ExportDealers(c *gin.Context) {
	h.exportCSV(c, "dealers.csv", h.adminUsecase.ExportDealersCSV)
}

// ExportVehicles streams all vehicles as CSV
// GET /api/admin/export/vehicles
func (h *AdminHandler) ExportVehicles(c *gin.Context) {
	h.exportCSV(c, "vehicles.csv", h.adminUsecase.ExportVehiclesCSV)
}

// ExportRequests streams all viewing requests as CSV
// GET /api/admin/export/requests
func (h *AdminHandler) ExportRequests(c *gin.Context) {
	h.exportCSV(c, "requests.csv", h.adminUsecase.ExportRequestsCSV)
}

func (h *AdminHandler) exportCSV(c *gin.Context, filename string, export func(ctx context.Context) ([]byte, error)) {
	data, err := export(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}
