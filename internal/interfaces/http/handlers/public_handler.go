package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"auto-concierge.backend/internal/domain/entities"
	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/internal/usecases"
	"auto-concierge.backend/pkg/qr"
)

// PublicHandler handles the unauthenticated storefront endpoints
type PublicHandler struct {
	inventoryUsecase *usecases.InventoryUsecase
	requestUsecase   *usecases.RequestUsecase
	storefrontBase   string
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(
	inventoryUsecase *usecases.InventoryUsecase,
	requestUsecase *usecases.RequestUsecase,
	storefrontBase string,
) *PublicHandler {
	return &PublicHandler{
		inventoryUsecase: inventoryUsecase,
		requestUsecase:   requestUsecase,
		storefrontBase:   storefrontBase,
	}
}

// GetDealer returns the sanitized storefront profile
// GET /api/public/dealer/:id
func (h *PublicHandler) GetDealer(c *gin.Context) {
	dealer, err := h.inventoryUsecase.GetPublicDealer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"dealer": dealer})
}

// ListVehicles returns one dealer's public inventory
// GET /api/public/dealer/:id/vehicles
func (h *PublicHandler) ListVehicles(c *gin.Context) {
	includeHidden := c.Query("all") == "1"
	vehicles, err := h.inventoryUsecase.ListPublicVehicles(c.Request.Context(), c.Param("id"), includeHidden)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

// ListVehiclesMulti aggregates public inventory across a few dealers
// GET /api/public/vehicles?dealerIds=a,b,c
func (h *PublicHandler) ListVehiclesMulti(c *gin.Context) {
	raw := strings.TrimSpace(c.Query("dealerIds"))
	if raw == "" {
		response.Error(c, domainerrors.BadRequest("dealerIds is required"))
		return
	}

	var dealerIDs []string
	for _, id := range strings.Split(raw, ",") {
		if id = strings.TrimSpace(id); id != "" {
			dealerIDs = append(dealerIDs, id)
		}
	}

	vehicles, err := h.inventoryUsecase.ListPublicVehiclesMulti(c.Request.Context(), dealerIDs)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"vehicles": vehicles})
}

// CreateRequest records a storefront viewing request
// POST /api/public/dealer/:id/requests
func (h *PublicHandler) CreateRequest(c *gin.Context) {
	var input entities.CreateRequestInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest("invalid request body: "+err.Error()))
		return
	}

	request, err := h.requestUsecase.CreatePublicRequest(c.Request.Context(), c.Param("id"), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusCreated, gin.H{"request": request})
}

// GetQRCode renders the dealer's storefront URL as a QR PNG data URL
// GET /api/public/qrcode/:id
func (h *PublicHandler) GetQRCode(c *gin.Context) {
	dealer, err := h.inventoryUsecase.GetPublicDealer(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	url := fmt.Sprintf("%s/d/%s", h.storefrontBase, dealer.DealerID)
	dataURL, err := qr.EncodeDataURL(url, qr.DefaultSize)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"qrCode": dataURL, "url": url})
}
