package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v79/webhook"
	"go.uber.org/zap"

	domainerrors "auto-concierge.backend/internal/domain/errors"
	"auto-concierge.backend/internal/interfaces/http/response"
	"auto-concierge.backend/internal/usecases"
	"auto-concierge.backend/pkg/logger"
)

// StripeSignatureHeader carries the webhook signature
const StripeSignatureHeader = "Stripe-Signature"

// BillingWebhookHandler receives Stripe webhook deliveries
type BillingWebhookHandler struct {
	billingUsecase *usecases.BillingUsecase
	webhookSecret  string
}

// NewBillingWebhookHandler creates a new billing webhook handler
func NewBillingWebhookHandler(billingUsecase *usecases.BillingUsecase, webhookSecret string) *BillingWebhookHandler {
	return &BillingWebhookHandler{
		billingUsecase: billingUsecase,
		webhookSecret:  webhookSecret,
	}
}

// Handle verifies the signature against the raw body and reconciles the
// event. Bad signatures are rejected before any processing; Stripe retries
// on its side, the server never does.
// POST /api/billing/webhook
func (h *BillingWebhookHandler) Handle(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("failed to read request body"))
		return
	}

	event, err := webhook.ConstructEvent(payload, c.GetHeader(StripeSignatureHeader), h.webhookSecret)
	if err != nil {
		logger.Warn(c.Request.Context(), "rejected webhook delivery", zap.Error(err))
		response.Error(c, domainerrors.BadRequest("invalid webhook signature"))
		return
	}

	if err := h.billingUsecase.HandleEvent(c.Request.Context(), event); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, http.StatusOK, gin.H{"received": true})
}
