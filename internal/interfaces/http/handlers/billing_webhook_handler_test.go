package handlers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auto-concierge.backend/internal/usecases"
)

const testWebhookSecret = "whsec_test_secret"

// signPayload builds a Stripe-Signature header the verifier accepts
func signPayload(payload []byte, secret string, at time.Time) string {
	ts := fmt.Sprintf("%d", at.Unix())
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(ts))
	mac.Write([]byte("."))
	mac.Write(payload)
	return fmt.Sprintf("t=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func newWebhookRouter(env *testEnv) *gin.Engine {
	h := NewBillingWebhookHandler(usecases.NewBillingUsecase(env.dealerRepo, noopMailer{}), testWebhookSecret)
	r := gin.New()
	r.POST("/api/billing/webhook", h.Handle)
	return r
}

func TestBillingWebhookHandler_RejectsBadSignature(t *testing.T) {
	env := newTestEnv(t)
	r := newWebhookRouter(env)

	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed","data":{"object":{}}}`)

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"garbage header", "t=123,v1=deadbeef"},
		{"wrong secret", signPayload(payload, "whsec_other", time.Now())},
		{"stale timestamp", signPayload(payload, testWebhookSecret, time.Now().Add(-time.Hour))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", bytes.NewBuffer(payload))
			if tc.header != "" {
				req.Header.Set(StripeSignatureHeader, tc.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
		})
	}
}

func TestBillingWebhookHandler_AcceptsSignedEvent(t *testing.T) {
	env := newTestEnv(t)
	r := newWebhookRouter(env)

	// unhandled event types are acknowledged without side effects
	payload := []byte(`{"id":"evt_1","type":"customer.created","data":{"object":{}}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", bytes.NewBuffer(payload))
	req.Header.Set(StripeSignatureHeader, signPayload(payload, testWebhookSecret, time.Now()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	require.Contains(t, rec.Body.String(), `"received":true`)
}

func TestBillingWebhookHandler_ProvisionsDealerFromCheckout(t *testing.T) {
	env := newTestEnv(t)
	r := newWebhookRouter(env)

	payload := []byte(`{
		"id": "evt_2",
		"type": "checkout.session.completed",
		"data": {"object": {
			"customer": "cus_123",
			"subscription": "sub_456",
			"customer_details": {"name": "Luis Fernandez", "email": "luis@example.com"}
		}}
	}`)
	req := httptest.NewRequest(http.MethodPost, "/api/billing/webhook", bytes.NewBuffer(payload))
	req.Header.Set(StripeSignatureHeader, signPayload(payload, testWebhookSecret, time.Now()))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	dealer, err := env.dealerRepo.GetByStripeCustomerID(t.Context(), "cus_123")
	require.NoError(t, err)
	require.Equal(t, "Luis Fernandez", dealer.Name)
	require.Equal(t, "DEALER-0001", dealer.DealerID)
}
