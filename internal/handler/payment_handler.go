// Package handler provides HTTP handlers for API endpoints.
package handler

import (
	"errors"
	"io"
	"net/http"

	"civicwatch/internal/services"
	"civicwatch/internal/transport/httpdto"
	civic_errors "civicwatch/pkg/errors"

	"github.com/gin-gonic/gin"
)

const webhookBodyLimit = 1 << 20 // 1MiB

// PaymentHandler exposes the two confirmation entry points.
type PaymentHandler struct {
	service *services.PaymentService
}

func NewPaymentHandler(service *services.PaymentService) *PaymentHandler {
	return &PaymentHandler{service: service}
}

// Verify handles the synchronous browser callback after checkout.
func (h *PaymentHandler) Verify(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	err := h.service.Verify(c.Request.Context(), userID, services.VerifyInput{
		OrderID:   req.OrderID,
		PaymentID: req.PaymentID,
		Signature: req.Signature,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse[any](nil))
}

// Webhook handles asynchronous gateway deliveries. The signature header
// over the raw body is the only authentication; the body must be read
// untouched before any parsing.
func (h *PaymentHandler) Webhook(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, webhookBodyLimit))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	signature := c.GetHeader("X-Razorpay-Signature")
	if err := h.service.HandleWebhook(c.Request.Context(), body, signature); err != nil {
		if errors.Is(err, civic_errors.ErrInvalidSignature) || errors.Is(err, civic_errors.ErrInvalidInput) {
			writeServiceError(c, err)
			return
		}
		// Storage errors answer 500 so the gateway redelivers; the
		// transition CAS makes redelivery safe.
		c.JSON(http.StatusInternalServerError, httpdto.NewErrorResponse("internal error", "INTERNAL_ERROR"))
		return
	}

	c.JSON(http.StatusOK, httpdto.WebhookAck{Received: true})
}
