package handler

import (
	"net/http"

	"civicwatch/internal/services"
	"civicwatch/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

type DeveloperHandler struct {
	service *services.APIKeyService
}

func NewDeveloperHandler(service *services.APIKeyService) *DeveloperHandler {
	return &DeveloperHandler{service: service}
}

// Upgrade opens a checkout for the pro API plan. The key itself is
// minted by fulfillment once the payment settles.
func (h *DeveloperHandler) Upgrade(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	checkout, err := h.service.StartUpgrade(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.CheckoutDTO{
		OrderID:  checkout.OrderID,
		Amount:   checkout.Amount,
		Currency: "INR",
	}))
}

// Key returns the caller's current API key and quota.
func (h *DeveloperHandler) Key(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	key, err := h.service.GetKey(c.Request.Context(), userID)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.APIKeyDTO{
		Key:          key.Key,
		Plan:         key.Plan,
		QuotaLimit:   key.QuotaLimit,
		QuotaUsed:    key.QuotaUsed,
		QuotaResetAt: key.QuotaResetAt,
	}))
}
