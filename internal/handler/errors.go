package handler

import (
	"errors"
	"net/http"

	"civicwatch/internal/transport/httpdto"
	civic_errors "civicwatch/pkg/errors"

	"github.com/gin-gonic/gin"
)

func writeServiceError(c *gin.Context, err error) {
	status := httpStatus(err)
	c.JSON(status, httpdto.NewErrorResponse(err.Error(), errorCode(err, status)))
}

func httpStatus(err error) int {
	switch {
	case errors.Is(err, civic_errors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, civic_errors.ErrInvalidSignature):
		return http.StatusBadRequest
	case errors.Is(err, civic_errors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, civic_errors.ErrPaymentRequired):
		return http.StatusPaymentRequired
	case errors.Is(err, civic_errors.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, civic_errors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, civic_errors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, civic_errors.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, civic_errors.ErrGatewayUnavailable):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorCode(err error, status int) string {
	if errors.Is(err, civic_errors.ErrInvalidSignature) {
		return "INVALID_SIGNATURE"
	}
	if errors.Is(err, civic_errors.ErrGatewayUnavailable) {
		return "GATEWAY_UNAVAILABLE"
	}
	switch status {
	case http.StatusBadRequest:
		return "INVALID_REQUEST"
	case http.StatusUnauthorized:
		return "UNAUTHORIZED"
	case http.StatusPaymentRequired:
		return "PAYMENT_REQUIRED"
	case http.StatusForbidden:
		return "FORBIDDEN"
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusConflict:
		return "CONFLICT"
	case http.StatusTooManyRequests:
		return "RATE_LIMITED"
	default:
		return "INTERNAL_ERROR"
	}
}
