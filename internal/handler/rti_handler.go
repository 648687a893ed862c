package handler

import (
	"net/http"

	"civicwatch/internal/domain"
	"civicwatch/internal/services"
	"civicwatch/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RTIHandler struct {
	service *services.RTIService
}

func NewRTIHandler(service *services.RTIService) *RTIHandler {
	return &RTIHandler{service: service}
}

// Create registers an RTI draft and opens its checkout.
func (h *RTIHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.CreateRTIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	rti, checkout, err := h.service.Create(c.Request.Context(), userID, services.CreateRTIInput{
		Subject:   req.Subject,
		Authority: req.Authority,
		BodyText:  req.BodyText,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.CreateRTIResponse{
		RTI:      rtiDTO(rti),
		Checkout: httpdto.CheckoutDTO{OrderID: checkout.OrderID, Amount: checkout.Amount, Currency: "INR"},
	}))
}

// Get returns one RTI request owned by the caller.
func (h *RTIHandler) Get(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	rti, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(rtiDTO(rti)))
}

// Document streams the regenerated application PDF. Answers 402 until
// the request is paid.
func (h *RTIHandler) Document(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid id", "INVALID_REQUEST"))
		return
	}

	document, err := h.service.Document(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="rti-application.pdf"`)
	c.Data(http.StatusOK, "application/pdf", document)
}

func rtiDTO(r domain.RTIRequest) httpdto.RTIDTO {
	return httpdto.RTIDTO{
		ID:          r.ID.String(),
		Subject:     r.Subject,
		Authority:   r.Authority,
		BodyText:    r.BodyText,
		Status:      string(r.Status),
		DocumentURL: r.DocumentURL,
		PaidAt:      r.PaidAt,
		CreatedAt:   r.CreatedAt,
	}
}
