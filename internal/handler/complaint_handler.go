package handler

import (
	"net/http"
	"strconv"

	"civicwatch/internal/domain"
	"civicwatch/internal/services"
	"civicwatch/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ComplaintHandler struct {
	service *services.ComplaintService
}

func NewComplaintHandler(service *services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{service: service}
}

// Create registers a complaint and opens its checkout.
func (h *ComplaintHandler) Create(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	var req httpdto.CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, httpdto.NewErrorResponse("invalid request", "INVALID_REQUEST"))
		return
	}

	complaint, checkout, err := h.service.Create(c.Request.Context(), userID, services.CreateComplaintInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Department:  req.Department,
		DeptEmail:   req.DeptEmail,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, httpdto.NewSuccessResponse(httpdto.CreateComplaintResponse{
		Complaint: complaintDTO(complaint),
		Checkout:  httpdto.CheckoutDTO{OrderID: checkout.OrderID, Amount: checkout.Amount, Currency: "INR"},
	}))
}

// List returns the caller's complaints, newest first.
func (h *ComplaintHandler) List(c *gin.Context) {
	userID, ok := services.UserIDFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized", "UNAUTHORIZED"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	complaints, total, err := h.service.List(c.Request.Context(), userID, page, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	dtos := make([]httpdto.ComplaintDTO, len(complaints))
	for i, complaint := range complaints {
		dtos[i] = complaintDTO(complaint)
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(httpdto.ComplaintListResponse{
		Complaints: dtos,
		Total:      total,
		Page:       page,
		Limit:      limit,
	}))
}

// Get returns one complaint owned by the caller.
func (h *ComplaintHandler) Get(c *gin.Context) {
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

	complaint, err := h.service.GetByID(c.Request.Context(), userID, id)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, httpdto.NewSuccessResponse(complaintDTO(complaint)))
}

func complaintDTO(c domain.Complaint) httpdto.ComplaintDTO {
	return httpdto.ComplaintDTO{
		ID:          c.ID.String(),
		Title:       c.Title,
		Description: c.Description,
		Location:    c.Location,
		Department:  c.Department,
		Status:      string(c.Status),
		FiledAt:     c.FiledAt,
		CreatedAt:   c.CreatedAt,
	}
}
