package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivutravel/service-booking/internal/application"
	"github.com/vivutravel/service-booking/internal/auth"
	"github.com/vivutravel/service-booking/internal/middleware"
	"github.com/vivutravel/service-booking/internal/response"
)

// TourHandler handles catalog routes for tours.
type TourHandler struct {
	service *application.TourService
}

// NewTourHandler creates a new TourHandler.
func NewTourHandler(service *application.TourService) *TourHandler {
	return &TourHandler{service: service}
}

// RegisterRoutes registers tour routes. Browsing is public; catalog
// mutations are admin only.
func (h *TourHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	tours := r.Group("/api/v1/tours")
	{
		tours.GET("", h.ListTours)
		tours.GET("/:id", h.GetTour)
	}

	adminTours := r.Group("/api/v1/tours")
	adminTours.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(auth.RoleAdmin))
	{
		adminTours.POST("", h.CreateTour)
		adminTours.PATCH("/:id/status", h.UpdateTourStatus)
	}
}

// ListTours handles GET /api/v1/tours.
func (h *TourHandler) ListTours(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := h.service.ListTours(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetTour handles GET /api/v1/tours/:id.
func (h *TourHandler) GetTour(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	result, err := h.service.GetTour(c.Request.Context(), tourID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateTour handles POST /api/v1/tours.
func (h *TourHandler) CreateTour(c *gin.Context) {
	var req application.CreateTourRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateTour(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateTourStatus handles PATCH /api/v1/tours/:id/status.
func (h *TourHandler) UpdateTourStatus(c *gin.Context) {
	tourID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid tour ID")
		return
	}

	var body struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.UpdateTourStatus(c.Request.Context(), tourID, body.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"id": tourID, "status": body.Status})
}
