package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivutravel/service-booking/internal/application"
	"github.com/vivutravel/service-booking/internal/auth"
	"github.com/vivutravel/service-booking/internal/domain"
	"github.com/vivutravel/service-booking/internal/middleware"
	"github.com/vivutravel/service-booking/internal/response"
)

// BookingHandler handles customer-facing booking routes.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers booking routes on the given router group.
// Creation allows guests; cancellation and listing require the owner.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	bookings := r.Group("/api/v1/bookings")

	bookings.POST("", middleware.OptionalAuthMiddleware(jwtManager), h.CreateBooking)

	authed := bookings.Group("")
	authed.Use(middleware.AuthMiddleware(jwtManager))
	{
		authed.GET("/my", h.GetMyBookings)
		authed.GET("/:id", h.GetBooking)
		authed.POST("/:id/cancel", h.RequestCancel)
	}
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	var requesterID *uuid.UUID
	if userID, ok := middleware.GetUserID(c); ok {
		requesterID = &userID
	}

	result, err := h.service.CreateBooking(c.Request.Context(), requesterID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// GetMyBookings handles GET /api/v1/bookings/my.
func (h *BookingHandler) GetMyBookings(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "unauthorized")
		return
	}

	page, limit := parsePagination(c)
	result, err := h.service.GetMyBookings(c.Request.Context(), userID, page, limit, parseStatusParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// GetBooking handles GET /api/v1/bookings/:id. Non-admins only see their own
// bookings; a foreign id reads as not found.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), bookingID)
	if err != nil {
		response.Error(c, err)
		return
	}

	role, _ := middleware.GetUserRole(c)
	if role != auth.RoleAdmin {
		userID, _ := middleware.GetUserID(c)
		if result.UserID == nil || *result.UserID != userID {
			// Ownership mismatch masked as not-found.
			response.Error(c, domain.NewNotFoundError("Booking", bookingID.String()))
			return
		}
	}
	response.Success(c, result)
}

// RequestCancel handles POST /api/v1/bookings/:id/cancel.
func (h *BookingHandler) RequestCancel(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		response.BadRequest(c, "unauthorized")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.RequestCancel(c.Request.Context(), bookingID, userID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parsePagination extracts page and limit query parameters with defaults.
func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

// parseStatusParam reads the status filter, accepting both repeated and
// comma-separated forms.
func parseStatusParam(c *gin.Context) []string {
	var statuses []string
	for _, raw := range c.QueryArray("status") {
		for _, s := range strings.Split(raw, ",") {
			if s = strings.TrimSpace(s); s != "" {
				statuses = append(statuses, s)
			}
		}
	}
	return statuses
}
