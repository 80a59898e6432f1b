package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vivutravel/service-booking/internal/application"
	"github.com/vivutravel/service-booking/internal/auth"
	"github.com/vivutravel/service-booking/internal/middleware"
	"github.com/vivutravel/service-booking/internal/response"
)

// AdminBookingHandler handles operator routes for booking management.
type AdminBookingHandler struct {
	service *application.BookingService
}

// NewAdminBookingHandler creates a new AdminBookingHandler.
func NewAdminBookingHandler(service *application.BookingService) *AdminBookingHandler {
	return &AdminBookingHandler{service: service}
}

// RegisterRoutes registers privileged booking routes.
func (h *AdminBookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	authMW := middleware.AuthMiddleware(jwtManager)
	adminRole := middleware.RequireRole(auth.RoleAdmin)

	bookings := r.Group("/api/v1/bookings")
	bookings.Use(authMW, adminRole)
	{
		bookings.GET("/pending", h.GetPendingBookings)
		bookings.PATCH("/:id/confirm", h.ConfirmBooking)
		bookings.PATCH("/:id/reject", h.RejectBooking)
		bookings.PATCH("/:id/cancel/approve", h.ApproveCancellation)
		bookings.PATCH("/:id/cancel/reject", h.RejectCancellation)
		bookings.PATCH("/:id/complete", h.CompleteBooking)
		bookings.DELETE("/:id", h.SoftDeleteBooking)
	}

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, adminRole)
	{
		admin.GET("/stats/bookings", h.BookingStats)
	}
}

// GetPendingBookings handles GET /api/v1/bookings/pending. Oldest requests
// first so the queue is triaged in arrival order.
func (h *AdminBookingHandler) GetPendingBookings(c *gin.Context) {
	page, limit := parsePagination(c)
	result, err := h.service.GetPendingBookings(c.Request.Context(), page, limit, parseStatusParam(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Paginated(c, result.Items, result.Total, result.Page, result.Limit)
}

// ConfirmBooking handles PATCH /api/v1/bookings/:id/confirm.
func (h *AdminBookingHandler) ConfirmBooking(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, _ string) (*application.BookingDTO, error) {
		return h.service.ConfirmBooking(c.Request.Context(), id)
	})
}

// RejectBooking handles PATCH /api/v1/bookings/:id/reject.
func (h *AdminBookingHandler) RejectBooking(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, reason string) (*application.BookingDTO, error) {
		return h.service.RejectBooking(c.Request.Context(), id, reason)
	})
}

// ApproveCancellation handles PATCH /api/v1/bookings/:id/cancel/approve.
func (h *AdminBookingHandler) ApproveCancellation(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, _ string) (*application.BookingDTO, error) {
		return h.service.ApproveCancellation(c.Request.Context(), id)
	})
}

// RejectCancellation handles PATCH /api/v1/bookings/:id/cancel/reject.
func (h *AdminBookingHandler) RejectCancellation(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, reason string) (*application.BookingDTO, error) {
		return h.service.RejectCancellation(c.Request.Context(), id, reason)
	})
}

// CompleteBooking handles PATCH /api/v1/bookings/:id/complete.
func (h *AdminBookingHandler) CompleteBooking(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, _ string) (*application.BookingDTO, error) {
		return h.service.CompleteBooking(c.Request.Context(), id)
	})
}

// SoftDeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *AdminBookingHandler) SoftDeleteBooking(c *gin.Context) {
	h.transition(c, func(id uuid.UUID, _ string) (*application.BookingDTO, error) {
		return h.service.SoftDeleteBooking(c.Request.Context(), id)
	})
}

// BookingStats handles GET /api/v1/admin/stats/bookings.
func (h *AdminBookingHandler) BookingStats(c *gin.Context) {
	stats, err := h.service.GetBookingStats(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, stats)
}

// transition parses the booking id and optional reason body, then applies
// the given lifecycle operation.
func (h *AdminBookingHandler) transition(c *gin.Context, op func(id uuid.UUID, reason string) (*application.BookingDTO, error)) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := op(bookingID, body.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
