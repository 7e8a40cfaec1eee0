package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/platform/auth"
	"github.com/gearshare/service-rental/internal/platform/middleware"
	"github.com/gearshare/service-rental/internal/platform/response"
	"github.com/gearshare/service-rental/internal/platform/session"
)

// AdminBookingHandler handles admin HTTP requests for booking oversight.
type AdminBookingHandler struct {
	service *application.BookingService
}

// NewAdminBookingHandler creates a new AdminBookingHandler.
func NewAdminBookingHandler(service *application.BookingService) *AdminBookingHandler {
	return &AdminBookingHandler{service: service}
}

// RegisterRoutes registers admin booking routes.
func (h *AdminBookingHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, sessions *session.Store) {
	authMW := middleware.AuthMiddleware(jwtManager, sessions)

	admin := r.Group("/api/v1/admin")
	admin.Use(authMW, middleware.RequireAdmin())
	{
		admin.GET("/bookings", h.ListBookings)
		admin.GET("/stats/bookings", h.BookingStats)
	}
}

// ListBookings handles GET /api/v1/admin/bookings.
func (h *AdminBookingHandler) ListBookings(c *gin.Context) {
	page, limit := parsePagination(c)

	bookings, total, err := h.service.ListAllBookings(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Paginated(c, bookings, total, page, limit)
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
