package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gearshare/service-rental/internal/application"
	"github.com/gearshare/service-rental/internal/platform/auth"
	"github.com/gearshare/service-rental/internal/platform/middleware"
	"github.com/gearshare/service-rental/internal/platform/response"
	"github.com/gearshare/service-rental/internal/platform/session"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ItemHandler handles HTTP requests for listing operations.
type ItemHandler struct {
	items    *application.ItemService
	bookings *application.BookingService
	reviews  *application.ReviewService
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(
	items *application.ItemService,
	bookings *application.BookingService,
	reviews *application.ReviewService,
) *ItemHandler {
	return &ItemHandler{items: items, bookings: bookings, reviews: reviews}
}

// RegisterRoutes registers all item routes on the given router group.
// Browsing is public; mutations require a session.
func (h *ItemHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager, sessions *session.Store) {
	authMW := middleware.AuthMiddleware(jwtManager, sessions)

	items := r.Group("/api/v1/items")
	{
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.GET("/:id/availability", h.CheckAvailability)
		items.GET("/:id/reviews", h.ListItemReviews)

		items.POST("", authMW, h.CreateItem)
		items.PUT("/:id", authMW, h.UpdateItem)
		items.POST("/:id/publish", authMW, h.PublishItem)
		items.POST("/:id/unpublish", authMW, h.UnpublishItem)
		items.DELETE("/:id", authMW, h.DeleteItem)
	}
}

// ListItems handles GET /api/v1/items. Without a host_id filter only
// published listings are returned.
func (h *ItemHandler) ListItems(c *gin.Context) {
	query := application.ListItemsQuery{
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("order"),
	}

	if raw := c.Query("host_id"); raw != "" {
		hostID, err := uuid.Parse(raw)
		if err != nil {
			response.BadRequest(c, "invalid host ID")
			return
		}
		query.HostID = &hostID
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid limit")
			return
		}
		query.Limit = limit
	}

	result, err := h.items.ListItems(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetItem handles GET /api/v1/items/:id.
func (h *ItemHandler) GetItem(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.items.GetItem(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CheckAvailability handles GET /api/v1/items/:id/availability.
func (h *ItemHandler) CheckAvailability(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	startDate := c.Query("start")
	endDate := c.Query("end")
	if startDate == "" || endDate == "" {
		response.BadRequest(c, "start and end are required")
		return
	}

	available, err := h.bookings.CheckAvailability(c.Request.Context(), itemID, startDate, endDate)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"available": available})
}

// ListItemReviews handles GET /api/v1/items/:id/reviews.
func (h *ItemHandler) ListItemReviews(c *gin.Context) {
	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := h.reviews.ListItemReviews(c.Request.Context(), itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// CreateItem handles POST /api/v1/items.
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.CreateItem(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// UpdateItem handles PUT /api/v1/items/:id.
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	var req application.SaveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.items.UpdateItem(c.Request.Context(), userID, itemID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// PublishItem handles POST /api/v1/items/:id/publish.
func (h *ItemHandler) PublishItem(c *gin.Context) {
	h.togglePublish(c, h.items.PublishItem)
}

// UnpublishItem handles POST /api/v1/items/:id/unpublish.
func (h *ItemHandler) UnpublishItem(c *gin.Context) {
	h.togglePublish(c, h.items.UnpublishItem)
}

// DeleteItem handles DELETE /api/v1/items/:id.
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	if err := h.items.DeleteItem(c.Request.Context(), userID, itemID); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

func (h *ItemHandler) togglePublish(
	c *gin.Context,
	op func(ctx context.Context, actorID, itemID uuid.UUID) (*application.ItemDTO, error),
) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid item ID")
		return
	}

	result, err := op(c.Request.Context(), userID, itemID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
