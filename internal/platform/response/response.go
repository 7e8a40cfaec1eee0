package response

import (
	"errors"
	"net/http"

	"github.com/gearshare/service-rental/internal/domain"
	"github.com/gin-gonic/gin"
)

// envelope is the uniform JSON body for all responses.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// paginatedEnvelope wraps a page of results with pagination metadata.
type paginatedEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Total   int64       `json:"total"`
	Page    int         `json:"page"`
	Limit   int         `json:"limit"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// NoContent writes a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Paginated writes a 200 response with pagination metadata.
func Paginated(c *gin.Context, items interface{}, total int64, page, limit int) {
	c.JSON(http.StatusOK, paginatedEnvelope{
		Success: true,
		Data:    items,
		Total:   total,
		Page:    page,
		Limit:   limit,
	})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Unauthorized writes a 401 response with the given message.
func Unauthorized(c *gin.Context, message string) {
	c.JSON(http.StatusUnauthorized, envelope{Success: false, Error: message})
}

// Error maps a domain error to its HTTP status and writes the response.
// Unrecognized errors are treated as upstream failures and reported as 500
// without leaking internals.
func Error(c *gin.Context, err error) {
	var (
		notFound     *domain.NotFoundError
		validation   *domain.ValidationError
		unauthorized *domain.UnauthorizedError
		forbidden    *domain.ForbiddenError
		conflict     *domain.ConflictError
		invalidState *domain.InvalidStateError
	)

	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: validation.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, envelope{Success: false, Error: unauthorized.Error()})
	case errors.As(err, &forbidden):
		c.JSON(http.StatusForbidden, envelope{Success: false, Error: forbidden.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, envelope{Success: false, Error: notFound.Error()})
	case errors.As(err, &conflict):
		c.JSON(http.StatusConflict, envelope{Success: false, Error: conflict.Error()})
	case errors.As(err, &invalidState):
		c.JSON(http.StatusConflict, envelope{Success: false, Error: invalidState.Error()})
	default:
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: "internal server error"})
	}
}
