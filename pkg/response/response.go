package response

import (
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool            `json:"success"`
	Data    interface{}     `json:"data,omitempty"`
	Message string          `json:"message"`
	Error   string          `json:"error,omitempty"`
	Meta    *PaginationMeta `json:"meta,omitempty"`
}

// PaginationMeta describes the page window of a list response.
type PaginationMeta struct {
	Total       int64 `json:"total"`
	Limit       int   `json:"limit"`
	Page        int   `json:"page"`
	TotalPages  int   `json:"total_pages"`
	HasNext     bool  `json:"has_next"`
	HasPrevious bool  `json:"has_previous"`
}

// NewPaginationMeta computes pagination metadata for a page window.
func NewPaginationMeta(total int64, page, limit int) *PaginationMeta {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))
	return &PaginationMeta{
		Total:       total,
		Limit:       limit,
		Page:        page,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}
}

// OK sends a 200 response.
func OK(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// OKWithMeta sends a 200 response with pagination metadata.
func OKWithMeta(c *gin.Context, message string, data interface{}, meta *PaginationMeta) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    data,
		Message: message,
		Meta:    meta,
	})
}

// Created sends a 201 response.
func Created(c *gin.Context, message string, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data:    data,
		Message: message,
	})
}

// Error sends an error response with the given status code.
func Error(c *gin.Context, statusCode int, message, detail string) {
	c.JSON(statusCode, Response{
		Success: false,
		Message: message,
		Error:   detail,
	})
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, detail string) {
	Error(c, http.StatusBadRequest, "Validation error", detail)
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context, detail string) {
	Error(c, http.StatusUnauthorized, "Unauthorized", detail)
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, detail string) {
	Error(c, http.StatusNotFound, "Not found", detail)
}

// InternalError sends a 500 error response.
func InternalError(c *gin.Context, detail string) {
	Error(c, http.StatusInternalServerError, "Internal server error", detail)
}
