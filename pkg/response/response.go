package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Envelope codes. Zero is success; negative codes identify the error family.
const (
	CodeOK           = 0
	CodeBadRequest   = -1
	CodeUnauthorized = -1001
	CodeForbidden    = -1002
	CodeNotFound     = -1003
	CodeConflict     = -1004
	CodeInternal     = -1
)

// Response is the standard API response structure
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// Paginated is the paginated response structure
type Paginated struct {
	Items      interface{} `json:"items"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	PageSize   int         `json:"page_size"`
	TotalPages int         `json:"total_pages"`
}

// Success sends a successful response
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Code: CodeOK, Message: "success", Data: data})
}

// Created sends a 201 created response
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Code: CodeOK, Message: "created", Data: data})
}

// SuccessPaginated sends one page of items with the page arithmetic filled in
func SuccessPaginated(c *gin.Context, items interface{}, total int64, page, pageSize int) {
	Success(c, Paginated{
		Items:      items,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	})
}

func totalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

// Error writes an error envelope and aborts the remaining handlers.
// Server errors are logged; the message returned to the client stays generic.
func Error(c *gin.Context, status, code int, message string) {
	if status >= http.StatusInternalServerError {
		zap.L().Named("response").Warn("server error",
			zap.String("path", c.FullPath()),
			zap.Int("status", status),
			zap.String("message", message),
		)
	}
	c.AbortWithStatusJSON(status, Response{Code: code, Message: message})
}

// BadRequest sends a 400 error response
func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, message)
}

// Unauthorized sends a 401 error response
func Unauthorized(c *gin.Context, message string) {
	Error(c, http.StatusUnauthorized, CodeUnauthorized, message)
}

// Forbidden sends a 403 error response
func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, CodeForbidden, message)
}

// NotFound sends a 404 error response
func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, CodeNotFound, message)
}

// Conflict sends a 409 error response
func Conflict(c *gin.Context, message string) {
	Error(c, http.StatusConflict, CodeConflict, message)
}

// InternalError sends a 500 error response
func InternalError(c *gin.Context, message string) {
	Error(c, http.StatusInternalServerError, CodeInternal, message)
}
