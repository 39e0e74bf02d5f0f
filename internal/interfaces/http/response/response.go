package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/pkg/logger"
	"maisquecardapio.backend/pkg/utils"
)

// Success sends a success response
func Success(c *gin.Context, status int, data interface{}) {
	c.JSON(status, data)
}

// Created sends the {id} body every create endpoint returns
func Created(c *gin.Context, id int64) {
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Paginated sends a page of items with its meta
func Paginated(c *gin.Context, items interface{}, meta utils.PaginationMeta) {
	c.JSON(http.StatusOK, gin.H{"items": items, "meta": meta})
}

// Error sends an error response. Sentinel errors are mapped to their status,
// anything else becomes a 500 whose cause is logged and not returned.
func Error(c *gin.Context, err error) {
	ErrorNotFound(c, err, "resource not found")
}

// ErrorNotFound is Error with a resource specific not found message
func ErrorNotFound(c *gin.Context, err error, notFoundMessage string) {
	appErr := domainerrors.FromDomain(err, notFoundMessage)
	if appErr.Status >= http.StatusInternalServerError {
		logger.Error(c.Request.Context(), "Request failed",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
	}

	c.AbortWithStatusJSON(appErr.Status, gin.H{
		"code":    appErr.Code,
		"message": appErr.Message,
		"error":   appErr.Message,
	})
}

// ErrorWithStatus sends an error response with a specific status and message
func ErrorWithStatus(c *gin.Context, status int, code string, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": message,
		"error":   message,
	})
}
