package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"maisquecardapio.backend/internal/domain/entities"
	domainerrors "maisquecardapio.backend/internal/domain/errors"
	"maisquecardapio.backend/internal/interfaces/http/middleware"
	"maisquecardapio.backend/internal/interfaces/http/response"
)

var nowFunc = time.Now

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, domainerrors.BadRequest("invalid "+name))
		return 0, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return false
	}
	return true
}

// establishment returns the tenant resolved by TenantMiddleware
func establishment(c *gin.Context) (*entities.Establishment, bool) {
	est, ok := middleware.GetEstablishment(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusBadRequest, domainerrors.CodeBadRequest, "establishment slug required")
		return nil, false
	}
	return est, true
}

func respondOK(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"success": true})
}
