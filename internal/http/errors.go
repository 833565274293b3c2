package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"realtor-api/internal/service"
)

// Mensajes estables expuestos al cliente.
const (
	msgProductKeyRequired = "Product key is required"
	msgInvalidProductKey  = "Invalid product key"
	msgUserExists         = "User already exists"
	msgInvalidCredentials = "Invalid credentials"
	msgUnauthorized       = "Unauthorized"
	msgForbidden          = "Forbidden resource"
	msgNoHomesFound       = "No homes found"
	msgHomeNotFound       = "Home not found"
	msgInvalidRole        = "Invalid role"
	msgInvalidRequest     = "invalid request"
)

// writeServiceError traduce errores de servicio a status + mensaje estable.
func writeServiceError(c *gin.Context, logger *zap.Logger, err error) {
	status, msg := http.StatusInternalServerError, "internal error"
	switch {
	case errors.Is(err, service.ErrProductKeyRequired):
		status, msg = http.StatusUnauthorized, msgProductKeyRequired
	case errors.Is(err, service.ErrInvalidProductKey):
		status, msg = http.StatusUnauthorized, msgInvalidProductKey
	case errors.Is(err, service.ErrUserExists):
		status, msg = http.StatusConflict, msgUserExists
	case errors.Is(err, service.ErrInvalidCredentials):
		status, msg = http.StatusBadRequest, msgInvalidCredentials
	case errors.Is(err, service.ErrNotHomeOwner):
		status, msg = http.StatusUnauthorized, msgUnauthorized
	case errors.Is(err, service.ErrForbidden):
		status, msg = http.StatusForbidden, msgForbidden
	case errors.Is(err, service.ErrNoHomesFound):
		status, msg = http.StatusNotFound, msgNoHomesFound
	case errors.Is(err, service.ErrHomeNotFound):
		status, msg = http.StatusNotFound, msgHomeNotFound
	case errors.Is(err, service.ErrInvalidRole):
		status, msg = http.StatusBadRequest, msgInvalidRole
	default:
		logger.Error("request failed",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
	}
	c.JSON(status, gin.H{"error": msg})
}
