package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"realtor-api/internal/domain"
	"realtor-api/internal/service"
)

// AuthHandler mantiene dependencias para endpoints de autenticación.
type AuthHandler struct {
	logger  *zap.Logger
	authSvc *service.AuthService
}

// NewAuthHandler crea una instancia de AuthHandler con dependencias necesarias.
func NewAuthHandler(logger *zap.Logger, authSvc *service.AuthService) *AuthHandler {
	registerValidators()
	return &AuthHandler{
		logger:  logger,
		authSvc: authSvc,
	}
}

// Signup maneja POST /auth/signup/:role.
func (h *AuthHandler) Signup(c *gin.Context) {
	role, ok := domain.ParseRole(c.Param("role"))
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRole})
		return
	}

	var req struct {
		Name       string `json:"name" binding:"required"`
		Email      string `json:"email" binding:"required,email"`
		Password   string `json:"password" binding:"required,min=8,max=72"`
		Phone      string `json:"phone" binding:"omitempty,phone"`
		ProductKey string `json:"productKey" binding:"omitempty"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signup request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	token, err := h.authSvc.Signup(c.Request.Context(), service.SignupInput{
		Email:      req.Email,
		Password:   req.Password,
		Name:       req.Name,
		Phone:      req.Phone,
		ProductKey: req.ProductKey,
	}, role)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

// Signin maneja POST /auth/signin.
func (h *AuthHandler) Signin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid signin request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	token, err := h.authSvc.Signin(c.Request.Context(), service.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}

// GenerateProductKey maneja POST /auth/key.
func (h *AuthHandler) GenerateProductKey(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required,email"`
		UserType string `json:"userType" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid product key request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}
	role, ok := domain.ParseRole(req.UserType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRole})
		return
	}

	key, err := h.authSvc.GenerateProductKey(c.Request.Context(), req.Email, role)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"productKey": key})
}

// Me maneja GET /auth/me. Devuelve la identidad resuelta o null.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, GetIdentity(c))
}
