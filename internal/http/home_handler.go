package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"realtor-api/internal/domain"
	"realtor-api/internal/service"
)

// HomeHandler mantiene dependencias para endpoints de listados.
type HomeHandler struct {
	logger  *zap.Logger
	homeSvc *service.HomeService
}

func NewHomeHandler(logger *zap.Logger, homeSvc *service.HomeService) *HomeHandler {
	return &HomeHandler{
		logger:  logger,
		homeSvc: homeSvc,
	}
}

type searchHomesQuery struct {
	City         *string  `form:"city"`
	PropertyType *string  `form:"propertyType"`
	MinPrice     *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice     *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinBedrooms  *int     `form:"minBedrooms" binding:"omitempty,gte=0"`
	MaxBedrooms  *int     `form:"maxBedrooms" binding:"omitempty,gte=0"`
	MinBathrooms *float64 `form:"minBathrooms" binding:"omitempty,gte=0"`
	MaxBathrooms *float64 `form:"maxBathrooms" binding:"omitempty,gte=0"`
	MinLandSize  *float64 `form:"minLandSize" binding:"omitempty,gte=0"`
	MaxLandSize  *float64 `form:"maxLandSize" binding:"omitempty,gte=0"`
}

// SearchHomes maneja GET /home.
func (h *HomeHandler) SearchHomes(c *gin.Context) {
	var q searchHomesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.logger.Warn("invalid home search", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	params := service.HomeSearchParams{
		City:         q.City,
		MinPrice:     q.MinPrice,
		MaxPrice:     q.MaxPrice,
		MinBedrooms:  q.MinBedrooms,
		MaxBedrooms:  q.MaxBedrooms,
		MinBathrooms: q.MinBathrooms,
		MaxBathrooms: q.MaxBathrooms,
		MinLandSize:  q.MinLandSize,
		MaxLandSize:  q.MaxLandSize,
	}
	if q.PropertyType != nil {
		pt, ok := domain.ParsePropertyType(*q.PropertyType)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
			return
		}
		params.PropertyType = &pt
	}

	homes, err := h.homeSvc.SearchHomes(c.Request.Context(), params)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"homes": homes})
}

// GetHome maneja GET /home/:id.
func (h *HomeHandler) GetHome(c *gin.Context) {
	id, ok := homeIDParam(c)
	if !ok {
		return
	}
	home, err := h.homeSvc.GetHome(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"home": home})
}

// CreateHome maneja POST /home. Requiere ADMIN o REALTOR.
func (h *HomeHandler) CreateHome(c *gin.Context) {
	var req struct {
		Address      string   `json:"address" binding:"required"`
		City         string   `json:"city" binding:"required"`
		Price        float64  `json:"price" binding:"gt=0"`
		Bedrooms     int      `json:"number_of_bedrooms" binding:"gte=0"`
		Bathrooms    float64  `json:"number_of_bathrooms" binding:"gte=0"`
		LandSize     float64  `json:"land_size" binding:"gt=0"`
		PropertyType string   `json:"property_type" binding:"required"`
		Images       []string `json:"images" binding:"dive,url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid create home request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	propertyType, ok := domain.ParsePropertyType(req.PropertyType)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	home, err := h.homeSvc.CreateHome(c.Request.Context(), authCaller(c), service.CreateHomeInput{
		Address:      req.Address,
		City:         req.City,
		Price:        req.Price,
		Bedrooms:     req.Bedrooms,
		Bathrooms:    req.Bathrooms,
		LandSize:     req.LandSize,
		PropertyType: propertyType,
		ImageURLs:    req.Images,
	})
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"home": home})
}

// UpdateHome maneja PUT /home/:id. Solo el dueño del listado.
func (h *HomeHandler) UpdateHome(c *gin.Context) {
	id, ok := homeIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Address      *string  `json:"address" binding:"omitempty,min=1"`
		City         *string  `json:"city" binding:"omitempty,min=1"`
		Price        *float64 `json:"price" binding:"omitempty,gt=0"`
		Bedrooms     *int     `json:"number_of_bedrooms" binding:"omitempty,gte=0"`
		Bathrooms    *float64 `json:"number_of_bathrooms" binding:"omitempty,gte=0"`
		LandSize     *float64 `json:"land_size" binding:"omitempty,gt=0"`
		PropertyType *string  `json:"property_type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid update home request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	update := domain.HomeUpdate{
		Address:   req.Address,
		City:      req.City,
		Price:     req.Price,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		LandSize:  req.LandSize,
	}
	if req.PropertyType != nil {
		pt, ok := domain.ParsePropertyType(*req.PropertyType)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
			return
		}
		update.PropertyType = &pt
	}

	home, err := h.homeSvc.UpdateHome(c.Request.Context(), authCaller(c), id, update)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"home": home})
}

// DeleteHome maneja DELETE /home/:id. Solo el dueño del listado.
func (h *HomeHandler) DeleteHome(c *gin.Context) {
	id, ok := homeIDParam(c)
	if !ok {
		return
	}
	if err := h.homeSvc.DeleteHome(c.Request.Context(), authCaller(c), id); err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Inquire maneja POST /home/:id/inquire. Requiere BUYER.
func (h *HomeHandler) Inquire(c *gin.Context) {
	id, ok := homeIDParam(c)
	if !ok {
		return
	}
	var req struct {
		Message string `json:"message" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid inquire request", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return
	}

	msg, err := h.homeSvc.Inquire(c.Request.Context(), authCaller(c), id, req.Message)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": msg})
}

// ListMessages maneja GET /home/:id/messages. Solo el dueño del listado.
func (h *HomeHandler) ListMessages(c *gin.Context) {
	id, ok := homeIDParam(c)
	if !ok {
		return
	}
	messages, err := h.homeSvc.ListMessages(c.Request.Context(), authCaller(c), id)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}

func homeIDParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidRequest})
		return 0, false
	}
	return id, true
}
