package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"realtor-api/internal/domain"
)

const (
	requestIDHeader = "X-Request-ID"
	requestIDKey    = "request_id"
)

// Pinger verifica la conexión con la base para /healthz.
type Pinger interface {
	Ping(ctx context.Context) error
}

// NewRouter configura el router de Gin con middlewares y rutas.
func NewRouter(
	logger *zap.Logger,
	decoder IdentityDecoder,
	authz RoleAuthorizer,
	pinger Pinger,
	authH *AuthHandler,
	homeH *HomeHandler,
) *gin.Engine {
	r := gin.New()

	// La identidad se resuelve una vez, antes de cualquier guard o handler.
	r.Use(
		requestIDMiddleware(),
		zapLoggerMiddleware(logger),
		gin.Recovery(),
		jsonContentTypeMiddleware(),
		IdentityMiddleware(decoder),
	)

	r.GET("/healthz", healthHandler(pinger))

	auth := r.Group("/auth")
	auth.POST("/signup/:role", authH.Signup)
	auth.POST("/signin", authH.Signin)
	auth.POST("/key", authH.GenerateProductKey)
	auth.GET("/me", authH.Me)

	sellers := RequireRoles(authz, domain.RoleAdmin, domain.RoleRealtor)

	home := r.Group("/home")
	home.GET("", homeH.SearchHomes)
	home.GET("/:id", homeH.GetHome)
	home.POST("", sellers, homeH.CreateHome)
	home.PUT("/:id", sellers, homeH.UpdateHome)
	home.DELETE("/:id", sellers, homeH.DeleteHome)
	home.POST("/:id/inquire", RequireRoles(authz, domain.RoleBuyer), homeH.Inquire)
	home.GET("/:id/messages", sellers, homeH.ListMessages)

	return r
}

func healthHandler(pinger Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if pinger != nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
			defer cancel()
			if err := pinger.Ping(ctx); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// requestIDMiddleware propaga X-Request-ID o genera uno nuevo.
func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(requestIDKey, id)
		c.Writer.Header().Set(requestIDHeader, id)
		c.Next()
	}
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", c.ClientIP()),
			zap.String("request_id", c.GetString(requestIDKey)),
		)
	}
}

// jsonContentTypeMiddleware fuerza Content-Type: application/json en responses.
func jsonContentTypeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json")
		c.Next()
	}
}
