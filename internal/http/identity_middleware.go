package http

import (
	"strings"

	"github.com/gin-gonic/gin"

	"realtor-api/internal/domain"
)

// IdentityDecoder decodifica un token a la identidad que transporta.
type IdentityDecoder interface {
	Decode(token string) *domain.Identity
}

// IdentityMiddleware resuelve la identidad del llamador y la deja en el contexto
// del request, una sola vez y antes de cualquier handler. Nunca rechaza el request:
// la ausencia de identidad se controla más adelante (RequireRoles, chequeo de dueño).
func IdentityMiddleware(decoder IdentityDecoder) gin.HandlerFunc {
	return func(c *gin.Context) {
		var identity *domain.Identity
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok && decoder != nil {
			identity = decoder.Decode(token)
		}
		c.Request = c.Request.WithContext(domain.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// GetIdentity obtiene la identidad resuelta del request, o nil.
func GetIdentity(c *gin.Context) *domain.Identity {
	return domain.IdentityFrom(c.Request.Context())
}

func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	token := strings.TrimSpace(header[len(prefix):])
	return token, token != ""
}
