package http

import (
	"context"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"

	"realtor-api/internal/domain"
)

const authUserKey = "auth_user"

// RoleAuthorizer decide si el token del llamador habilita alguno de los roles permitidos.
type RoleAuthorizer interface {
	Authorize(ctx context.Context, token string, allowed []domain.Role) (domain.User, error)
}

// RequireRoles bloquea la ruta salvo que el llamador tenga uno de roles.
// Se adjunta por ruta al registrarla; sin roles la ruta queda abierta.
func RequireRoles(authz RoleAuthorizer, roles ...domain.Role) gin.HandlerFunc {
	allowed := slices.Clone(roles)
	if len(allowed) == 0 {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if GetIdentity(c) == nil {
			forbidden(c)
			return
		}
		token, _ := bearerToken(c.GetHeader("Authorization"))
		user, err := authz.Authorize(c.Request.Context(), token, allowed)
		if err != nil {
			forbidden(c)
			return
		}
		c.Set(authUserKey, user)
		c.Next()
	}
}

// GetAuthUser obtiene el usuario autorizado por RequireRoles.
func GetAuthUser(c *gin.Context) (domain.User, bool) {
	val, ok := c.Get(authUserKey)
	if !ok {
		return domain.User{}, false
	}
	user, ok := val.(domain.User)
	return user, ok
}

// authCaller es la identidad del usuario verificado por RequireRoles, o nil.
func authCaller(c *gin.Context) *domain.Identity {
	user, ok := GetAuthUser(c)
	if !ok {
		return nil
	}
	return &domain.Identity{ID: user.ID, Name: user.Name}
}

func forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": msgForbidden})
}
