package service

import (
	"context"
	"slices"

	"realtor-api/internal/domain"
)

// TokenVerifier valida firma y expiración de un token.
type TokenVerifier interface {
	Verify(token string) (*domain.Identity, error)
}

// UserFinder busca usuarios por id.
type UserFinder interface {
	GetByID(ctx context.Context, id int64) (domain.User, error)
}

// RoleAuthorizer decide si el llamador puede ejecutar una operación con lista de roles.
// El token no transporta el rol: se lee del usuario persistido.
type RoleAuthorizer struct {
	tokens TokenVerifier
	users  UserFinder
}

func NewRoleAuthorizer(tokens TokenVerifier, users UserFinder) *RoleAuthorizer {
	return &RoleAuthorizer{tokens: tokens, users: users}
}

// Authorize verifica el token y que el rol del usuario esté en allowed.
// Cualquier fallo se reporta como ErrForbidden.
func (a *RoleAuthorizer) Authorize(ctx context.Context, token string, allowed []domain.Role) (domain.User, error) {
	if token == "" {
		return domain.User{}, ErrForbidden
	}
	identity, err := a.tokens.Verify(token)
	if err != nil {
		return domain.User{}, ErrForbidden
	}
	user, err := a.users.GetByID(ctx, identity.ID)
	if err != nil {
		return domain.User{}, ErrForbidden
	}
	if !slices.Contains(allowed, user.Role) {
		return domain.User{}, ErrForbidden
	}
	return user, nil
}
