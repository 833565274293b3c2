package domain

import (
	"context"
	"time"
)

// Identity es el payload reconstruido a partir del token del request.
// No se persiste.
type Identity struct {
	Name      string    `json:"name"`
	ID        int64     `json:"id"`
	IssuedAt  time.Time `json:"iat"`
	ExpiresAt time.Time `json:"exp"`
}

type identityKey struct{}

// WithIdentity adjunta la identidad (posiblemente nil) al contexto del request.
func WithIdentity(ctx context.Context, identity *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// IdentityFrom devuelve la identidad del contexto, o nil si no hay.
func IdentityFrom(ctx context.Context) *Identity {
	identity, _ := ctx.Value(identityKey{}).(*Identity)
	return identity
}
