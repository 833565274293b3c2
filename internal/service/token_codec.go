package service

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"realtor-api/internal/domain"
)

// TokenTTL es la vigencia de un token de identidad desde su emisión.
const TokenTTL = 30 * 24 * time.Hour

var (
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
	ErrNoSecret     = errors.New("jwt secret not configured")
)

// Claims es el payload firmado: {name, id} más iat/exp.
type Claims struct {
	Name   string `json:"name"`
	UserID int64  `json:"id"`
	jwt.RegisteredClaims
}

// TokenCodec firma y decodifica tokens de identidad.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenCodec crea el codec con el secreto del proceso.
// Un secreto vacío es un error de arranque.
func NewTokenCodec(secret string) (*TokenCodec, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrNoSecret
	}
	return &TokenCodec{
		secret: []byte(secret),
		ttl:    TokenTTL,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Sign emite un token HS256 para el usuario.
func (c *TokenCodec) Sign(name string, id int64) (string, error) {
	now := c.now()
	claims := Claims{
		Name:   name,
		UserID: id,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Decode devuelve los claims embebidos sin verificar firma ni expiración.
// Nunca falla: ante cualquier problema devuelve nil.
func (c *TokenCodec) Decode(token string) *domain.Identity {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	var claims Claims
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return nil
	}
	return claims.identity()
}

// Verify valida firma, algoritmo y expiración antes de devolver la identidad.
func (c *TokenCodec) Verify(token string) (*domain.Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrTokenInvalid
	}
	var claims Claims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.now),
	)
	_, err := parser.ParseWithClaims(token, &claims, func(_ *jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	return claims.identity(), nil
}

func (c Claims) identity() *domain.Identity {
	identity := &domain.Identity{
		Name: c.Name,
		ID:   c.UserID,
	}
	if c.IssuedAt != nil {
		identity.IssuedAt = c.IssuedAt.UTC()
	}
	if c.ExpiresAt != nil {
		identity.ExpiresAt = c.ExpiresAt.UTC()
	}
	return identity
}
