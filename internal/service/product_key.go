package service

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"

	"realtor-api/internal/domain"
)

// ProductKeyService deriva y verifica la clave que habilita el registro de roles no-comprador.
// El material nunca se persiste: se recalcula en cada llamada.
type ProductKeyService struct {
	hasher PasswordHasher
	secret string
}

func NewProductKeyService(hasher PasswordHasher, secret string) (*ProductKeyService, error) {
	if hasher == nil {
		return nil, errors.New("product key hasher not configured")
	}
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("product key secret not configured")
	}
	return &ProductKeyService{hasher: hasher, secret: secret}, nil
}

// Generate devuelve un hash salado del material; dos llamadas devuelven hashes distintos.
func (s *ProductKeyService) Generate(email string, role domain.Role) (string, error) {
	return s.hasher.Hash(s.material(email, role))
}

// Verify compara la clave provista contra el material recalculado.
func (s *ProductKeyService) Verify(email string, role domain.Role, key string) bool {
	if key == "" {
		return false
	}
	return s.hasher.Verify(s.material(email, role), key)
}

// material es función pura de (email, role, secret). bcrypt ignora lo que pasa de 72 bytes,
// así que se reduce a un digest hex de 64 caracteres.
func (s *ProductKeyService) material(email string, role domain.Role) string {
	sum := sha256.Sum256([]byte(email + "-" + string(role) + "-" + s.secret))
	return hex.EncodeToString(sum[:])
}
