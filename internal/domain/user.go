package domain

import "time"

// Role identifica el tipo de cuenta de un usuario.
type Role string

const (
	RoleBuyer   Role = "BUYER"
	RoleRealtor Role = "REALTOR"
	RoleAdmin   Role = "ADMIN"
)

// ParseRole valida un rol recibido desde la capa HTTP.
func ParseRole(raw string) (Role, bool) {
	switch r := Role(raw); r {
	case RoleBuyer, RoleRealtor, RoleAdmin:
		return r, true
	default:
		return "", false
	}
}

type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
