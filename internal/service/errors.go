package service

import "errors"

var (
	ErrProductKeyRequired = errors.New("product key is required")
	ErrInvalidProductKey  = errors.New("invalid product key")
	ErrUserExists         = errors.New("user already exists")
	// ErrInvalidCredentials cubre email inexistente y password incorrecto por igual.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotHomeOwner       = errors.New("caller does not own home")
	ErrHomeNotFound       = errors.New("home not found")
	ErrNoHomesFound       = errors.New("no homes found")
	ErrInvalidRole        = errors.New("invalid role")
)

// ErrForbidden se devuelve cuando el rol del llamador no está en la lista permitida.
var ErrForbidden = errors.New("forbidden resource")
