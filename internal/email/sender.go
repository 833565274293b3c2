package email

import "context"

// Sender define la interfaz para entregar claves de producto fuera de banda.
type Sender interface {
	SendProductKey(ctx context.Context, toEmail string, role string, key string) error
}
