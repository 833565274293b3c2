package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"realtor-api/internal/domain"
)

// HomeOwnerFinder resuelve el dueño (realtor) de un listado.
type HomeOwnerFinder interface {
	GetOwnerID(ctx context.Context, homeID int64) (int64, error)
}

// OwnershipChecker restringe mutaciones de un listado a quien lo publicó.
// Es independiente del chequeo de rol.
type OwnershipChecker struct {
	homes HomeOwnerFinder
}

func NewOwnershipChecker(homes HomeOwnerFinder) *OwnershipChecker {
	return &OwnershipChecker{homes: homes}
}

// EnsureOwner devuelve nil solo si caller es el dueño del listado.
func (c *OwnershipChecker) EnsureOwner(ctx context.Context, homeID int64, caller *domain.Identity) error {
	ownerID, err := c.homes.GetOwnerID(ctx, homeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHomeNotFound
		}
		return fmt.Errorf("lookup home owner: %w", err)
	}
	if caller == nil || ownerID != caller.ID {
		return ErrNotHomeOwner
	}
	return nil
}
