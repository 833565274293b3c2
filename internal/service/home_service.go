package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"realtor-api/internal/domain"
	"realtor-api/internal/repository"
)

const searchTimeout = 10 * time.Second

// HomeService coordina listados, búsquedas y consultas de compradores.
type HomeService struct {
	logger   *zap.Logger
	homes    repository.HomeRepository
	messages repository.MessageRepository
	owners   *OwnershipChecker
	cache    HomeSearchCache
	searches singleflight.Group
}

// NewHomeService crea el servicio. cache puede ser nil.
func NewHomeService(
	logger *zap.Logger,
	homes repository.HomeRepository,
	messages repository.MessageRepository,
	cache HomeSearchCache,
) *HomeService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HomeService{
		logger:   logger,
		homes:    homes,
		messages: messages,
		owners:   NewOwnershipChecker(homes),
		cache:    cache,
	}
}

type CreateHomeInput struct {
	Address      string
	City         string
	Price        float64
	Bedrooms     int
	Bathrooms    float64
	LandSize     float64
	PropertyType domain.PropertyType
	ImageURLs    []string
}

// SearchHomes devuelve los listados que cumplen los parámetros.
// Un resultado vacío es ErrNoHomesFound, no una lista vacía.
func (s *HomeService) SearchHomes(ctx context.Context, params HomeSearchParams) ([]domain.Home, error) {
	filter := BuildHomeFilter(params)

	// La clave se fija antes de consultar: incluye la versión vigente del cache.
	flightKey := filterKey(filter)
	var cacheKey string
	if s.cache != nil {
		homes, key, ok := s.cache.Get(ctx, filter)
		if ok && len(homes) > 0 {
			return homes, nil
		}
		cacheKey = key
		if key != "" {
			flightKey = key
		}
	}

	// La consulta compartida no hereda la cancelación de quien la inició; cada
	// llamador espera solo mientras su propio contexto siga vivo.
	ch := s.searches.DoChan(flightKey, func() (any, error) {
		queryCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), searchTimeout)
		defer cancel()
		homes, err := s.homes.List(queryCtx, filter)
		if err != nil {
			return nil, err
		}
		if s.cache != nil && len(homes) > 0 {
			s.cache.Set(queryCtx, cacheKey, homes)
		}
		return homes, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, fmt.Errorf("list homes: %w", res.Err)
	}
	homes := res.Val.([]domain.Home)
	if len(homes) == 0 {
		return nil, ErrNoHomesFound
	}
	return homes, nil
}

func (s *HomeService) GetHome(ctx context.Context, id int64) (domain.Home, error) {
	home, err := s.homes.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Home{}, ErrHomeNotFound
		}
		return domain.Home{}, fmt.Errorf("get home: %w", err)
	}
	return home, nil
}

// CreateHome publica un listado cuyo dueño es el llamador.
func (s *HomeService) CreateHome(ctx context.Context, caller *domain.Identity, input CreateHomeInput) (domain.Home, error) {
	if caller == nil {
		return domain.Home{}, ErrForbidden
	}
	home, err := s.homes.Create(ctx, repository.CreateHomeParams{
		Address:      input.Address,
		City:         input.City,
		Price:        input.Price,
		Bedrooms:     input.Bedrooms,
		Bathrooms:    input.Bathrooms,
		LandSize:     input.LandSize,
		PropertyType: input.PropertyType,
		RealtorID:    caller.ID,
		ImageURLs:    input.ImageURLs,
	})
	if err != nil {
		return domain.Home{}, err
	}
	s.invalidate(ctx)
	s.logger.Info("home created", zap.Int64("home_id", home.ID), zap.Int64("realtor_id", home.RealtorID))
	return home, nil
}

func (s *HomeService) UpdateHome(ctx context.Context, caller *domain.Identity, id int64, update domain.HomeUpdate) (domain.Home, error) {
	if err := s.owners.EnsureOwner(ctx, id, caller); err != nil {
		return domain.Home{}, err
	}
	home, err := s.homes.Update(ctx, id, update)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Home{}, ErrHomeNotFound
		}
		return domain.Home{}, fmt.Errorf("update home: %w", err)
	}
	s.invalidate(ctx)
	return home, nil
}

func (s *HomeService) DeleteHome(ctx context.Context, caller *domain.Identity, id int64) error {
	if err := s.owners.EnsureOwner(ctx, id, caller); err != nil {
		return err
	}
	if err := s.homes.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrHomeNotFound
		}
		return err
	}
	s.invalidate(ctx)
	s.logger.Info("home deleted", zap.Int64("home_id", id), zap.Int64("realtor_id", caller.ID))
	return nil
}

// Inquire registra la consulta de un comprador dirigida al dueño del listado.
func (s *HomeService) Inquire(ctx context.Context, caller *domain.Identity, homeID int64, body string) (domain.Message, error) {
	if caller == nil {
		return domain.Message{}, ErrForbidden
	}
	realtorID, err := s.homes.GetOwnerID(ctx, homeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Message{}, ErrHomeNotFound
		}
		return domain.Message{}, fmt.Errorf("lookup home owner: %w", err)
	}
	return s.messages.Create(ctx, domain.Message{
		HomeID:    homeID,
		RealtorID: realtorID,
		BuyerID:   caller.ID,
		Body:      body,
	})
}

// ListMessages devuelve las consultas de un listado; solo para su dueño.
func (s *HomeService) ListMessages(ctx context.Context, caller *domain.Identity, homeID int64) ([]domain.Message, error) {
	if err := s.owners.EnsureOwner(ctx, homeID, caller); err != nil {
		return nil, err
	}
	messages, err := s.messages.ListByHome(ctx, homeID)
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	return messages, nil
}

func (s *HomeService) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
}
