package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"realtor-api/internal/domain"
	"realtor-api/internal/email"
	"realtor-api/internal/repository"
)

// TokenSigner emite tokens de identidad.
type TokenSigner interface {
	Sign(name string, id int64) (string, error)
}

// AuthService coordina signup, signin y emisión de claves de producto.
type AuthService struct {
	logger      *zap.Logger
	users       repository.UserRepository
	hasher      PasswordHasher
	tokens      TokenSigner
	productKeys *ProductKeyService
	keySender   email.Sender
}

func NewAuthService(
	logger *zap.Logger,
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens TokenSigner,
	productKeys *ProductKeyService,
	keySender email.Sender,
) *AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthService{
		logger:      logger,
		users:       users,
		hasher:      hasher,
		tokens:      tokens,
		productKeys: productKeys,
		keySender:   keySender,
	}
}

type SignupInput struct {
	Email      string
	Password   string
	Name       string
	Phone      string
	ProductKey string
}

type SigninInput struct {
	Email    string
	Password string
}

// Signup registra un usuario y devuelve su token. Los roles distintos de BUYER
// requieren una clave de producto emitida para (email, role).
func (s *AuthService) Signup(ctx context.Context, input SignupInput, role domain.Role) (string, error) {
	if _, ok := domain.ParseRole(string(role)); !ok {
		return "", ErrInvalidRole
	}

	if role != domain.RoleBuyer {
		if input.ProductKey == "" {
			return "", ErrProductKeyRequired
		}
		if !s.productKeys.Verify(input.Email, role, input.ProductKey) {
			return "", ErrInvalidProductKey
		}
	}

	_, err := s.users.GetByEmail(ctx, input.Email)
	if err == nil {
		return "", ErrUserExists
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", fmt.Errorf("lookup user: %w", err)
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}

	// Sin serialización propia: la unicidad final la garantiza el índice de la tabla.
	user, err := s.users.Create(ctx, repository.CreateUserParams{
		Email:        input.Email,
		Name:         input.Name,
		Phone:        input.Phone,
		PasswordHash: passwordHash,
		Role:         role,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return "", ErrUserExists
		}
		return "", err
	}

	s.logger.Info("user signed up", zap.Int64("user_id", user.ID), zap.String("role", string(user.Role)))
	return s.tokens.Sign(user.Name, user.ID)
}

// Signin valida credenciales. Email inexistente y password incorrecto devuelven el mismo error.
func (s *AuthService) Signin(ctx context.Context, input SigninInput) (string, error) {
	user, err := s.users.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !s.hasher.Verify(input.Password, user.PasswordHash) {
		return "", ErrInvalidCredentials
	}
	return s.tokens.Sign(user.Name, user.ID)
}

// GenerateProductKey emite una clave para (email, role). Si hay un Sender configurado
// la clave también se envía al email; un fallo de envío no invalida la clave devuelta.
func (s *AuthService) GenerateProductKey(ctx context.Context, emailAddr string, role domain.Role) (string, error) {
	if _, ok := domain.ParseRole(string(role)); !ok {
		return "", ErrInvalidRole
	}
	key, err := s.productKeys.Generate(emailAddr, role)
	if err != nil {
		return "", fmt.Errorf("generate product key: %w", err)
	}
	if s.keySender != nil {
		if err := s.keySender.SendProductKey(ctx, emailAddr, string(role), key); err != nil {
			s.logger.Warn("send product key failed", zap.Error(err), zap.String("role", string(role)))
		}
	}
	return key, nil
}
