package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"realtor-api/internal/domain"
	"realtor-api/internal/repository"
)

type mockUserRepo struct {
	usersByID    map[int64]domain.User
	usersByEmail map[string]int64
	nextID       int64
	lookupErr    error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{
		usersByID:    make(map[int64]domain.User),
		usersByEmail: make(map[string]int64),
		nextID:       1,
	}
}

func (m *mockUserRepo) Create(_ context.Context, params repository.CreateUserParams) (domain.User, error) {
	if _, ok := m.usersByEmail[params.Email]; ok {
		return domain.User{}, repository.ErrDuplicateEmail
	}
	user := domain.User{
		ID:           m.nextID,
		Email:        params.Email,
		Name:         params.Name,
		Phone:        params.Phone,
		PasswordHash: params.PasswordHash,
		Role:         params.Role,
		CreatedAt:    time.Now().UTC(),
	}
	m.nextID++
	m.usersByID[user.ID] = user
	m.usersByEmail[user.Email] = user.ID
	return user, nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id int64) (domain.User, error) {
	user, ok := m.usersByID[id]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return user, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	if m.lookupErr != nil {
		return domain.User{}, m.lookupErr
	}
	id, ok := m.usersByEmail[email]
	if !ok {
		return domain.User{}, pgx.ErrNoRows
	}
	return m.GetByID(ctx, id)
}

type mockKeySender struct {
	to   string
	role string
	key  string
	err  error
}

func (m *mockKeySender) SendProductKey(_ context.Context, toEmail, role, key string) error {
	m.to, m.role, m.key = toEmail, role, key
	return m.err
}

type authFixture struct {
	svc    *AuthService
	repo   *mockUserRepo
	codec  *TokenCodec
	keys   *ProductKeyService
	sender *mockKeySender
}

func newAuthFixture(t *testing.T) authFixture {
	t.Helper()
	hasher := NewBcryptHasher(bcrypt.MinCost)
	codec, err := NewTokenCodec("jwt-secret")
	if err != nil {
		t.Fatalf("codec: %v", err)
	}
	keys, err := NewProductKeyService(hasher, "pk-secret")
	if err != nil {
		t.Fatalf("product keys: %v", err)
	}
	repo := newMockUserRepo()
	sender := &mockKeySender{}
	return authFixture{
		svc:    NewAuthService(zap.NewNop(), repo, hasher, codec, keys, sender),
		repo:   repo,
		codec:  codec,
		keys:   keys,
		sender: sender,
	}
}

func TestAuthService_SignupBuyerSkipsProductKey(t *testing.T) {
	f := newAuthFixture(t)

	token, err := f.svc.Signup(context.Background(), SignupInput{
		Email:    "buyer@example.com",
		Password: "supersafe",
		Name:     "Buyer",
		Phone:    "555 555 5555",
	}, domain.RoleBuyer)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}

	identity := f.codec.Decode(token)
	if identity == nil || identity.Name != "Buyer" || identity.ID != 1 {
		t.Fatalf("unexpected identity: %+v", identity)
	}
	stored := f.repo.usersByID[1]
	if stored.PasswordHash == "supersafe" || stored.PasswordHash == "" {
		t.Fatalf("expected hashed password, got %q", stored.PasswordHash)
	}
	if stored.Role != domain.RoleBuyer {
		t.Fatalf("expected BUYER role, got %s", stored.Role)
	}
}

func TestAuthService_SignupPrivilegedRequiresProductKey(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleRealtor, domain.RoleAdmin} {
		t.Run(string(role), func(t *testing.T) {
			f := newAuthFixture(t)
			_, err := f.svc.Signup(context.Background(), SignupInput{
				Email:    "pro@example.com",
				Password: "supersafe",
				Name:     "Pro",
			}, role)
			if !errors.Is(err, ErrProductKeyRequired) {
				t.Fatalf("expected ErrProductKeyRequired, got %v", err)
			}
			if len(f.repo.usersByID) != 0 {
				t.Fatalf("expected no user to be created")
			}
		})
	}
}

func TestAuthService_SignupRejectsForeignProductKey(t *testing.T) {
	f := newAuthFixture(t)
	otherEmail, err := f.keys.Generate("someone@example.com", domain.RoleRealtor)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	otherRole, err := f.keys.Generate("pro@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	for _, key := range []string{otherEmail, otherRole, "garbage"} {
		_, err := f.svc.Signup(context.Background(), SignupInput{
			Email:      "pro@example.com",
			Password:   "supersafe",
			Name:       "Pro",
			ProductKey: key,
		}, domain.RoleRealtor)
		if !errors.Is(err, ErrInvalidProductKey) {
			t.Fatalf("expected ErrInvalidProductKey, got %v", err)
		}
	}
}

func TestAuthService_SignupWithValidProductKey(t *testing.T) {
	f := newAuthFixture(t)
	key, err := f.svc.GenerateProductKey(context.Background(), "pro@example.com", domain.RoleRealtor)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if f.sender.to != "pro@example.com" || f.sender.key != key || f.sender.role != "REALTOR" {
		t.Fatalf("expected key to be relayed, got %+v", f.sender)
	}

	token, err := f.svc.Signup(context.Background(), SignupInput{
		Email:      "pro@example.com",
		Password:   "supersafe",
		Name:       "Pro",
		ProductKey: key,
	}, domain.RoleRealtor)
	if err != nil {
		t.Fatalf("signup: %v", err)
	}
	if identity := f.codec.Decode(token); identity == nil || identity.ID != 1 {
		t.Fatalf("unexpected identity %+v", identity)
	}
	if f.repo.usersByID[1].Role != domain.RoleRealtor {
		t.Fatalf("expected REALTOR role")
	}
}

func TestAuthService_GenerateProductKeySendFailureStillReturnsKey(t *testing.T) {
	f := newAuthFixture(t)
	f.sender.err = errors.New("smtp down")

	key, err := f.svc.GenerateProductKey(context.Background(), "pro@example.com", domain.RoleAdmin)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !f.keys.Verify("pro@example.com", domain.RoleAdmin, key) {
		t.Fatalf("expected returned key to verify")
	}
}

func TestAuthService_SignupDuplicateEmail(t *testing.T) {
	f := newAuthFixture(t)
	input := SignupInput{Email: "buyer@example.com", Password: "supersafe", Name: "Buyer"}
	if _, err := f.svc.Signup(context.Background(), input, domain.RoleBuyer); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	if _, err := f.svc.Signup(context.Background(), input, domain.RoleBuyer); !errors.Is(err, ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_SignupInvalidRole(t *testing.T) {
	f := newAuthFixture(t)
	_, err := f.svc.Signup(context.Background(), SignupInput{Email: "x@example.com", Password: "supersafe"}, domain.Role("OWNER"))
	if !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAuthService_Signin(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	if _, err := f.svc.Signup(ctx, SignupInput{Email: "buyer@example.com", Password: "supersafe", Name: "Buyer"}, domain.RoleBuyer); err != nil {
		t.Fatalf("signup: %v", err)
	}

	token, err := f.svc.Signin(ctx, SigninInput{Email: "buyer@example.com", Password: "supersafe"})
	if err != nil {
		t.Fatalf("signin: %v", err)
	}
	if identity := f.codec.Decode(token); identity == nil || identity.ID != f.repo.usersByEmail["buyer@example.com"] {
		t.Fatalf("expected token for signed up user, got %+v", identity)
	}

	_, wrongPassword := f.svc.Signin(ctx, SigninInput{Email: "buyer@example.com", Password: "nope"})
	_, unknownEmail := f.svc.Signin(ctx, SigninInput{Email: "ghost@example.com", Password: "supersafe"})
	if !errors.Is(wrongPassword, ErrInvalidCredentials) || !errors.Is(unknownEmail, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v / %v", wrongPassword, unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("expected identical errors, got %q and %q", wrongPassword, unknownEmail)
	}
}

func TestAuthService_SigninPropagatesStoreErrors(t *testing.T) {
	f := newAuthFixture(t)
	f.repo.lookupErr = errors.New("connection refused")

	_, err := f.svc.Signin(context.Background(), SigninInput{Email: "buyer@example.com", Password: "supersafe"})
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected store error to surface, got %v", err)
	}
}

func repoParams(email string, role domain.Role) repository.CreateUserParams {
	return repository.CreateUserParams{Email: email, Name: email, PasswordHash: "x", Role: role}
}
