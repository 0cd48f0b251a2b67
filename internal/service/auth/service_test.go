package auth

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/mocks"
)

const testSecret = "test-secret"

func newTestService(userRepo *mocks.MockUserRepository, cache *mocks.MockCache) *Service {
	return NewService(userRepo, cache, testSecret, 15*time.Minute, 7*24*time.Hour, zap.NewNop()).(*Service)
}

func hashedUser(id, email, password string, role domain.UserRole) *domain.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return &domain.User{
		ID:       id,
		Email:    email,
		Password: string(hash),
		Role:     role,
	}
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	// Arrange
	var saved *domain.User
	userRepo := &mocks.MockUserRepository{
		SaveFunc: func(ctx context.Context, user *domain.User) error {
			saved = user
			return nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	// Act
	err := svc.Register(context.Background(), &domain.User{
		Name:     "Ana",
		Email:    "ana@example.com",
		Password: "correct horse",
	})

	// Assert
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.Role != domain.UserRoleCustomer {
		t.Errorf("expected default customer role, got %s", saved.Role)
	}
	if saved.Password == "correct horse" {
		t.Error("password must be hashed")
	}
	if bcrypt.CompareHashAndPassword([]byte(saved.Password), []byte("correct horse")) != nil {
		t.Error("hash does not verify against the original password")
	}
	if saved.ID == "" {
		t.Error("expected a generated id")
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleCustomer)
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	_, _, err := svc.Login(context.Background(), "ana@example.com", "wrong")

	if err == nil {
		t.Fatal("expected error for wrong password")
	}
}

func TestLoginUnknownEmailFailsClosed(t *testing.T) {
	svc := newTestService(&mocks.MockUserRepository{}, &mocks.MockCache{})

	_, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever")

	if err == nil {
		t.Fatal("expected error for unknown email")
	}
}

func TestLoginThenValidateReloadsIdentity(t *testing.T) {
	// Arrange
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleWorker)
	lookups := 0
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			lookups++
			if id != "u-1" {
				return nil, nil
			}
			return user, nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	// Act
	access, refresh, err := svc.Login(context.Background(), "ana@example.com", "right")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	got, err := svc.ValidateToken(context.Background(), access)

	// Assert
	if err != nil {
		t.Fatalf("validate failed: %v", err)
	}
	if got.ID != "u-1" || got.Role != domain.UserRoleWorker {
		t.Errorf("unexpected identity %+v", got)
	}
	if lookups == 0 {
		t.Error("expected identity reload from storage")
	}
	if access == refresh {
		t.Error("access and refresh tokens must differ")
	}
}

func TestValidateRejectsRefreshTokenAsAccess(t *testing.T) {
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleCustomer)
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	_, refresh, err := svc.Login(context.Background(), "ana@example.com", "right")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), refresh); err == nil {
		t.Fatal("refresh token must not validate as access token")
	}
}

func TestRefreshReissuesBothTokens(t *testing.T) {
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleCustomer)
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	_, refresh, err := svc.Login(context.Background(), "ana@example.com", "right")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	newAccess, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	if err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if newAccess == "" || newRefresh == "" {
		t.Fatal("expected both tokens re-issued")
	}
	if _, err := svc.ValidateToken(context.Background(), newAccess); err != nil {
		t.Errorf("re-issued access token must validate: %v", err)
	}
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleCustomer)
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	access, _, err := svc.Login(context.Background(), "ana@example.com", "right")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, _, err := svc.RefreshToken(context.Background(), access); err == nil {
		t.Fatal("access token must not be usable for refresh")
	}
}

func TestValidateDeletedUserFails(t *testing.T) {
	user := hashedUser("u-1", "ana@example.com", "right", domain.UserRoleCustomer)
	userRepo := &mocks.MockUserRepository{
		FindByEmailFunc: func(ctx context.Context, email string) (*domain.User, error) {
			return user, nil
		},
		FindByIDFunc: func(ctx context.Context, id string) (*domain.User, error) {
			return nil, nil // deleted after the token was issued
		},
	}
	svc := newTestService(userRepo, &mocks.MockCache{})

	access, _, err := svc.Login(context.Background(), "ana@example.com", "right")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if _, err := svc.ValidateToken(context.Background(), access); err == nil {
		t.Fatal("deleted user must not validate")
	}
}

func TestPolicyMatrix(t *testing.T) {
	policy := NewPolicy(zap.NewNop())

	cases := []struct {
		role     domain.UserRole
		resource string
		action   string
		want     bool
	}{
		{domain.UserRoleAdmin, "users", "delete", true},
		{domain.UserRoleAdmin, "notifications", "write", true},
		{domain.UserRoleCustomer, "transfers", "write", true},
		{domain.UserRoleCustomer, "users", "read", false},
		{domain.UserRoleCustomer, "notifications", "write", false},
		{domain.UserRoleWorker, "transfers", "write", true},
		{domain.UserRoleWorker, "complaints", "write", false},
		{domain.UserRoleWorker, "ads", "read", true},
		{domain.UserRole("ghost"), "transfers", "read", false},
	}
	for _, tc := range cases {
		if got := policy.Allow(tc.role, tc.resource, tc.action); got != tc.want {
			t.Errorf("Allow(%s, %s, %s) = %v, want %v", tc.role, tc.resource, tc.action, got, tc.want)
		}
	}
}
