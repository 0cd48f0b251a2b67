package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/seu-repo/translog/internal/domain"
	"github.com/seu-repo/translog/internal/ports"
)

// identityCacheTTL bounds how stale a cached identity can get. Kept short so
// role changes and deletions surface quickly.
const identityCacheTTL = time.Minute

type Service struct {
	userRepo   ports.UserRepository
	cache      ports.Cache
	jwtSecret  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	log        *zap.Logger
}

func NewService(userRepo ports.UserRepository, cache ports.Cache, jwtSecret string, accessTTL, refreshTTL time.Duration, log *zap.Logger) ports.AuthService {
	return &Service{
		userRepo:   userRepo,
		cache:      cache,
		jwtSecret:  []byte(jwtSecret),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		log:        log,
	}
}

func (s *Service) Login(ctx context.Context, email, password string) (string, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", "", errors.New("invalid credentials")
	}

	return s.generateTokens(user)
}

func (s *Service) Register(ctx context.Context, user *domain.User) error {
	hashedPwd, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPwd)
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = domain.UserRoleCustomer
	}
	user.Status = "Active"
	user.CreatedAt = time.Now()
	user.UpdatedAt = time.Now()

	return s.userRepo.Save(ctx, user)
}

// RefreshToken verifies the refresh token and re-issues both tokens. There
// is no stored refresh-token registry; a token stays valid until its stated
// expiry.
func (s *Service) RefreshToken(ctx context.Context, refreshToken string) (string, string, error) {
	claims, err := s.parseClaims(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "refresh" {
		return "", "", errors.New("invalid refresh token")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return "", "", errors.New("invalid user id in token")
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return "", "", err
	}
	if user == nil {
		return "", "", errors.New("user not found")
	}

	return s.generateTokens(user)
}

// ValidateToken verifies the signature and reloads the identity from
// storage, so deleted or role-changed accounts are reflected immediately.
// The lookup goes through a short-lived cache.
func (s *Service) ValidateToken(ctx context.Context, tokenStr string) (*domain.User, error) {
	claims, err := s.parseClaims(tokenStr)
	if err != nil {
		return nil, errors.New("invalid token")
	}
	if tokenType, _ := claims["type"].(string); tokenType != "access" {
		return nil, errors.New("invalid token")
	}

	userID, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("invalid token subject")
	}

	return s.loadIdentity(ctx, userID)
}

func (s *Service) loadIdentity(ctx context.Context, userID string) (*domain.User, error) {
	cacheKey := "auth:user:" + userID
	if cached, err := s.cache.Get(ctx, cacheKey); err == nil && cached != "" {
		var user domain.User
		if err := json.Unmarshal([]byte(cached), &user); err == nil {
			return &user, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errors.New("user not found")
	}

	if data, err := json.Marshal(user); err == nil {
		if err := s.cache.Set(ctx, cacheKey, string(data), identityCacheTTL); err != nil {
			s.log.Warn("identity cache write failed", zap.Error(err))
		}
	}
	return user, nil
}

func (s *Service) parseClaims(tokenStr string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("invalid claims")
	}
	return claims, nil
}

func (s *Service) generateTokens(user *domain.User) (string, string, error) {
	now := time.Now()

	accessToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(s.accessTTL).Unix(),
		"type": "access",
	})
	accessTokenStr, err := accessToken.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	refreshToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"exp":  now.Add(s.refreshTTL).Unix(),
		"type": "refresh",
	})
	refreshTokenStr, err := refreshToken.SignedString(s.jwtSecret)
	if err != nil {
		return "", "", err
	}

	return accessTokenStr, refreshTokenStr, nil
}
