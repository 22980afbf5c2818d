package service

import (
	"context"
	"net/mail"
	"time"

	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

// AuthService handles signup, login, and access-token validation.
type AuthService interface {
	SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	ValidateToken(tokenString string) (string, error)
}

type authService struct {
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.AccessTokenTTL,
	}
}

func (s *authService) SignUp(ctx context.Context, req *dto.SignUpRequest) (*dto.UserResponse, error) {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, domain.NewInvalidInputError("A valid email address is required")
	}
	if len(req.Password) < minPasswordLength {
		return nil, domain.NewInvalidInputError("Password must be at least 8 characters")
	}

	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to check existing user", err)
	}
	if existing != nil {
		return nil, domain.NewInvalidInputError("Email is already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewInternalError("Failed to hash password", err)
	}

	user, err := s.users.CreateUser(ctx, req.Email, string(hash))
	if err != nil {
		return nil, domain.NewInternalError("Failed to create user", err)
	}

	logger.Get().Info("user registered", zap.String("user_id", user.ID))
	return &dto.UserResponse{ID: user.ID, Email: user.Email}, nil
}

func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, domain.NewInternalError("Failed to look up user", err)
	}
	// The same error for unknown email and wrong password, so login responses
	// don't reveal which emails are registered.
	if user == nil {
		return nil, domain.NewUnauthorizedError("Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.NewUnauthorizedError("Invalid email or password")
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, domain.NewInternalError("Failed to sign token", err)
	}

	return &dto.TokenResponse{AccessToken: signed, TokenType: "bearer"}, nil
}

// ValidateToken verifies the signature and expiry and returns the user id.
func (s *authService) ValidateToken(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.NewUnauthorizedError("Unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", domain.NewUnauthorizedError("Invalid or expired token")
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", domain.NewUnauthorizedError("Invalid token claims")
	}
	return claims.Subject, nil
}
