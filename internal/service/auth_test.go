package service

import (
	"context"
	"testing"
	"time"

	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthService(users *MockUserRepository) AuthService {
	return NewAuthService(users, config.AuthConfig{
		JWTSecret:      "test-secret",
		AccessTokenTTL: 30 * time.Minute,
	})
}

func TestSignUp(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "new@example.com").Return(nil, nil)
	users.On("CreateUser", mock.Anything, "new@example.com", mock.Anything).
		Return(&domain.User{ID: "user-1", Email: "new@example.com"}, nil)

	svc := newAuthService(users)
	resp, err := svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "new@example.com",
		Password: "long-enough-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", resp.ID)
	assert.Equal(t, "new@example.com", resp.Email)
	users.AssertExpectations(t)
}

func TestSignUpDuplicateEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: "user-1", Email: "taken@example.com"}, nil)

	svc := newAuthService(users)
	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "taken@example.com",
		Password: "long-enough-password",
	})
	require.Error(t, err)
	users.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything, mock.Anything)
}

func TestSignUpValidation(t *testing.T) {
	svc := newAuthService(new(MockUserRepository))

	_, err := svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "not-an-email",
		Password: "long-enough-password",
	})
	require.Error(t, err)

	_, err = svc.SignUp(context.Background(), &dto.SignUpRequest{
		Email:    "ok@example.com",
		Password: "short",
	})
	require.Error(t, err)
}

func TestLoginAndValidateToken(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{ID: "user-7", Email: "user@example.com", PasswordHash: string(hash)}, nil)

	svc := newAuthService(users)
	token, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "correct-password",
	})
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	userID, err := svc.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-7", userID)
}

func TestLoginWrongPassword(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-password"), bcrypt.MinCost)
	require.NoError(t, err)

	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "user@example.com").
		Return(&domain.User{ID: "user-7", PasswordHash: string(hash)}, nil)

	svc := newAuthService(users)
	_, err = svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "user@example.com",
		Password: "wrong-password",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestLoginUnknownEmail(t *testing.T) {
	users := new(MockUserRepository)
	users.On("GetUserByEmail", mock.Anything, "ghost@example.com").Return(nil, nil)

	svc := newAuthService(users)
	_, err := svc.Login(context.Background(), &dto.LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever-password",
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeUnauthorized, domainErr.Code)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := newAuthService(new(MockUserRepository))
	_, err := svc.ValidateToken("not.a.token")
	require.Error(t, err)
}
