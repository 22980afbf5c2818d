package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"studyforge/internal/domain"
	"studyforge/internal/repository/models"
	"studyforge/internal/util"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

type sqlxUserRepository struct {
	db *sqlx.DB
}

func NewSQLXUserRepository(db *sqlx.DB) UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(model *models.User) *domain.User {
	return &domain.User{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}
}

// CreateUser inserts a new user. A duplicate email surfaces as a
// domain-level invalid input error rather than a raw constraint violation.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	now := time.Now()
	model := &models.User{
		ID:           util.NewULID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	query := `INSERT INTO users (id, email, password_hash, created_at, updated_at)
	          VALUES (:id, :email, :password_hash, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, model); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return toDomainUser(model), nil
}

func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model models.User
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email = $1`
	if err := r.db.GetContext(ctx, &model, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var model models.User
	query := `SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id = $1`
	if err := r.db.GetContext(ctx, &model, query, userID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return toDomainUser(&model), nil
}
