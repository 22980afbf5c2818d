package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestDB creates a new sqlx.DB instance and sqlmock for repository testing.
func setupTestDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("Failed to create sqlmock: %v", err)
	}
	sqlxDB := sqlx.NewDb(mockDB, "sqlmock")
	return sqlxDB, mock
}

func TestCreateUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	user, err := repo.CreateUser(context.Background(), "test@example.com", "hashed-password")
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.Equal(t, "hashed-password", user.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow("user-1", "test@example.com", "hashed", now, now)
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email`).
		WithArgs("test@example.com").
		WillReturnRows(rows)

	user, err := repo.GetUserByEmail(context.Background(), "test@example.com")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "test@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmailNotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE email`).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}))

	user, err := repo.GetUserByEmail(context.Background(), "missing@example.com")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByID(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewSQLXUserRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at", "updated_at"}).
		AddRow("user-9", "someone@example.com", "hashed", now, now)
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE id`).
		WithArgs("user-9").
		WillReturnRows(rows)

	user, err := repo.GetUserByID(context.Background(), "user-9")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "someone@example.com", user.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}
