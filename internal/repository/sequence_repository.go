package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SequenceRepository hands out monotonically increasing ids per named counter.
type SequenceRepository interface {
	Next(ctx context.Context, name string) (int64, error)
}

type sqlxSequenceRepository struct {
	db *sqlx.DB
}

func NewSQLXSequenceRepository(db *sqlx.DB) SequenceRepository {
	return &sqlxSequenceRepository{db: db}
}

// Next atomically increments the counter and returns the new value, starting
// at 1 for a counter that does not exist yet.
func (r *sqlxSequenceRepository) Next(ctx context.Context, name string) (int64, error) {
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = counters.value + 1
	          RETURNING value`

	var value int64
	if err := r.db.GetContext(ctx, &value, query, name); err != nil {
		return 0, fmt.Errorf("failed to advance counter %s: %w", name, err)
	}
	return value, nil
}
