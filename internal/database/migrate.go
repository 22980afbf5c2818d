package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// schema holds the bootstrap DDL. Statements are idempotent so startup can run
// them unconditionally.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    TIMESTAMP NOT NULL,
		updated_at    TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS counters (
		name  TEXT PRIMARY KEY,
		value INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS flashcard_sets (
		id               INTEGER PRIMARY KEY,
		user_id          TEXT NOT NULL,
		flashcards       TEXT NOT NULL,
		original_content TEXT NOT NULL,
		content_source   TEXT NOT NULL,
		num_cards        INTEGER NOT NULL,
		words_per_card   INTEGER NOT NULL,
		created_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS workflows (
		id               INTEGER PRIMARY KEY,
		user_id          TEXT NOT NULL,
		mermaid_code     TEXT NOT NULL,
		original_content TEXT NOT NULL,
		content_source   TEXT NOT NULL,
		created_at       TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS presentations (
		id         INTEGER PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		slides     TEXT NOT NULL,
		theme      TEXT NOT NULL,
		num_slides INTEGER NOT NULL,
		created_at TIMESTAMP NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_flashcard_sets_user ON flashcard_sets(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_workflows_user ON workflows(user_id)`,
	`CREATE INDEX IF NOT EXISTS idx_presentations_user ON presentations(user_id)`,
}

// Migrate applies the bootstrap schema.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema statement: %w", err)
		}
	}
	return nil
}
