package repository

import (
	"context"
	"fmt"
	"time"

	"studyforge/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// Counter names for artifact sequence ids.
const (
	CounterFlashcardSets = "flashcard_sets"
	CounterWorkflows     = "workflows"
	CounterPresentations = "presentations"
)

// ArtifactRepository persists generated study artifacts. Saves are
// append-only; rows are never updated after insertion.
type ArtifactRepository interface {
	SaveFlashcardSet(ctx context.Context, set *models.FlashcardSet) (int64, error)
	GetFlashcardSetsByUser(ctx context.Context, userID string) ([]models.FlashcardSet, error)
	SaveWorkflow(ctx context.Context, workflow *models.Workflow) (int64, error)
	GetWorkflowsByUser(ctx context.Context, userID string) ([]models.Workflow, error)
	SavePresentation(ctx context.Context, presentation *models.Presentation) (int64, error)
	GetPresentationsByUser(ctx context.Context, userID string) ([]models.Presentation, error)
}

type sqlxArtifactRepository struct {
	db        *sqlx.DB
	sequences SequenceRepository
}

func NewSQLXArtifactRepository(db *sqlx.DB, sequences SequenceRepository) ArtifactRepository {
	return &sqlxArtifactRepository{db: db, sequences: sequences}
}

func (r *sqlxArtifactRepository) SaveFlashcardSet(ctx context.Context, set *models.FlashcardSet) (int64, error) {
	id, err := r.sequences.Next(ctx, CounterFlashcardSets)
	if err != nil {
		return 0, err
	}
	set.ID = id
	set.CreatedAt = time.Now()

	query := `INSERT INTO flashcard_sets (id, user_id, flashcards, original_content, content_source, num_cards, words_per_card, created_at)
	          VALUES (:id, :user_id, :flashcards, :original_content, :content_source, :num_cards, :words_per_card, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, set); err != nil {
		return 0, fmt.Errorf("failed to save flashcard set: %w", err)
	}
	return id, nil
}

func (r *sqlxArtifactRepository) GetFlashcardSetsByUser(ctx context.Context, userID string) ([]models.FlashcardSet, error) {
	var sets []models.FlashcardSet
	query := `SELECT id, user_id, flashcards, original_content, content_source, num_cards, words_per_card, created_at
	          FROM flashcard_sets WHERE user_id = $1 ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &sets, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list flashcard sets: %w", err)
	}
	return sets, nil
}

func (r *sqlxArtifactRepository) SaveWorkflow(ctx context.Context, workflow *models.Workflow) (int64, error) {
	id, err := r.sequences.Next(ctx, CounterWorkflows)
	if err != nil {
		return 0, err
	}
	workflow.ID = id
	workflow.CreatedAt = time.Now()

	query := `INSERT INTO workflows (id, user_id, mermaid_code, original_content, content_source, created_at)
	          VALUES (:id, :user_id, :mermaid_code, :original_content, :content_source, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, workflow); err != nil {
		return 0, fmt.Errorf("failed to save workflow: %w", err)
	}
	return id, nil
}

func (r *sqlxArtifactRepository) GetWorkflowsByUser(ctx context.Context, userID string) ([]models.Workflow, error) {
	var workflows []models.Workflow
	query := `SELECT id, user_id, mermaid_code, original_content, content_source, created_at
	          FROM workflows WHERE user_id = $1 ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &workflows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list workflows: %w", err)
	}
	return workflows, nil
}

func (r *sqlxArtifactRepository) SavePresentation(ctx context.Context, presentation *models.Presentation) (int64, error) {
	id, err := r.sequences.Next(ctx, CounterPresentations)
	if err != nil {
		return 0, err
	}
	presentation.ID = id
	presentation.CreatedAt = time.Now()

	query := `INSERT INTO presentations (id, user_id, title, slides, theme, num_slides, created_at)
	          VALUES (:id, :user_id, :title, :slides, :theme, :num_slides, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, presentation); err != nil {
		return 0, fmt.Errorf("failed to save presentation: %w", err)
	}
	return id, nil
}

func (r *sqlxArtifactRepository) GetPresentationsByUser(ctx context.Context, userID string) ([]models.Presentation, error) {
	var presentations []models.Presentation
	query := `SELECT id, user_id, title, slides, theme, num_slides, created_at
	          FROM presentations WHERE user_id = $1 ORDER BY id DESC`
	if err := r.db.SelectContext(ctx, &presentations, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list presentations: %w", err)
	}
	return presentations, nil
}
