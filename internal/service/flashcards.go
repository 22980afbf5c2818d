package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/prompt"
	"studyforge/internal/repository"
	"studyforge/internal/repository/models"
	"studyforge/internal/util"

	"go.uber.org/zap"
)

// Card count and word limit bounds for flashcard generation.
const (
	MinFlashcards    = 5
	MaxFlashcards    = 30
	MinWordsPerCard  = 20
	MaxWordsPerCard  = 50
	DefaultCardWords = 35

	// minFlashcardContent is stricter than the shared resolver minimum; a
	// usable card set needs more source material than a single explanation.
	minFlashcardContent = 100
)

// FlashcardService generates and persists flashcard sets.
type FlashcardService interface {
	Generate(ctx context.Context, req *dto.FlashcardGenerateRequest) (*dto.FlashcardGenerateResponse, error)
	Save(ctx context.Context, userID string, req *dto.FlashcardSaveRequest) (int64, error)
	Saved(ctx context.Context, userID string) ([]dto.FlashcardSetSummary, error)
}

type flashcardService struct {
	completion domain.CompletionService
	resolver   ContentResolver
	artifacts  repository.ArtifactRepository
}

func NewFlashcardService(completion domain.CompletionService, resolver ContentResolver, artifacts repository.ArtifactRepository) FlashcardService {
	return &flashcardService{completion: completion, resolver: resolver, artifacts: artifacts}
}

func (s *flashcardService) Generate(ctx context.Context, req *dto.FlashcardGenerateRequest) (*dto.FlashcardGenerateResponse, error) {
	if req.NumCards < MinFlashcards || req.NumCards > MaxFlashcards {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("num_cards must be between %d and %d", MinFlashcards, MaxFlashcards))
	}
	if req.WordsPerCard < MinWordsPerCard || req.WordsPerCard > MaxWordsPerCard {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("words_per_card must be between %d and %d", MinWordsPerCard, MaxWordsPerCard))
	}

	resolved, err := s.resolver.Resolve(ctx, &req.ContentRequest)
	if err != nil {
		return nil, err
	}
	if len(resolved.Text) < minFlashcardContent {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("Content too short. Need at least %d characters for flashcards.", minFlashcardContent))
	}

	response, err := s.completion.Complete(ctx,
		prompt.Flashcards(resolved.Text, req.NumCards, req.WordsPerCard))
	if err != nil {
		return nil, err
	}

	var cards []domain.Flashcard
	if err := airesponse.ParseInto(airesponse.Sanitize(response), &cards); err != nil {
		return nil, err
	}

	kept := enforceWordLimit(cards, req.WordsPerCard)
	if len(kept) == 0 {
		return nil, domain.NewUnexpectedResponseError("Every generated flashcard exceeded the word limit")
	}
	if len(kept) < len(cards) {
		logger.Get().Info("dropped over-limit flashcards",
			zap.Int("generated", len(cards)),
			zap.Int("kept", len(kept)),
			zap.Int("words_per_card", req.WordsPerCard))
	}

	return &dto.FlashcardGenerateResponse{
		Flashcards:      kept,
		OriginalContent: resolved.Text,
		ContentSource:   string(resolved.SourceType),
	}, nil
}

// enforceWordLimit drops cards whose front or back exceeds the limit. Ids are
// renumbered so the surviving set stays dense.
func enforceWordLimit(cards []domain.Flashcard, wordsPerCard int) []domain.Flashcard {
	kept := make([]domain.Flashcard, 0, len(cards))
	for _, card := range cards {
		if util.CountWords(card.Front) > wordsPerCard || util.CountWords(card.Back) > wordsPerCard {
			continue
		}
		card.ID = len(kept) + 1
		kept = append(kept, card)
	}
	return kept
}

func (s *flashcardService) Save(ctx context.Context, userID string, req *dto.FlashcardSaveRequest) (int64, error) {
	if len(req.Flashcards) == 0 {
		return 0, domain.NewInvalidInputError("No flashcards to save")
	}

	data, err := json.Marshal(req.Flashcards)
	if err != nil {
		return 0, domain.NewInternalError("Failed to encode flashcards", err)
	}

	return s.artifacts.SaveFlashcardSet(ctx, &models.FlashcardSet{
		UserID:          userID,
		Flashcards:      string(data),
		OriginalContent: req.OriginalContent,
		ContentSource:   req.ContentSource,
		NumCards:        len(req.Flashcards),
		WordsPerCard:    req.WordsPerCard,
	})
}

func (s *flashcardService) Saved(ctx context.Context, userID string) ([]dto.FlashcardSetSummary, error) {
	sets, err := s.artifacts.GetFlashcardSetsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load saved flashcard sets", err)
	}

	summaries := make([]dto.FlashcardSetSummary, 0, len(sets))
	for _, set := range sets {
		summaries = append(summaries, dto.FlashcardSetSummary{
			SetID:         set.ID,
			NumCards:      set.NumCards,
			ContentSource: set.ContentSource,
			CreatedAt:     set.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}
