package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/repository/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newFlashcardService(completion *MockCompletion, artifacts *MockArtifactRepository) FlashcardService {
	return NewFlashcardService(completion, NewContentResolver(nil, nil), artifacts)
}

func TestFlashcardGenerateDropsOverLimitCards(t *testing.T) {
	longBack := strings.Repeat("word ", 40)
	completion := new(MockCompletion)
	completion.On("Complete", mock.Anything, mock.Anything).Return(
		`[{"id":1,"front":"What is ATP?","back":"Energy currency of the cell","difficulty":"easy"},`+
			`{"id":2,"front":"Long card","back":"`+strings.TrimSpace(longBack)+`","difficulty":"hard"},`+
			`{"id":3,"front":"Define osmosis","back":"Water movement across a membrane","difficulty":"medium"}]`, nil)

	svc := newFlashcardService(completion, new(MockArtifactRepository))
	resp, err := svc.Generate(context.Background(), &dto.FlashcardGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: testContent},
		NumCards:       5,
		WordsPerCard:   20,
	})
	require.NoError(t, err)
	require.Len(t, resp.Flashcards, 2)

	// Survivors are renumbered densely.
	assert.Equal(t, 1, resp.Flashcards[0].ID)
	assert.Equal(t, "What is ATP?", resp.Flashcards[0].Front)
	assert.Equal(t, 2, resp.Flashcards[1].ID)
	assert.Equal(t, "Define osmosis", resp.Flashcards[1].Front)
}

func TestFlashcardGenerateFailsWhenAllCardsDropped(t *testing.T) {
	longBack := strings.TrimSpace(strings.Repeat("word ", 60))
	completion := new(MockCompletion)
	completion.On("Complete", mock.Anything, mock.Anything).Return(
		`[{"id":1,"front":"F","back":"`+longBack+`","difficulty":"hard"}]`, nil)

	svc := newFlashcardService(completion, new(MockArtifactRepository))
	_, err := svc.Generate(context.Background(), &dto.FlashcardGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: testContent},
		NumCards:       5,
		WordsPerCard:   20,
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnexpectedResponse, domainErr.Code)
}

func TestFlashcardGenerateRequiresLongerContent(t *testing.T) {
	completion := new(MockCompletion)
	svc := newFlashcardService(completion, new(MockArtifactRepository))

	// Long enough for the other generators, too short for a card set.
	_, err := svc.Generate(context.Background(), &dto.FlashcardGenerateRequest{
		ContentRequest: dto.ContentRequest{Text: strings.Repeat("a", 60)},
		NumCards:       5,
		WordsPerCard:   35,
	})
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeInvalidInput, domainErr.Code)
	completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFlashcardGenerateBounds(t *testing.T) {
	completion := new(MockCompletion)
	svc := newFlashcardService(completion, new(MockArtifactRepository))

	cases := []struct{ numCards, wordsPerCard int }{
		{4, 35},
		{31, 35},
		{10, 19},
		{10, 51},
	}
	for _, tc := range cases {
		_, err := svc.Generate(context.Background(), &dto.FlashcardGenerateRequest{
			ContentRequest: dto.ContentRequest{Text: testContent},
			NumCards:       tc.numCards,
			WordsPerCard:   tc.wordsPerCard,
		})
		require.Error(t, err, "num_cards=%d words_per_card=%d", tc.numCards, tc.wordsPerCard)
	}
	completion.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestFlashcardSave(t *testing.T) {
	artifacts := new(MockArtifactRepository)
	artifacts.On("SaveFlashcardSet", mock.Anything, mock.MatchedBy(func(set *models.FlashcardSet) bool {
		return set.UserID == "user-1" && set.NumCards == 1 && strings.Contains(set.Flashcards, "ATP")
	})).Return(int64(4), nil)

	svc := newFlashcardService(new(MockCompletion), artifacts)
	id, err := svc.Save(context.Background(), "user-1", &dto.FlashcardSaveRequest{
		Flashcards: []domain.Flashcard{
			{ID: 1, Front: "What is ATP?", Back: "Energy currency", Difficulty: "easy"},
		},
		OriginalContent: testContent,
		ContentSource:   "text",
		WordsPerCard:    35,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(4), id)
	artifacts.AssertExpectations(t)
}

func TestFlashcardSaveEmpty(t *testing.T) {
	svc := newFlashcardService(new(MockCompletion), new(MockArtifactRepository))
	_, err := svc.Save(context.Background(), "user-1", &dto.FlashcardSaveRequest{})
	require.Error(t, err)
}

func TestFlashcardSaved(t *testing.T) {
	artifacts := new(MockArtifactRepository)
	artifacts.On("GetFlashcardSetsByUser", mock.Anything, "user-1").Return([]models.FlashcardSet{
		{ID: 2, NumCards: 8, ContentSource: "url"},
		{ID: 1, NumCards: 10, ContentSource: "text"},
	}, nil)

	svc := newFlashcardService(new(MockCompletion), artifacts)
	sets, err := svc.Saved(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, sets, 2)
	assert.Equal(t, int64(2), sets[0].SetID)
	assert.Equal(t, 8, sets[0].NumCards)
}
