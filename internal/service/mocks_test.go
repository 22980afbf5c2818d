package service

import (
	"context"
	"sync"

	"studyforge/internal/domain"
	"studyforge/internal/repository"
	"studyforge/internal/repository/models"

	"github.com/stretchr/testify/mock"
)

// MockCompletion is a testify mock for domain.CompletionService.
type MockCompletion struct {
	mock.Mock
}

func (m *MockCompletion) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockCompletion) CompleteWithTools(ctx context.Context, prompt string, tools []domain.ToolSchema) (*domain.ToolRound, error) {
	args := m.Called(ctx, prompt, tools)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ToolRound), args.Error(1)
}

// MockArtifactRepository is a testify mock for repository.ArtifactRepository.
type MockArtifactRepository struct {
	mock.Mock
}

func (m *MockArtifactRepository) SaveFlashcardSet(ctx context.Context, set *models.FlashcardSet) (int64, error) {
	args := m.Called(ctx, set)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtifactRepository) GetFlashcardSetsByUser(ctx context.Context, userID string) ([]models.FlashcardSet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FlashcardSet), args.Error(1)
}

func (m *MockArtifactRepository) SaveWorkflow(ctx context.Context, workflow *models.Workflow) (int64, error) {
	args := m.Called(ctx, workflow)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtifactRepository) GetWorkflowsByUser(ctx context.Context, userID string) ([]models.Workflow, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Workflow), args.Error(1)
}

func (m *MockArtifactRepository) SavePresentation(ctx context.Context, presentation *models.Presentation) (int64, error) {
	args := m.Called(ctx, presentation)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockArtifactRepository) GetPresentationsByUser(ctx context.Context, userID string) ([]models.Presentation, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Presentation), args.Error(1)
}

// MockUserRepository is a testify mock for repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	args := m.Called(ctx, email, passwordHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ repository.ArtifactRepository = (*MockArtifactRepository)(nil)
var _ repository.UserRepository = (*MockUserRepository)(nil)

// memoryContextStore is an in-process domain.ContextStore for agent tests.
type memoryContextStore struct {
	mu       sync.Mutex
	contexts map[string]*domain.ConversationContext
}

func newMemoryContextStore() *memoryContextStore {
	return &memoryContextStore{contexts: make(map[string]*domain.ConversationContext)}
}

func (s *memoryContextStore) Get(_ context.Context, sessionID string) (*domain.ConversationContext, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if conversation, ok := s.contexts[sessionID]; ok {
		return conversation, nil
	}
	return domain.NewConversationContext(sessionID), nil
}

func (s *memoryContextStore) Save(_ context.Context, conversation *domain.ConversationContext) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.contexts[conversation.SessionID] = conversation
	return nil
}

func (s *memoryContextStore) Clear(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.contexts, sessionID)
	return nil
}
