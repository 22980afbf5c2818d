package service

import (
	"context"
	"strings"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/prompt"

	"go.uber.org/zap"
)

// ExplainService generates structured explanations and answers follow-up
// questions about them.
type ExplainService interface {
	Generate(ctx context.Context, req *dto.ExplainRequest) (*domain.Explanation, error)
	Chat(ctx context.Context, req *dto.ExplainerChatRequest) (*domain.ChatReply, error)
}

type explainService struct {
	completion domain.CompletionService
	resolver   ContentResolver
}

func NewExplainService(completion domain.CompletionService, resolver ContentResolver) ExplainService {
	return &explainService{completion: completion, resolver: resolver}
}

func (s *explainService) Generate(ctx context.Context, req *dto.ExplainRequest) (*domain.Explanation, error) {
	resolved, err := s.resolver.Resolve(ctx, &req.ContentRequest)
	if err != nil {
		return nil, err
	}

	complexity := req.Complexity
	if complexity == "" {
		complexity = domain.DifficultyMedium
	}

	logger.Get().Info("generating explanation",
		zap.String("source_type", string(resolved.SourceType)),
		zap.Int("content_length", len(resolved.Text)),
		zap.String("complexity", complexity))

	response, err := s.completion.Complete(ctx, prompt.Explainer(resolved.Text, complexity))
	if err != nil {
		return nil, err
	}

	var explanation domain.Explanation
	if err := airesponse.ParseObjectInto(airesponse.Sanitize(response), &explanation); err != nil {
		return nil, err
	}

	explanation.OriginalContent = resolved.Text
	explanation.ContentSource = string(resolved.SourceType)
	return &explanation, nil
}

func (s *explainService) Chat(ctx context.Context, req *dto.ExplainerChatRequest) (*domain.ChatReply, error) {
	if strings.TrimSpace(req.Question) == "" {
		return nil, domain.NewInvalidInputError("Question is required")
	}
	if strings.TrimSpace(req.ExplainerContent) == "" {
		return nil, domain.NewInvalidInputError("Explainer content is required")
	}

	history := make([]string, 0, len(req.ChatHistory))
	for _, msg := range req.ChatHistory {
		history = append(history, strings.ToUpper(msg.Role)+": "+msg.Content)
	}

	response, err := s.completion.Complete(ctx,
		prompt.ExplainerChat(req.ExplainerContent, history, req.Question))
	if err != nil {
		return nil, err
	}

	var reply domain.ChatReply
	if err := airesponse.ParseObjectInto(airesponse.Sanitize(response), &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}
