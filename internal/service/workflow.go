package service

import (
	"context"
	"time"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/prompt"
	"studyforge/internal/repository"
	"studyforge/internal/repository/models"
)

// WorkflowService generates and persists Mermaid workflow diagrams.
type WorkflowService interface {
	Generate(ctx context.Context, req *dto.WorkflowGenerateRequest) (*domain.WorkflowDiagram, error)
	Save(ctx context.Context, userID string, req *dto.WorkflowSaveRequest) (int64, error)
	History(ctx context.Context, userID string) ([]dto.WorkflowSummary, error)
}

type workflowService struct {
	completion domain.CompletionService
	resolver   ContentResolver
	artifacts  repository.ArtifactRepository
}

func NewWorkflowService(completion domain.CompletionService, resolver ContentResolver, artifacts repository.ArtifactRepository) WorkflowService {
	return &workflowService{completion: completion, resolver: resolver, artifacts: artifacts}
}

func (s *workflowService) Generate(ctx context.Context, req *dto.WorkflowGenerateRequest) (*domain.WorkflowDiagram, error) {
	resolved, err := s.resolver.Resolve(ctx, &req.ContentRequest)
	if err != nil {
		return nil, err
	}

	response, err := s.completion.Complete(ctx, prompt.Workflow(resolved.Text))
	if err != nil {
		return nil, err
	}

	mermaidCode := airesponse.ExtractMermaid(response)
	if mermaidCode == "" {
		return nil, domain.NewUnexpectedResponseError("Model response contained no Mermaid diagram")
	}

	return &domain.WorkflowDiagram{
		MermaidCode:     mermaidCode,
		OriginalContent: resolved.Text,
		ContentSource:   string(resolved.SourceType),
	}, nil
}

func (s *workflowService) Save(ctx context.Context, userID string, req *dto.WorkflowSaveRequest) (int64, error) {
	if req.MermaidCode == "" {
		return 0, domain.NewInvalidInputError("mermaid_code is required")
	}

	return s.artifacts.SaveWorkflow(ctx, &models.Workflow{
		UserID:          userID,
		MermaidCode:     req.MermaidCode,
		OriginalContent: req.OriginalContent,
		ContentSource:   req.ContentSource,
	})
}

func (s *workflowService) History(ctx context.Context, userID string) ([]dto.WorkflowSummary, error) {
	workflows, err := s.artifacts.GetWorkflowsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load workflow history", err)
	}

	summaries := make([]dto.WorkflowSummary, 0, len(workflows))
	for _, workflow := range workflows {
		summaries = append(summaries, dto.WorkflowSummary{
			WorkflowID:    workflow.ID,
			ContentSource: workflow.ContentSource,
			CreatedAt:     workflow.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}
