package service

import (
	"context"
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/prompt"
	"studyforge/internal/repository"
	"studyforge/internal/repository/models"

	"go.uber.org/zap"
)

// Slide count bounds for outline generation.
const (
	MinSlides = 3
	MaxSlides = 20

	// DefaultPresentationTitle is used when the model omits the <TITLE> tag.
	DefaultPresentationTitle = "Untitled Presentation"
)

var titleTag = regexp.MustCompile(`(?s)<TITLE>(.*?)</TITLE>`)

// PresentationService generates outlines and slide decks, and persists decks.
type PresentationService interface {
	Outline(ctx context.Context, req *dto.OutlineRequest) (*dto.OutlineResponse, error)
	Generate(ctx context.Context, req *dto.PresentationRequest) (*dto.PresentationResponse, error)
	Save(ctx context.Context, userID string, req *dto.PresentationSaveRequest) (int64, error)
	History(ctx context.Context, userID string) ([]dto.PresentationSummary, error)
}

type presentationService struct {
	completion domain.CompletionService
	artifacts  repository.ArtifactRepository
	now        func() time.Time
}

func NewPresentationService(completion domain.CompletionService, artifacts repository.ArtifactRepository) PresentationService {
	return &presentationService{completion: completion, artifacts: artifacts, now: time.Now}
}

func (s *presentationService) Outline(ctx context.Context, req *dto.OutlineRequest) (*dto.OutlineResponse, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewInvalidInputError("prompt is required")
	}
	numSlides := req.NumSlides
	if numSlides == 0 {
		numSlides = 5
	}
	if numSlides < MinSlides || numSlides > MaxSlides {
		return nil, domain.NewInvalidInputError("num_slides must be between 3 and 20")
	}
	language := req.Language
	if language == "" {
		language = "en-US"
	}

	response, err := s.completion.Complete(ctx,
		prompt.Outline(req.Prompt, numSlides, language, s.now()))
	if err != nil {
		return nil, err
	}

	title, topics := parseOutline(response)
	if len(topics) == 0 {
		return nil, domain.NewUnexpectedResponseError("Model returned no outline topics")
	}

	return &dto.OutlineResponse{Title: title, Outline: topics, Success: true}, nil
}

// parseOutline pulls the <TITLE> tag and splits the markdown body into topic
// blocks, one per "#" heading with its bullets attached.
func parseOutline(response string) (string, []string) {
	title := DefaultPresentationTitle
	if m := titleTag.FindStringSubmatch(response); m != nil {
		if extracted := strings.TrimSpace(m[1]); extracted != "" {
			title = extracted
		}
	} else {
		logger.Get().Warn("outline response missing title tag, using default")
	}

	body := titleTag.ReplaceAllString(response, "")

	var topics []string
	var current strings.Builder
	flush := func() {
		if topic := strings.TrimSpace(current.String()); topic != "" {
			topics = append(topics, topic)
		}
		current.Reset()
	}

	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, "#") {
			flush()
		}
		current.WriteString(trimmed)
		current.WriteString("\n")
	}
	flush()

	return title, topics
}

func (s *presentationService) Generate(ctx context.Context, req *dto.PresentationRequest) (*dto.PresentationResponse, error) {
	if req.Title == "" || len(req.Outline) == 0 {
		return nil, domain.NewInvalidInputError("title and outline are required")
	}
	tone := req.Tone
	if tone == "" {
		tone = "professional"
	}
	language := req.Language
	if language == "" {
		language = "en-US"
	}
	theme := req.Theme
	if theme == "" {
		theme = "default"
	}

	response, err := s.completion.Complete(ctx,
		prompt.Presentation(req.Title, req.Prompt, req.Outline, language, tone, s.now()))
	if err != nil {
		return nil, err
	}

	var slides []domain.Slide
	if err := airesponse.ParseInto(airesponse.Sanitize(response), &slides); err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, domain.NewUnexpectedResponseError("Model returned no slides")
	}

	logger.Get().Info("presentation generated",
		zap.String("title", req.Title),
		zap.Int("num_slides", len(slides)))

	return &dto.PresentationResponse{
		Title:   req.Title,
		Slides:  slides,
		Theme:   theme,
		Success: true,
	}, nil
}

func (s *presentationService) Save(ctx context.Context, userID string, req *dto.PresentationSaveRequest) (int64, error) {
	if req.Title == "" || len(req.Slides) == 0 {
		return 0, domain.NewInvalidInputError("title and slides are required")
	}

	data, err := json.Marshal(req.Slides)
	if err != nil {
		return 0, domain.NewInternalError("Failed to encode slides", err)
	}

	theme := req.Theme
	if theme == "" {
		theme = "default"
	}

	return s.artifacts.SavePresentation(ctx, &models.Presentation{
		UserID:    userID,
		Title:     req.Title,
		Slides:    string(data),
		Theme:     theme,
		NumSlides: len(req.Slides),
	})
}

func (s *presentationService) History(ctx context.Context, userID string) ([]dto.PresentationSummary, error) {
	presentations, err := s.artifacts.GetPresentationsByUser(ctx, userID)
	if err != nil {
		return nil, domain.NewInternalError("Failed to load presentation history", err)
	}

	summaries := make([]dto.PresentationSummary, 0, len(presentations))
	for _, p := range presentations {
		summaries = append(summaries, dto.PresentationSummary{
			PresentationID: p.ID,
			Title:          p.Title,
			NumSlides:      p.NumSlides,
			CreatedAt:      p.CreatedAt.Format(time.RFC3339),
		})
	}
	return summaries, nil
}
