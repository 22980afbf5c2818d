package service

import (
	"context"
	"fmt"
	"strconv"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/prompt"
	"studyforge/internal/util"

	"go.uber.org/zap"
)

// Question count bounds for quiz generation.
const (
	MinQuizQuestions = 5
	MaxQuizQuestions = 20
)

// quizOptionCount is the fixed number of options per multiple-choice question.
const quizOptionCount = 4

// QuizService generates, grades, and analyzes multiple-choice quizzes.
type QuizService interface {
	Generate(ctx context.Context, req *dto.QuizGenerateRequest) (*dto.QuizGenerateResponse, error)
	Submit(req *dto.QuizSubmitRequest) (*dto.QuizSubmitResponse, error)
	Analyze(ctx context.Context, req *dto.QuizAnalysisRequest) (*domain.Analysis, error)
}

type quizService struct {
	completion domain.CompletionService
	resolver   ContentResolver
}

func NewQuizService(completion domain.CompletionService, resolver ContentResolver) QuizService {
	return &quizService{completion: completion, resolver: resolver}
}

func (s *quizService) Generate(ctx context.Context, req *dto.QuizGenerateRequest) (*dto.QuizGenerateResponse, error) {
	if req.NumQuestions < MinQuizQuestions || req.NumQuestions > MaxQuizQuestions {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("num_questions must be between %d and %d", MinQuizQuestions, MaxQuizQuestions))
	}
	difficulty, err := normalizeDifficulty(req.Difficulty)
	if err != nil {
		return nil, err
	}

	resolved, err := s.resolver.Resolve(ctx, &req.ContentRequest)
	if err != nil {
		return nil, err
	}

	logger.Get().Info("generating quiz",
		zap.Int("num_questions", req.NumQuestions),
		zap.String("difficulty", difficulty),
		zap.String("source_type", string(resolved.SourceType)))

	response, err := s.completion.Complete(ctx, prompt.Quiz(resolved.Text, req.NumQuestions, difficulty))
	if err != nil {
		return nil, err
	}

	var questions []domain.QuizQuestion
	if err := airesponse.ParseInto(airesponse.Sanitize(response), &questions); err != nil {
		return nil, err
	}
	if err := validateQuestions(questions); err != nil {
		return nil, err
	}

	return &dto.QuizGenerateResponse{
		Quiz:            questions,
		OriginalContent: resolved.Text,
		ContentSource:   string(resolved.SourceType),
	}, nil
}

// validateQuestions rejects a quiz whose answer key is unusable: no
// questions, a wrong option count, or a correct answer that is not one of
// the options. Structural violations are malformed responses; the model
// produced parseable JSON that still breaks the quiz contract.
func validateQuestions(questions []domain.QuizQuestion) error {
	if len(questions) == 0 {
		return domain.NewUnexpectedResponseError("Model returned no quiz questions")
	}
	for _, q := range questions {
		if q.Question == "" {
			return domain.NewError(domain.CodeMalformedResponse,
				fmt.Sprintf("Question %d is missing its text", q.ID), nil)
		}
		if len(q.Options) != quizOptionCount {
			return domain.NewError(domain.CodeMalformedResponse,
				fmt.Sprintf("Question %d has %d options, want %d", q.ID, len(q.Options), quizOptionCount), nil)
		}
		found := false
		for _, option := range q.Options {
			if option == q.CorrectAnswer {
				found = true
				break
			}
		}
		if !found {
			return domain.NewError(domain.CodeMalformedResponse,
				fmt.Sprintf("Question %d has a correct answer that is not among its options", q.ID), nil)
		}
	}
	return nil
}

// Submit grades answers locally; no model call is involved.
func (s *quizService) Submit(req *dto.QuizSubmitRequest) (*dto.QuizSubmitResponse, error) {
	if len(req.Questions) == 0 {
		return nil, domain.NewInvalidInputError("No questions to grade")
	}

	results := make([]dto.QuizAnswerResult, 0, len(req.Questions))
	correct := 0
	for _, q := range req.Questions {
		userAnswer := req.Answers[strconv.Itoa(q.ID)]
		isCorrect := userAnswer != "" && userAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		results = append(results, dto.QuizAnswerResult{
			QuestionID:    q.ID,
			Question:      q.Question,
			UserAnswer:    userAnswer,
			CorrectAnswer: q.CorrectAnswer,
			Correct:       isCorrect,
		})
	}

	percentage := float64(correct) / float64(len(req.Questions)) * 100
	return &dto.QuizSubmitResponse{
		Score: domain.QuizScore{
			Correct:    correct,
			Total:      len(req.Questions),
			Percentage: percentage,
			Grade:      util.Grade(percentage),
		},
		Results: results,
	}, nil
}

func (s *quizService) Analyze(ctx context.Context, req *dto.QuizAnalysisRequest) (*domain.Analysis, error) {
	if req.Content == "" {
		return nil, domain.NewInvalidInputError("Content is required for analysis")
	}

	response, err := s.completion.Complete(ctx,
		prompt.Analysis(req.Content, req.CorrectAnswers, req.WrongAnswers))
	if err != nil {
		return nil, err
	}

	var analysis domain.Analysis
	if err := airesponse.ParseObjectInto(airesponse.Sanitize(response), &analysis); err != nil {
		return nil, err
	}
	return &analysis, nil
}

func normalizeDifficulty(difficulty string) (string, error) {
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return difficulty, nil
	case "":
		return domain.DifficultyMedium, nil
	default:
		return "", domain.NewInvalidInputError("difficulty must be easy, medium, or hard")
	}
}
