package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"
	"studyforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation, grading, and analysis.
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{service: service, validator: validation.NewValidator()}
}

// Generate handles POST /api/quiz/generate
func (h *QuizHandler) Generate(c *fiber.Ctx) error {
	req := dto.QuizGenerateRequest{
		ContentRequest: dto.ContentRequest{
			Text: c.FormValue("text"),
			URL:  c.FormValue("url"),
		},
		NumQuestions: formInt(c, "num_questions", 10),
		Difficulty:   c.FormValue("difficulty"),
	}
	if err := readPDFUpload(c, &req.ContentRequest); err != nil {
		return err
	}
	if !req.HasSource() {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	if errs := h.validator.ValidateContentSource(req.Text, req.URL, len(req.PDFData) > 0); len(errs) > 0 {
		return errs
	}
	if errs := h.validator.ValidateQuizParams(req.NumQuestions, req.Difficulty); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Submit handles POST /api/quiz/submit
func (h *QuizHandler) Submit(c *fiber.Ctx) error {
	var req dto.QuizSubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Submit(&req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Analyze handles POST /api/quiz/analysis
func (h *QuizHandler) Analyze(c *fiber.Ctx) error {
	var req dto.QuizAnalysisRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	analysis, err := h.service.Analyze(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.QuizAnalysisResponse{Analysis: *analysis})
}
