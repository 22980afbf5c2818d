package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"
	"studyforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ExplainHandler handles explanation generation and follow-up chat.
type ExplainHandler struct {
	service   service.ExplainService
	validator *validation.Validator
}

func NewExplainHandler(service service.ExplainService) *ExplainHandler {
	return &ExplainHandler{service: service, validator: validation.NewValidator()}
}

// Generate handles POST /api/explainer/generate
func (h *ExplainHandler) Generate(c *fiber.Ctx) error {
	req := dto.ExplainRequest{
		ContentRequest: dto.ContentRequest{
			Text: c.FormValue("text"),
			URL:  c.FormValue("url"),
		},
		Complexity: c.FormValue("complexity"),
	}
	if err := readPDFUpload(c, &req.ContentRequest); err != nil {
		return err
	}
	if !req.HasSource() {
		// Fall back to a JSON body when no form fields were sent.
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	if errs := h.validator.ValidateContentSource(req.Text, req.URL, len(req.PDFData) > 0); len(errs) > 0 {
		return errs
	}

	explanation, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.ExplainResponse{Explanation: explanation})
}

// Chat handles POST /api/explainer/chat
func (h *ExplainHandler) Chat(c *fiber.Ctx) error {
	var req dto.ExplainerChatRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	reply, err := h.service.Chat(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.ExplainerChatResponse{
		Answer:          reply.Answer,
		RelevantSection: reply.RelevantSection,
	})
}
