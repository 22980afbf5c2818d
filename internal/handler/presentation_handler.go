package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"
	"studyforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// PresentationHandler handles outline and slide deck endpoints.
type PresentationHandler struct {
	service   service.PresentationService
	validator *validation.Validator
}

func NewPresentationHandler(service service.PresentationService) *PresentationHandler {
	return &PresentationHandler{service: service, validator: validation.NewValidator()}
}

// Outline handles POST /api/presentation/outline
func (h *PresentationHandler) Outline(c *fiber.Ctx) error {
	var req dto.OutlineRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}
	if req.NumSlides == 0 {
		req.NumSlides = 5
	}
	if errs := h.validator.ValidateOutlineParams(req.Prompt, req.NumSlides); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Outline(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Generate handles POST /api/presentation/generate
func (h *PresentationHandler) Generate(c *fiber.Ctx) error {
	var req dto.PresentationRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	resp, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Save handles POST /api/presentation/save
func (h *PresentationHandler) Save(c *fiber.Ctx) error {
	var req dto.PresentationSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	presentationID, err := h.service.Save(c.Context(), userID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.PresentationSaveResponse{
		PresentationID: presentationID,
		Message:        "Presentation saved",
	})
}

// History handles GET /api/presentation/history
func (h *PresentationHandler) History(c *fiber.Ctx) error {
	presentations, err := h.service.History(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.PresentationHistoryResponse{Presentations: presentations})
}
