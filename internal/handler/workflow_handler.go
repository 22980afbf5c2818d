package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"
	"studyforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// WorkflowHandler handles Mermaid diagram generation and history.
type WorkflowHandler struct {
	service   service.WorkflowService
	validator *validation.Validator
}

func NewWorkflowHandler(service service.WorkflowService) *WorkflowHandler {
	return &WorkflowHandler{service: service, validator: validation.NewValidator()}
}

// Generate handles POST /api/workflow/generate
func (h *WorkflowHandler) Generate(c *fiber.Ctx) error {
	req := dto.WorkflowGenerateRequest{
		ContentRequest: dto.ContentRequest{
			Text: c.FormValue("text"),
			URL:  c.FormValue("url"),
		},
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

	diagram, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkflowGenerateResponse{
		MermaidCode:     diagram.MermaidCode,
		OriginalContent: diagram.OriginalContent,
		ContentSource:   diagram.ContentSource,
	})
}

// Save handles POST /api/workflow/save
func (h *WorkflowHandler) Save(c *fiber.Ctx) error {
	var req dto.WorkflowSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	workflowID, err := h.service.Save(c.Context(), userID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.WorkflowSaveResponse{
		WorkflowID: workflowID,
		Message:    "Workflow saved",
	})
}

// History handles GET /api/workflow/history
func (h *WorkflowHandler) History(c *fiber.Ctx) error {
	workflows, err := h.service.History(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.WorkflowHistoryResponse{Workflows: workflows})
}
