package handler

import (
	"io"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AgentHandler handles the conversational agent endpoints.
type AgentHandler struct {
	service service.AgentService
}

func NewAgentHandler(service service.AgentService) *AgentHandler {
	return &AgentHandler{service: service}
}

// Message handles POST /api/agent/message
func (h *AgentHandler) Message(c *fiber.Ctx) error {
	req := dto.AgentMessageRequest{
		Message:   c.FormValue("message"),
		SessionID: c.FormValue("session_id"),
	}
	if err := h.readPDF(c, &req); err != nil {
		return err
	}
	if req.Message == "" && len(req.PDFData) == 0 {
		if err := c.BodyParser(&req); err != nil {
			return domain.NewInvalidInputError("Invalid request body")
		}
	}
	if req.SessionID == "" {
		// New conversations get their own session so parallel clients never
		// share context.
		req.SessionID = uuid.NewString()
	}

	resp, err := h.service.Process(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Clear handles DELETE /api/agent/context/:session_id
func (h *AgentHandler) Clear(c *fiber.Ctx) error {
	sessionID := c.Params("session_id")
	if err := h.service.Clear(c.Context(), sessionID); err != nil {
		return err
	}
	return c.JSON(dto.AgentClearResponse{SessionID: sessionID, Cleared: true})
}

func (h *AgentHandler) readPDF(c *fiber.Ctx, req *dto.AgentMessageRequest) error {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		return nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInvalidInputError("Failed to read uploaded PDF")
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInvalidInputError("Failed to read uploaded PDF")
	}

	req.PDFData = data
	req.PDFFilename = fileHeader.Filename
	return nil
}
