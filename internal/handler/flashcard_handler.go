package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"
	"studyforge/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// FlashcardHandler handles flashcard generation and saved-set access.
type FlashcardHandler struct {
	service   service.FlashcardService
	validator *validation.Validator
}

func NewFlashcardHandler(service service.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{service: service, validator: validation.NewValidator()}
}

// Generate handles POST /api/flashcards/generate
func (h *FlashcardHandler) Generate(c *fiber.Ctx) error {
	req := dto.FlashcardGenerateRequest{
		ContentRequest: dto.ContentRequest{
			Text: c.FormValue("text"),
			URL:  c.FormValue("url"),
		},
		NumCards:     formInt(c, "num_cards", 10),
		WordsPerCard: formInt(c, "words_per_card", 35),
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
	if errs := h.validator.ValidateFlashcardParams(req.NumCards, req.WordsPerCard); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.Generate(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Save handles POST /api/flashcards/save
func (h *FlashcardHandler) Save(c *fiber.Ctx) error {
	var req dto.FlashcardSaveRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	setID, err := h.service.Save(c.Context(), userID(c), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.FlashcardSaveResponse{
		SetID:   setID,
		Message: "Flashcard set saved",
	})
}

// Saved handles GET /api/flashcards/saved
func (h *FlashcardHandler) Saved(c *fiber.Ctx) error {
	sets, err := h.service.Saved(c.Context(), userID(c))
	if err != nil {
		return err
	}
	return c.JSON(dto.SavedFlashcardSetsResponse{Sets: sets})
}
