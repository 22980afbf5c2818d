package handler

import (
	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/service"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles signup and login requests.
type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

// SignUp handles POST /api/signup
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var req dto.SignUpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	user, err := h.service.SignUp(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// Login handles POST /api/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	token, err := h.service.Login(c.Context(), &req)
	if err != nil {
		return err
	}
	return c.JSON(token)
}
