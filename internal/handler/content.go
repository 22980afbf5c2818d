package handler

import (
	"io"
	"strconv"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/middleware"

	"github.com/gofiber/fiber/v2"
)

// readPDFUpload fills the PDF fields from a multipart "pdf" file when the
// request carries one. JSON requests pass through untouched.
func readPDFUpload(c *fiber.Ctx, req *dto.ContentRequest) error {
	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		// No file attached.
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

// formInt reads an integer form value, returning def when absent or invalid.
func formInt(c *fiber.Ctx, key string, def int) int {
	raw := c.FormValue(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

// userID returns the authenticated user id set by the auth middleware.
func userID(c *fiber.Ctx) string {
	if id, ok := c.Locals(middleware.UserIDKey).(string); ok {
		return id
	}
	return ""
}
