package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"
	CodeUnauthorized ErrorCode = "UNAUTHORIZED"

	// Request validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Generation pipeline errors
	CodeRateLimited        ErrorCode = "RATE_LIMITED"
	CodeLLMServiceError    ErrorCode = "LLM_SERVICE_ERROR"
	CodeMalformedResponse  ErrorCode = "MALFORMED_RESPONSE"
	CodeUnexpectedResponse ErrorCode = "UNEXPECTED_RESPONSE_SHAPE"
	CodeExtractionFailed   ErrorCode = "EXTRACTION_FAILED"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// responsePreviewLen bounds how much of an unparsable model response is
// carried inside an error, so logs and API responses stay small.
const responsePreviewLen = 200

// Helper functions for common errors

func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewUnauthorizedError(message string) *DomainError {
	return NewError(CodeUnauthorized, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

// NewRateLimitedError reports that every credential in the pool hit its quota.
func NewRateLimitedError(poolSize int) *DomainError {
	return NewError(CodeRateLimited,
		fmt.Sprintf("All %d API keys have reached their quota. Please try again later or add more keys.", poolSize), nil)
}

func NewLLMServiceError(cause error) *DomainError {
	return NewError(CodeLLMServiceError, "AI generation failed", cause)
}

// NewMalformedResponseError carries a bounded preview of the text that could
// not be parsed, never the full response.
func NewMalformedResponseError(response string, cause error) *DomainError {
	preview := response
	if len(preview) > responsePreviewLen {
		preview = preview[:responsePreviewLen]
	}
	err := NewError(CodeMalformedResponse, "Failed to parse AI response", cause)
	err.Context = map[string]interface{}{"response_preview": preview}
	return err
}

func NewUnexpectedResponseError(message string) *DomainError {
	return NewError(CodeUnexpectedResponse, message, nil)
}

func NewExtractionError(source string, cause error) *DomainError {
	return NewError(CodeExtractionFailed, fmt.Sprintf("Failed to extract content from %s", source), cause)
}
