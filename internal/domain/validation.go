package domain

import "fmt"

// ValidationError describes a single invalid request field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors aggregates field errors so a handler can report all of
// them in one response.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %d is out of range [%d, %d]", value, min, max)}
}

func NewInvalidEnumError(field, value string, allowed ...string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("value %q is not one of %v", value, allowed)}
}
