package validation

import (
	"net/url"
	"strings"

	"studyforge/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

func NewValidator() *Validator {
	return &Validator{}
}

// ValidateQuizParams validates quiz generation parameters.
func (v *Validator) ValidateQuizParams(numQuestions int, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if numQuestions < 5 || numQuestions > 20 {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, 5, 20))
	}
	if difficulty != "" && !isValidDifficulty(difficulty) {
		errors = append(errors, domain.NewInvalidEnumError("difficulty", difficulty,
			domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard))
	}
	return errors
}

// ValidateFlashcardParams validates flashcard generation parameters.
func (v *Validator) ValidateFlashcardParams(numCards, wordsPerCard int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if numCards < 5 || numCards > 30 {
		errors = append(errors, domain.NewOutOfRangeError("num_cards", numCards, 5, 30))
	}
	if wordsPerCard < 20 || wordsPerCard > 50 {
		errors = append(errors, domain.NewOutOfRangeError("words_per_card", wordsPerCard, 20, 50))
	}
	return errors
}

// ValidateOutlineParams validates presentation outline parameters.
func (v *Validator) ValidateOutlineParams(prompt string, numSlides int) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(prompt) == "" {
		errors = append(errors, domain.NewMissingFieldError("prompt"))
	}
	if numSlides < 3 || numSlides > 20 {
		errors = append(errors, domain.NewOutOfRangeError("num_slides", numSlides, 3, 20))
	}
	return errors
}

// ValidateContentSource validates that a usable source was supplied: a URL
// must parse, and at least one of text, url, or pdf must be present.
func (v *Validator) ValidateContentSource(text, rawURL string, hasPDF bool) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if text == "" && rawURL == "" && !hasPDF {
		errors = append(errors, domain.NewMissingFieldError("text, url, or pdf"))
		return errors
	}
	if rawURL != "" {
		parsed, err := url.Parse(rawURL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			errors = append(errors, domain.NewInvalidFormatError("url", rawURL))
		}
	}
	return errors
}

func isValidDifficulty(difficulty string) bool {
	switch difficulty {
	case domain.DifficultyEasy, domain.DifficultyMedium, domain.DifficultyHard:
		return true
	}
	return false
}
