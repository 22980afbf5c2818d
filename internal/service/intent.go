package service

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"studyforge/internal/airesponse"
	"studyforge/internal/domain"
)

var (
	urlPattern    = regexp.MustCompile(`https?://\S+|www\.\S+`)
	numberPattern = regexp.MustCompile(`\d+`)
)

// Keyword sets for the last-resort intent parser. Matching is substring-based
// on the lowercased message, in priority order: explain, quiz, flashcards,
// workflow.
var (
	explainKeywords   = []string{"explain", "summarize", "understand", "what is", "tell me about", "describe", "teach me", "help me understand"}
	quizKeywords      = []string{"quiz", "questions", "test", "assessment", "exam"}
	flashcardKeywords = []string{"flashcard", "study card", "revision card"}
	workflowKeywords  = []string{"workflow", "diagram", "flowchart", "process"}
)

// jsonIntent is the shape the function-calling fallback prompt asks for.
type jsonIntent struct {
	FunctionCalls []struct {
		Name string          `json:"name"`
		Args json.RawMessage `json:"args"`
	} `json:"function_calls"`
}

// parseJSONToolIntent recovers a tool choice the model expressed as JSON text
// instead of a native function call.
func parseJSONToolIntent(text string) (toolCall, bool) {
	span, ok := airesponse.ExtractObject(airesponse.Sanitize(text))
	if !ok {
		return toolCall{}, false
	}

	var intent jsonIntent
	if err := airesponse.ParseInto(span, &intent); err != nil {
		return toolCall{}, false
	}
	if len(intent.FunctionCalls) == 0 || intent.FunctionCalls[0].Name == "" {
		return toolCall{}, false
	}
	return toolCall{
		Name: intent.FunctionCalls[0].Name,
		Args: intent.FunctionCalls[0].Args,
	}, true
}

// parseKeywordIntent maps the raw user message to a tool when the model
// produced neither function calls nor a JSON intent.
func parseKeywordIntent(userMessage string) (toolCall, bool) {
	lower := strings.ToLower(userMessage)

	if containsAny(lower, explainKeywords) {
		if url := urlPattern.FindString(userMessage); url != "" {
			return marshalCall(domain.ToolExplainContent, explainArgs{URL: url})
		}
		return marshalCall(domain.ToolExplainContent, explainArgs{
			Text:       userMessage,
			Complexity: domain.DifficultyMedium,
		})
	}

	if containsAny(lower, quizKeywords) {
		difficulty := domain.DifficultyMedium
		if strings.Contains(lower, "easy") || strings.Contains(lower, "simple") {
			difficulty = domain.DifficultyEasy
		} else if strings.Contains(lower, "hard") || strings.Contains(lower, "difficult") {
			difficulty = domain.DifficultyHard
		}
		return marshalCall(domain.ToolGenerateQuiz, quizArgs{
			NumQuestions: extractNumber(userMessage, 10),
			Difficulty:   difficulty,
		})
	}

	if containsAny(lower, flashcardKeywords) {
		return marshalCall(domain.ToolGenerateFlashcards, flashcardArgs{
			NumCards:     extractNumber(userMessage, 10),
			WordsPerCard: DefaultCardWords,
		})
	}

	if containsAny(lower, workflowKeywords) {
		return marshalCall(domain.ToolGenerateWorkflow, workflowArgs{})
	}

	return toolCall{}, false
}

func marshalCall(name string, args interface{}) (toolCall, bool) {
	data, err := json.Marshal(args)
	if err != nil {
		return toolCall{}, false
	}
	return toolCall{Name: name, Args: data}, true
}

func containsAny(text string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(text, keyword) {
			return true
		}
	}
	return false
}

// extractNumber returns the first integer in text clamped to [5, 30], or the
// default when no integer appears.
func extractNumber(text string, def int) int {
	match := numberPattern.FindString(text)
	if match == "" {
		return def
	}
	n, err := strconv.Atoi(match)
	if err != nil {
		return def
	}
	return clamp(n, 5, 30)
}
