// Package airesponse recovers structured data from free-text model output.
// The model's output channel is plain text: JSON arrives wrapped in markdown
// fences, prefixed with prose, or littered with raw control characters, so
// parsing is a pipeline of progressively more aggressive recovery passes.
package airesponse

import "strings"

// Sanitize strips markdown code fences and surrounding whitespace from a raw
// model response. It only removes wrapping and never rewrites the content
// between the fences. Idempotent: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	cleaned := strings.TrimSpace(raw)

	if strings.HasPrefix(cleaned, "```json") {
		cleaned = cleaned[len("```json"):]
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = cleaned[len("```"):]
	}

	if strings.HasSuffix(cleaned, "```") {
		cleaned = cleaned[:len(cleaned)-len("```")]
	}

	return strings.TrimSpace(cleaned)
}
