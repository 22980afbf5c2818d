package airesponse

import (
	"encoding/json"
	"regexp"
	"strings"
	"studyforge/internal/domain"
	"studyforge/internal/logger"

	"go.uber.org/zap"
)

var (
	// A newline directly before a JSON key is almost always a formatting
	// artifact, not intended string content.
	newlineBeforeKey = regexp.MustCompile(`\n(\s*"[^"]*"\s*:)`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// ParseInto decodes a sanitized model response into v. It tries a strict
// parse first, then an escape-repair pass, then collapses all whitespace as
// a last resort. Each stage runs only if the previous one failed. When every
// stage fails the error carries a bounded preview of the offending text.
func ParseInto(sanitized string, v interface{}) error {
	strictErr := json.Unmarshal([]byte(sanitized), v)
	if strictErr == nil {
		return nil
	}

	repaired := repairEscapes(sanitized)
	if err := json.Unmarshal([]byte(repaired), v); err == nil {
		logger.Get().Debug("Parsed model response after escape repair")
		return nil
	}

	// Collapsing whitespace destroys intentional multi-line strings, so it
	// only runs when nothing else worked.
	collapsed := whitespaceRun.ReplaceAllString(sanitized, " ")
	if err := json.Unmarshal([]byte(collapsed), v); err == nil {
		logger.Get().Debug("Parsed model response after whitespace collapse")
		return nil
	}

	logger.Get().Error("All parse recovery stages failed",
		zap.Error(strictErr),
		zap.Int("response_length", len(sanitized)))
	return domain.NewMalformedResponseError(sanitized, strictErr)
}

// Parse is ParseInto for callers that want the generic decoded value.
func Parse(sanitized string) (interface{}, error) {
	var v interface{}
	if err := ParseInto(sanitized, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// ExtractObject locates the outermost brace span in text. It recovers a JSON
// object the model wrapped in explanatory prose ("Sure! Here's the data:
// {...}"). The second return is false when no object span exists.
func ExtractObject(text string) (string, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end <= start {
		return "", false
	}
	return text[start : end+1], true
}

// ParseObjectInto extracts the outermost brace span and runs it through the
// staged parser, falling back to the full text when no span exists.
func ParseObjectInto(text string, v interface{}) error {
	if span, ok := ExtractObject(text); ok {
		return ParseInto(span, v)
	}
	return ParseInto(text, v)
}

// repairEscapes fixes the control-character damage models commonly inflict
// on JSON: bare newlines before keys become spaces, tabs become spaces, and
// remaining C0/C1 control characters are blanked.
func repairEscapes(text string) string {
	repaired := newlineBeforeKey.ReplaceAllString(text, " $1")
	repaired = strings.ReplaceAll(repaired, "\t", " ")
	return strings.Map(func(r rune) rune {
		if r < 0x20 || (r >= 0x7f && r <= 0x9f) {
			return ' '
		}
		return r
	}, repaired)
}
