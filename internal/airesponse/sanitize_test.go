package airesponse

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain json untouched", `{"a": 1}`, `{"a": 1}`},
		{"surrounding whitespace trimmed", "  \n {\"a\": 1} \n ", `{"a": 1}`},
		{"json fence stripped", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"bare fence stripped", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"opening fence only", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"closing fence only", "{\"a\": 1}\n```", `{"a": 1}`},
		{"empty input", "", ""},
		{"fences only", "```json\n```", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Sanitize(tt.input))
		})
	}
}

func TestSanitizeIdempotent(t *testing.T) {
	inputs := []string{
		"```json\n{\"a\": 1}\n```",
		"```\ngraph TD\n```",
		"  plain text  ",
		"",
		"{\"nested\": \"```json\"}",
	}
	for _, input := range inputs {
		once := Sanitize(input)
		assert.Equal(t, once, Sanitize(once), "input: %q", input)
	}
}
