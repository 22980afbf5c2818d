package airesponse

import (
	"encoding/json"
	"errors"
	"testing"

	"studyforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntoStrict(t *testing.T) {
	var v map[string]interface{}
	err := ParseInto(`{"a": 1, "b": "two"}`, &v)
	require.NoError(t, err)
	assert.Equal(t, float64(1), v["a"])
	assert.Equal(t, "two", v["b"])
}

func TestParseFencedResponse(t *testing.T) {
	raw := "```json\n{\"a\": 1}\n```"
	v, err := Parse(Sanitize(raw))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"a": float64(1)}, v)
}

func TestParseRoundTrip(t *testing.T) {
	original := map[string]interface{}{
		"title": "Photosynthesis",
		"count": float64(3),
		"tags":  []interface{}{"biology", "plants"},
		"inner": map[string]interface{}{"ok": true},
	}
	serialized, err := json.Marshal(original)
	require.NoError(t, err)

	v, err := Parse(Sanitize(string(serialized)))
	require.NoError(t, err)
	assert.Equal(t, original, v)
}

func TestParseIntoEscapeRepair(t *testing.T) {
	// A bare newline inside a string value is invalid JSON; the repair pass
	// turns it into a space.
	damaged := "{\"title\": \"abc\ndef\", \"summary\": \"ok\"}"
	var v map[string]string
	err := ParseInto(damaged, &v)
	require.NoError(t, err)
	assert.Equal(t, "abc def", v["title"])
	assert.Equal(t, "ok", v["summary"])
}

func TestParseIntoControlCharacters(t *testing.T) {
	damaged := "{\"a\": \"x\x01y\"}"
	var v map[string]string
	err := ParseInto(damaged, &v)
	require.NoError(t, err)
	assert.Equal(t, "x y", v["a"])
}

func TestParseIntoMultilineValue(t *testing.T) {
	damaged := "{\"a\": \"line one\nline two\"}"
	var v map[string]string
	err := ParseInto(damaged, &v)
	require.NoError(t, err)
	assert.Equal(t, "line one line two", v["a"])
}

func TestParseIntoMalformed(t *testing.T) {
	var v map[string]interface{}
	err := ParseInto("this is not json at all", &v)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeMalformedResponse, domainErr.Code)
	assert.Contains(t, domainErr.Context["response_preview"], "this is not json")
}

func TestParseIntoMalformedPreviewBounded(t *testing.T) {
	long := "garbage "
	for len(long) < 5000 {
		long += long
	}
	var v map[string]interface{}
	err := ParseInto(long, &v)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	preview, ok := domainErr.Context["response_preview"].(string)
	require.True(t, ok)
	assert.LessOrEqual(t, len(preview), 200)
}

func TestExtractObject(t *testing.T) {
	span, ok := ExtractObject(`Sure! Here's the data: {"answer": "x"}`)
	require.True(t, ok)
	assert.Equal(t, `{"answer": "x"}`, span)

	_, ok = ExtractObject("no braces here")
	assert.False(t, ok)

	_, ok = ExtractObject("} reversed {")
	assert.False(t, ok)
}

func TestParseObjectInto(t *testing.T) {
	var v map[string]string
	err := ParseObjectInto(`Sure! Here's the data: {"answer": "x"}`, &v)
	require.NoError(t, err)
	assert.Equal(t, "x", v["answer"])
}
