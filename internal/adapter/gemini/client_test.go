package gemini

import (
	"context"
	"errors"
	"testing"

	"studyforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

// fakeModel is an llms.Model whose behavior is fixed per instance.
type fakeModel struct {
	response *llms.ContentResponse
	err      error
	calls    int
}

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.response, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	resp, err := f.GenerateContent(ctx, nil)
	if err != nil {
		return "", err
	}
	return resp.Choices[0].Content, nil
}

func textResponse(text string) *llms.ContentResponse {
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: text}},
	}
}

func newFakeClient(fakes ...*fakeModel) *Client {
	models := make([]llms.Model, len(fakes))
	for i, f := range fakes {
		models[i] = f
	}
	return NewWithModels(models, "gemini-test", 0.2)
}

var errRateLimited = errors.New("googleapi: Error 429: RESOURCE_EXHAUSTED: quota exceeded")

func TestCompleteSuccessFirstKey(t *testing.T) {
	first := &fakeModel{response: textResponse("hello")}
	second := &fakeModel{response: textResponse("unused")}
	client := newFakeClient(first, second)

	result, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "hello", result)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestCompleteRotatesOnRateLimit(t *testing.T) {
	first := &fakeModel{err: errRateLimited}
	second := &fakeModel{err: errRateLimited}
	third := &fakeModel{response: textResponse("from third")}
	client := newFakeClient(first, second, third)

	result, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, "from third", result)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 1, second.calls)
	assert.Equal(t, 1, third.calls)
}

func TestCompleteExhaustsPool(t *testing.T) {
	fakes := []*fakeModel{
		{err: errRateLimited},
		{err: errRateLimited},
		{err: errRateLimited},
	}
	client := newFakeClient(fakes...)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeRateLimited, domainErr.Code)

	// Every credential tried exactly once, in order, never twice.
	for i, f := range fakes {
		assert.Equal(t, 1, f.calls, "key #%d", i+1)
	}
}

func TestCompleteFatalErrorIsTerminal(t *testing.T) {
	first := &fakeModel{err: errors.New("googleapi: Error 400: invalid request")}
	second := &fakeModel{response: textResponse("never reached")}
	client := newFakeClient(first, second)

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeLLMServiceError, domainErr.Code)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 0, second.calls)
}

func TestCompleteStartsFromHint(t *testing.T) {
	first := &fakeModel{err: errRateLimited}
	second := &fakeModel{response: textResponse("ok")}
	client := newFakeClient(first, second)

	// First call rotates past key 1 and lands on key 2.
	_, err := client.Complete(context.Background(), "prompt")
	require.NoError(t, err)

	// The next call starts from the remembered key, skipping the bad one.
	_, err = client.Complete(context.Background(), "prompt")
	require.NoError(t, err)
	assert.Equal(t, 1, first.calls)
	assert.Equal(t, 2, second.calls)
}

func TestCompleteEmptyResponseShape(t *testing.T) {
	client := newFakeClient(&fakeModel{response: &llms.ContentResponse{}})

	_, err := client.Complete(context.Background(), "prompt")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeUnexpectedResponse, domainErr.Code)
}

func TestCompleteEmptyPromptAllowed(t *testing.T) {
	model := &fakeModel{response: textResponse("still answers")}
	client := newFakeClient(model)

	result, err := client.Complete(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "still answers", result)
}

func TestCompleteWithToolsParsesInvocations(t *testing.T) {
	model := &fakeModel{response: &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{
			Content: "calling a tool",
			ToolCalls: []llms.ToolCall{{
				FunctionCall: &llms.FunctionCall{
					Name:      domain.ToolGenerateQuiz,
					Arguments: `{"num_questions": 5}`,
				},
			}},
		}},
	}}
	client := newFakeClient(model)

	round, err := client.CompleteWithTools(context.Background(), "prompt", domain.AgentToolSchemas())
	require.NoError(t, err)
	require.Len(t, round.Invocations, 1)
	assert.Equal(t, domain.ToolGenerateQuiz, round.Invocations[0].Name)
	assert.JSONEq(t, `{"num_questions": 5}`, string(round.Invocations[0].Arguments))
	assert.Equal(t, "calling a tool", round.Text)
}

func TestCompleteWithToolsNoInvocations(t *testing.T) {
	model := &fakeModel{response: textResponse("just words")}
	client := newFakeClient(model)

	round, err := client.CompleteWithTools(context.Background(), "prompt", domain.AgentToolSchemas())
	require.NoError(t, err)
	assert.Empty(t, round.Invocations)
	assert.Equal(t, "just words", round.Text)
}

func TestIsRateLimit(t *testing.T) {
	assert.True(t, isRateLimit(errors.New("Error 429: too many requests")))
	assert.True(t, isRateLimit(errors.New("RESOURCE_EXHAUSTED")))
	assert.True(t, isRateLimit(errors.New("Quota exceeded for metric")))
	assert.False(t, isRateLimit(errors.New("connection refused")))
	assert.False(t, isRateLimit(errors.New("Error 400: bad request")))
}
