// Package gemini implements the outbound LLM boundary against Google's
// Gemini API through langchaingo, with automatic failover across an ordered
// pool of API keys when a key runs out of quota.
package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"studyforge/internal/config"
	"studyforge/internal/domain"
	"studyforge/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"go.uber.org/zap"
)

// Client fans one completion request out over a credential pool. Each call
// tries the credentials in ascending order starting from a soft hint, each
// at most once, never wrapping. The hint is advanced to the last key that
// succeeded; races on it are harmless and only affect which key goes first.
type Client struct {
	models      []llms.Model
	modelName   string
	temperature float64
	current     atomic.Int64
}

// New builds one langchaingo Gemini model per API key. The pool order
// follows the key order in the configuration.
func New(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if len(cfg.APIKeys) == 0 {
		return nil, fmt.Errorf("gemini: credential pool is empty")
	}
	models := make([]llms.Model, 0, len(cfg.APIKeys))
	for i, key := range cfg.APIKeys {
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(key),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("gemini: failed to create client for key #%d: %w", i+1, err)
		}
		models = append(models, model)
	}
	return NewWithModels(models, cfg.Model, cfg.Temperature), nil
}

// NewWithModels wires a client over pre-built models. Tests inject fakes
// through this constructor.
func NewWithModels(models []llms.Model, modelName string, temperature float64) *Client {
	return &Client{
		models:      models,
		modelName:   modelName,
		temperature: temperature,
	}
}

var _ domain.CompletionService = (*Client)(nil)

// Complete implements domain.CompletionService.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	var result string
	err := c.withFailover(ctx, len(prompt), func(attemptCtx context.Context, model llms.Model) error {
		resp, err := model.GenerateContent(attemptCtx,
			[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
			llms.WithTemperature(c.temperature),
		)
		if err != nil {
			return err
		}
		text, err := textFromResponse(resp)
		if err != nil {
			return err
		}
		result = text
		return nil
	})
	return result, err
}

// CompleteWithTools implements domain.CompletionService.
func (c *Client) CompleteWithTools(ctx context.Context, prompt string, tools []domain.ToolSchema) (*domain.ToolRound, error) {
	llmTools := make([]llms.Tool, 0, len(tools))
	for _, tool := range tools {
		llmTools = append(llmTools, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  tool.Parameters,
			},
		})
	}

	var round *domain.ToolRound
	err := c.withFailover(ctx, len(prompt), func(attemptCtx context.Context, model llms.Model) error {
		resp, err := model.GenerateContent(attemptCtx,
			[]llms.MessageContent{llms.TextParts(llms.ChatMessageTypeHuman, prompt)},
			llms.WithTemperature(c.temperature),
			llms.WithTools(llmTools),
		)
		if err != nil {
			return err
		}
		if resp == nil || len(resp.Choices) == 0 {
			return domain.NewUnexpectedResponseError("provider returned no choices")
		}

		choice := resp.Choices[0]
		parsed := &domain.ToolRound{Text: choice.Content}
		for _, toolCall := range choice.ToolCalls {
			if toolCall.FunctionCall == nil || toolCall.FunctionCall.Name == "" {
				continue
			}
			parsed.Invocations = append(parsed.Invocations, domain.ToolInvocation{
				Name:      toolCall.FunctionCall.Name,
				Arguments: json.RawMessage(toolCall.FunctionCall.Arguments),
			})
		}
		round = parsed
		return nil
	})
	return round, err
}

// withFailover runs attempt against each credential once, in ascending
// order from the current hint. Rate-limit classified errors advance to the
// next credential; anything else is immediately terminal.
func (c *Client) withFailover(ctx context.Context, promptLen int, attempt func(context.Context, llms.Model) error) error {
	l := logger.Get()
	start := int(c.current.Load())
	if start < 0 || start >= len(c.models) {
		start = 0
	}

	for i := start; i < len(c.models); i++ {
		l.Info("Calling Gemini",
			zap.Int("key_ordinal", i+1),
			zap.Int("pool_size", len(c.models)),
			zap.Int("prompt_length", promptLen),
			zap.String("model", c.modelName))

		err := attempt(ctx, c.models[i])
		if err == nil {
			c.current.Store(int64(i))
			l.Info("Gemini call succeeded", zap.Int("key_ordinal", i+1))
			return nil
		}

		if isRateLimit(err) {
			l.Warn("Gemini API key rate limited, rotating",
				zap.Int("key_ordinal", i+1),
				zap.Error(err))
			continue
		}

		l.Error("Gemini call failed", zap.Int("key_ordinal", i+1), zap.Error(err))
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			return domainErr
		}
		return domain.NewLLMServiceError(err)
	}

	l.Error("All Gemini API keys exhausted", zap.Int("pool_size", len(c.models)))
	// Reset the hint so the next call retries the full pool; quotas recover.
	c.current.Store(0)
	return domain.NewRateLimitedError(len(c.models))
}

// textFromResponse pulls the text out of a provider response. Any shape
// without text is a typed error rather than a stringified response, so a
// malformed reply cannot silently corrupt downstream parsing.
func textFromResponse(resp *llms.ContentResponse) (string, error) {
	if resp == nil || len(resp.Choices) == 0 {
		return "", domain.NewUnexpectedResponseError("provider returned no choices")
	}
	content := resp.Choices[0].Content
	if strings.TrimSpace(content) == "" {
		return "", domain.NewUnexpectedResponseError("provider returned an empty text part")
	}
	return content, nil
}

// rateLimitMarkers are the substrings Gemini errors carry when a key's quota
// is gone. The provider SDK does not expose a typed error for this, so the
// classification is a deliberate substring match.
var rateLimitMarkers = []string{"429", "RESOURCE_EXHAUSTED"}

func isRateLimit(err error) bool {
	msg := err.Error()
	for _, marker := range rateLimitMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return strings.Contains(strings.ToLower(msg), "quota")
}
