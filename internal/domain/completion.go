package domain

import (
	"context"
	"encoding/json"
)

// CompletionService is the single outbound boundary to the hosted LLM
// provider. Implementations own credential failover; callers see one text
// result or a terminal DomainError (CodeRateLimited once the whole pool is
// exhausted, CodeLLMServiceError for anything else).
type CompletionService interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithTools runs one function-calling round. The provider may
	// answer with explicit tool invocations, plain text, or both; an empty
	// Invocations slice is not an error.
	CompleteWithTools(ctx context.Context, prompt string, tools []ToolSchema) (*ToolRound, error)
}

// ToolSchema declares one callable tool to the model: name, description and
// a JSON-schema parameter object.
type ToolSchema struct {
	Name        string
	Description string
	Parameters  map[string]interface{}
}

// ToolInvocation is a model-issued function call. Arguments stays raw so the
// dispatcher can decode it into the tool's own typed argument struct.
type ToolInvocation struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"args"`
}

// ToolRound is the outcome of one function-calling completion.
type ToolRound struct {
	Text        string
	Invocations []ToolInvocation
}
