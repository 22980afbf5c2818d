package domain

import (
	"context"
	"encoding/json"
)

// Message is one turn of an agent conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationContext is the per-session agent state: the message history,
// the last result per tool, and the current content slot feeding downstream
// generators. It is a plain value object; persistence and eviction belong to
// the ContextStore that holds it.
type ConversationContext struct {
	SessionID      string                     `json:"session_id"`
	Messages       []Message                  `json:"messages"`
	ToolResults    map[string]json.RawMessage `json:"tool_results,omitempty"`
	CurrentContent string                     `json:"current_content,omitempty"`
}

func NewConversationContext(sessionID string) *ConversationContext {
	return &ConversationContext{
		SessionID:   sessionID,
		ToolResults: make(map[string]json.RawMessage),
	}
}

// AddMessage appends a turn, trimming the oldest messages once maxMessages is
// exceeded. A zero maxMessages means unbounded.
func (c *ConversationContext) AddMessage(role, content string, maxMessages int) {
	c.Messages = append(c.Messages, Message{Role: role, Content: content})
	if maxMessages > 0 && len(c.Messages) > maxMessages {
		c.Messages = c.Messages[len(c.Messages)-maxMessages:]
	}
}

// History returns the most recent window of messages.
func (c *ConversationContext) History(window int) []Message {
	if window <= 0 || len(c.Messages) <= window {
		return c.Messages
	}
	return c.Messages[len(c.Messages)-window:]
}

// StoreToolResult records a tool's result. An explain result additionally
// refreshes the current content slot from its original_content field, falling
// back to the summary when the field is absent.
func (c *ConversationContext) StoreToolResult(toolName string, result json.RawMessage) {
	if c.ToolResults == nil {
		c.ToolResults = make(map[string]json.RawMessage)
	}
	c.ToolResults[toolName] = result

	if toolName != ToolExplainContent {
		return
	}
	var explained struct {
		OriginalContent string `json:"original_content"`
		Summary         string `json:"summary"`
	}
	if err := json.Unmarshal(result, &explained); err != nil {
		return
	}
	if explained.OriginalContent != "" {
		c.CurrentContent = explained.OriginalContent
	} else if explained.Summary != "" {
		c.CurrentContent = explained.Summary
	}
}

// ContentForTool returns the content downstream generators should use when a
// tool call arrives without its own content argument.
func (c *ConversationContext) ContentForTool() string {
	return c.CurrentContent
}

// ContextStore holds conversation contexts keyed by session id. Entries are
// bounded by the store's TTL rather than living for the process lifetime.
type ContextStore interface {
	// Get returns the context for the session, creating an empty one when
	// the session is new or expired.
	Get(ctx context.Context, sessionID string) (*ConversationContext, error)
	Save(ctx context.Context, conversation *ConversationContext) error
	Clear(ctx context.Context, sessionID string) error
}
