package dto

import "encoding/json"

// AgentMessageRequest is the body for POST /api/agent/message. The handler
// fills the PDF fields from the multipart upload when one is attached.
type AgentMessageRequest struct {
	Message     string `json:"message" form:"message"`
	SessionID   string `json:"session_id" form:"session_id"`
	PDFData     []byte `json:"-" form:"-"`
	PDFFilename string `json:"-" form:"-"`
}

// AgentToolResult reports one tool execution within an agent turn. Exactly one
// of Result or Error is set.
type AgentToolResult struct {
	Tool   string          `json:"tool"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

type AgentMessageResponse struct {
	Message     string            `json:"message"`
	ToolResults []AgentToolResult `json:"tool_results"`
	SessionID   string            `json:"session_id"`
}

type AgentClearResponse struct {
	SessionID string `json:"session_id"`
	Cleared   bool   `json:"cleared"`
}
