package prompt

import (
	"fmt"
	"strings"

	"studyforge/internal/domain"
)

// AgentSystem is the tutor agent's standing instruction set. It names the
// available tools and the explain-first ordering the orchestrator enforces.
func AgentSystem(hasCurrentContent bool) string {
	prompt := `You are an intelligent AI tutor agent that helps students learn by using various educational tools.

AVAILABLE TOOLS:
1. explain_content - Explain content from URL, PDF, or text
2. generate_quiz - Generate quiz questions from content
3. generate_flashcards - Generate flashcards from content
4. generate_workflow - Generate workflow diagrams from content

INSTRUCTIONS:
- When user provides content (URL/PDF/text), ALWAYS explain it first using explain_content
- After explaining, you can generate quizzes, flashcards, or workflows using the explained content
- Extract parameters from user queries (e.g., "10 questions" means num_questions=10)
- Use context from previous tool executions - if content was explained, use it for subsequent tools
- Be helpful, clear, and educational in your responses
- If user asks for multiple things, execute tools in logical order (explain first, then quiz/flashcards/workflow)`

	if hasCurrentContent {
		prompt += "\n\nCURRENT CONTEXT: Content is available from previous explanation."
	}
	return prompt
}

// AgentConversation renders the system prompt plus the message history the
// model sees on a tool-selection round.
func AgentConversation(systemPrompt string, history []domain.Message, userMessage string) string {
	var builder strings.Builder
	builder.WriteString(systemPrompt)
	builder.WriteString("\n\nConversation:\n")
	for _, msg := range history {
		builder.WriteString(msg.Role)
		builder.WriteString(": ")
		builder.WriteString(msg.Content)
		builder.WriteString("\n")
	}
	builder.WriteString("user: ")
	builder.WriteString(userMessage)
	builder.WriteString("\n")
	return builder.String()
}

// AgentFunctionCalling is the prompt-based fallback used when the provider
// rejects native tool declarations: it asks for the tool choice as JSON.
func AgentFunctionCalling(systemPrompt, userMessage string) string {
	return fmt.Sprintf(`%s

AVAILABLE FUNCTIONS:
1. explain_content(text, url, complexity) - Explain content
2. generate_quiz(content, num_questions, difficulty) - Generate quiz
3. generate_flashcards(content, num_cards, words_per_card) - Generate flashcards
4. generate_workflow(content) - Generate workflow

INSTRUCTIONS:
Analyze the user's message and determine which function(s) to call. Return your response in JSON format:
{
    "function_calls": [
        {
            "name": "function_name",
            "args": {"param": "value"}
        }
    ],
    "reasoning": "Why you're calling this function"
}

If no function is needed, return: {"function_calls": [], "reasoning": "..."}

User message: %s`, systemPrompt, userMessage)
}

// AgentSynthesis asks the model to turn executed tool results into the final
// user-facing reply.
func AgentSynthesis(systemPrompt, toolResults, userMessage string) string {
	return fmt.Sprintf(`%s

Tool execution completed:
%s

User's original request: %s

Provide a helpful, comprehensive response to the user based on these tool results. Include the results naturally in your response.`,
		systemPrompt, toolResults, userMessage)
}
