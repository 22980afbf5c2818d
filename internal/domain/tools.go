package domain

// Names of the tools the conversational agent can dispatch. The set is
// closed: dispatch goes through a registry keyed by these names.
const (
	ToolExplainContent     = "explain_content"
	ToolGenerateQuiz       = "generate_quiz"
	ToolGenerateFlashcards = "generate_flashcards"
	ToolGenerateWorkflow   = "generate_workflow"
)

// AgentToolSchemas declares the agent's tools for the provider's
// function-calling API. The same schemas back argument defaulting on the
// keyword-fallback path.
func AgentToolSchemas() []ToolSchema {
	return []ToolSchema{
		{
			Name:        ToolExplainContent,
			Description: "Explain educational content from URL, PDF, or text. Always explain first before generating quizzes or flashcards.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"text": map[string]interface{}{
						"type":        "string",
						"description": "Text content to explain (optional if url provided)",
					},
					"url": map[string]interface{}{
						"type":        "string",
						"description": "URL to scrape and explain (optional if text provided)",
					},
					"complexity": map[string]interface{}{
						"type":        "string",
						"enum":        []string{"simple", "medium", "advanced"},
						"description": "Complexity level of the explanation",
					},
				},
			},
		},
		{
			Name:        ToolGenerateQuiz,
			Description: "Generate multiple-choice quiz questions from content. Requires content to be explained first or provided directly.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Content to generate the quiz from. Previously explained content is used when omitted.",
					},
					"num_questions": map[string]interface{}{
						"type":        "integer",
						"description": "Number of questions (default 10, range 5-20)",
						"minimum":     5,
						"maximum":     20,
					},
					"difficulty": map[string]interface{}{
						"type": "string",
						"enum": []string{DifficultyEasy, DifficultyMedium, DifficultyHard},
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        ToolGenerateFlashcards,
			Description: "Generate flashcards from content. Requires content to be explained first or provided directly.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Content to generate flashcards from. Previously explained content is used when omitted.",
					},
					"num_cards": map[string]interface{}{
						"type":        "integer",
						"description": "Number of flashcards (default 10, range 5-30)",
						"minimum":     5,
						"maximum":     30,
					},
					"words_per_card": map[string]interface{}{
						"type":        "integer",
						"description": "Word limit per card side (default 35, range 20-50)",
						"minimum":     20,
						"maximum":     50,
					},
				},
				"required": []string{"content"},
			},
		},
		{
			Name:        ToolGenerateWorkflow,
			Description: "Generate a Mermaid workflow diagram from content. Requires content to be explained first or provided directly.",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"content": map[string]interface{}{
						"type":        "string",
						"description": "Content to generate the workflow from. Previously explained content is used when omitted.",
					},
				},
				"required": []string{"content"},
			},
		},
	}
}
