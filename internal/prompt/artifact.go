// Package prompt builds the model prompts for every generation feature. The
// templates pin the output contract (raw JSON, field names, limits) because
// downstream parsing depends on it.
package prompt

import (
	"fmt"
	"strings"

	"studyforge/internal/util"
)

// Quiz asks for a raw JSON array of multiple-choice questions.
func Quiz(content string, numQuestions int, difficulty string) string {
	return fmt.Sprintf(`Act as a strict educational API. Generate %d multiple-choice questions
based strictly on the following text. The difficulty level should be %s.

Text: "%s"

Output Format:
Return ONLY a raw JSON array. No markdown, no 'json' tags, no intro text.
Structure:
[
    {
        "id": 1,
        "question": "Question text here?",
        "options": ["Option A", "Option B", "Option C", "Option D"],
        "correct_answer": "Option B"
    }
]`, numQuestions, difficulty, content)
}

// analysisContentLimit keeps the quiz-analysis prompt from ballooning when the
// source document is large.
const analysisContentLimit = 3000

// Analysis asks for performance insights over a submitted quiz.
func Analysis(content string, correct, wrong []string) string {
	trimmed := util.Truncate(content, analysisContentLimit)
	return fmt.Sprintf(`You are an educational AI assistant. Analyze this student's quiz performance and provide insights.

Original Content:
%s

Questions Answered Correctly:
%s

Questions Answered Incorrectly:
%s

Provide a JSON response with:
{
    "analysis": "Overall performance summary (2-3 sentences)",
    "topics_to_improve": ["topic1", "topic2"],
    "strengths": ["strength1", "strength2"],
    "recommendations": ["recommendation1", "recommendation2"]
}

Return ONLY valid JSON, no markdown.`, trimmed, strings.Join(correct, "; "), strings.Join(wrong, "; "))
}

// Explainer asks for the full structured explanation document.
func Explainer(content, complexity string) string {
	return fmt.Sprintf(`You are an expert educator creating a comprehensive, engaging explanation similar to NotebookLM.
Complexity level: %s

Content to Explain:
%s

Generate a rich, structured explanation in JSON format with the following structure:

{
    "title": "Main topic title",
    "summary": "2-3 sentence overview",
    "sections": [
        {
            "heading": "Section title",
            "content": "Detailed explanation in markdown format",
            "key_points": ["point 1", "point 2"],
            "examples": ["example 1", "example 2"]
        }
    ],
    "concepts": [
        {
            "term": "Key concept name",
            "definition": "Clear definition",
            "analogy": "Real-world analogy to understand it"
        }
    ],
    "workflows": [
        {
            "title": "Process/workflow name",
            "steps": ["step 1", "step 2", "step 3"]
        }
    ],
    "diagrams": [
        {
            "type": "flowchart|mindmap|process",
            "description": "What this diagram represents",
            "mermaid_code": "flowchart TD\n    A[Start] --> B[Process]\n    B --> C[End]"
        }
    ],
    "image_suggestions": [
        {
            "query": "Search query for relevant image",
            "context": "Why this image is relevant"
        }
    ],
    "references": [
        {
            "title": "Reference title",
            "description": "What to learn from this",
            "suggested_search": "Google search query"
        }
    ],
    "quiz_topics": ["topic1", "topic2", "topic3"],
    "flashcard_concepts": ["concept1", "concept2", "concept3"]
}

IMPORTANT: Return ONLY valid JSON with no markdown code blocks. Do not use newlines within string values - keep all text on single lines. Use spaces instead of tabs.`, complexity, content)
}

// explainerChatHistoryLimit is how many prior turns the tutor sees.
const explainerChatHistoryLimit = 5

// explainerChatContentLimit bounds the explanation context in chat prompts.
const explainerChatContentLimit = 5000

// ExplainerChat asks a follow-up question against an existing explanation.
func ExplainerChat(explainerContent string, history []string, question string) string {
	if len(history) > explainerChatHistoryLimit {
		history = history[len(history)-explainerChatHistoryLimit:]
	}
	trimmed := util.Truncate(explainerContent, explainerChatContentLimit)
	return fmt.Sprintf(`You are a helpful AI tutor answering questions about educational content.

EXPLAINED CONTENT:
%s

CHAT HISTORY:
%s

STUDENT QUESTION:
%s

Provide a clear, helpful answer based on the explained content. If the question is outside the scope
of the content, politely guide the student back to the topic.

Return your response in JSON format:
{
    "answer": "Your detailed answer here",
    "relevant_section": "Which section/concept this relates to (if applicable)"
}

Return ONLY valid JSON.`, trimmed, strings.Join(history, "\n"), question)
}

// Flashcards asks for exam-style cards with a hard word limit per side.
func Flashcards(content string, numCards, wordsPerCard int) string {
	return fmt.Sprintf(`You are an EXAM-FOCUSED flashcard generator. Create EXACTLY %d flashcards for rapid memorization.

STRICT RULES - FOLLOW PRECISELY:
1. Each card FRONT & BACK must be <= %d words
2. NO storytelling, NO examples, NO explanations
3. ONLY direct facts, formulas, definitions, key terms
4. Use bullet points for multi-part answers
5. Include mathematical formulas EXACTLY as written (use proper notation)
6. Assign difficulty based on concept complexity:
   - easy: Basic definitions, simple facts
   - medium: Formulas, processes, relationships
   - hard: Complex concepts, advanced theories

Content to extract from:
%s

Output Format (RAW JSON ARRAY ONLY - NO MARKDOWN):
[
  {
    "id": 1,
    "front": "What is Newton's 2nd Law?",
    "back": "F = ma (Force = mass x acceleration)",
    "difficulty": "medium"
  },
  {
    "id": 2,
    "front": "Mitochondria function?",
    "back": "Cellular respiration; ATP production; Energy powerhouse",
    "difficulty": "easy"
  }
]

STRICTLY AVOID: Long sentences, stories, context, explanations, examples.
MUST INCLUDE: Formulas, definitions, key terms, concise facts.

Generate %d flashcards NOW:`, numCards, wordsPerCard, content, numCards)
}

// Workflow asks for a Mermaid flowchart with a decision branch.
func Workflow(content string) string {
	return fmt.Sprintf(`Generate a CLEAR Mermaid flowchart workflow diagram based on the following content.
Analyze the content and create a workflow with EXACTLY 6-7 nodes with at least ONE decision point.

Content: "%s"

CRITICAL SYNTAX RULES:
1. ALWAYS use "flowchart TD" (Top-Down/Vertical layout)
2. Node IDs must be simple letters: A, B, C, D, E, F, G, H
3. Node labels MUST use square brackets: A[Label Text]
4. NEVER use parentheses, quotes, or special characters in node labels
5. For decision nodes, use curly braces: C{Decision Text}
6. Keep labels SHORT - max 3-4 words
7. Use only alphanumeric characters and spaces in labels
8. Connection arrows: --> or ---|label|-->

REQUIRED STRUCTURE:
- MUST have 7-9 nodes total
- MUST have at least 1 decision node (diamond shape)
- Include at least one branching path with |Yes| and |No| labels
- One branch can loop back or both can continue forward
- Keep it organized vertically

PERFECT EXAMPLE:
flowchart TD
    A[Start Process] --> B[Gather Data]
    B --> C[Validate Input]
    C --> D{Data Valid}
    D -->|Yes| E[Process Data]
    D -->|No| F[Show Error]
    E --> G[Generate Output]
    F --> H[Log Error]
    G --> I[Complete]
    H --> I

Output ONLY the Mermaid code starting with "flowchart TD".
NO markdown fences, NO explanations.`, content)
}

// TopicExpansion turns a short topic request into study material worth
// explaining. Used when a message names a subject instead of supplying text.
func TopicExpansion(topic string) string {
	return fmt.Sprintf(`Generate a comprehensive, detailed explanation about the following topic. Write at least 500 words covering:
- Definition and overview
- Key concepts and components
- How it works
- Applications and examples
- Important details

Topic: %s

Write the content as if it were an educational article or textbook section. Do not include any markdown formatting, just plain text.`, topic)
}
