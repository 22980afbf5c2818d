package dto

import "studyforge/internal/domain"

// ContentRequest carries the shared source fields for generation endpoints.
// Exactly one of Text, URL, or the uploaded PDF must be set; the handler fills
// PDFData/PDFFilename from the multipart file when present.
type ContentRequest struct {
	Text        string `json:"text" form:"text"`
	URL         string `json:"url" form:"url"`
	PDFData     []byte `json:"-" form:"-"`
	PDFFilename string `json:"-" form:"-"`
}

// HasSource reports whether any content source was provided.
func (r *ContentRequest) HasSource() bool {
	return r.Text != "" || r.URL != "" || len(r.PDFData) > 0
}

// QuizGenerateRequest is the body for POST /api/quiz/generate.
type QuizGenerateRequest struct {
	ContentRequest
	NumQuestions int    `json:"num_questions" form:"num_questions"`
	Difficulty   string `json:"difficulty" form:"difficulty"`
}

// QuizGenerateResponse returns the generated questions plus the resolved
// content so the client can reuse it for submit and analysis.
type QuizGenerateResponse struct {
	Quiz            []domain.QuizQuestion `json:"quiz"`
	OriginalContent string                `json:"original_content"`
	ContentSource   string                `json:"content_source"`
}

// QuizSubmitRequest is the body for POST /api/quiz/submit.
type QuizSubmitRequest struct {
	Questions []domain.QuizQuestion `json:"questions"`
	Answers   map[string]string     `json:"answers"`
}

type QuizSubmitResponse struct {
	Score   domain.QuizScore   `json:"score"`
	Results []QuizAnswerResult `json:"results"`
}

// QuizAnswerResult reports one question's outcome.
type QuizAnswerResult struct {
	QuestionID    int    `json:"question_id"`
	Question      string `json:"question"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer"`
	Correct       bool   `json:"correct"`
}

// QuizAnalysisRequest is the body for POST /api/quiz/analysis.
type QuizAnalysisRequest struct {
	Content        string   `json:"content"`
	CorrectAnswers []string `json:"correct_answers"`
	WrongAnswers   []string `json:"wrong_answers"`
}

type QuizAnalysisResponse struct {
	Analysis domain.Analysis `json:"analysis"`
}

// ExplainRequest is the body for POST /api/explainer/generate.
type ExplainRequest struct {
	ContentRequest
	Complexity string `json:"complexity" form:"complexity"`
}

type ExplainResponse struct {
	Explanation *domain.Explanation `json:"explanation"`
}

// ExplainerChatRequest is the body for POST /api/explainer/chat.
type ExplainerChatRequest struct {
	ExplainerContent string           `json:"explainer_content"`
	ChatHistory      []domain.Message `json:"chat_history"`
	Question         string           `json:"question"`
}

type ExplainerChatResponse struct {
	Answer          string `json:"answer"`
	RelevantSection string `json:"relevant_section,omitempty"`
}

// FlashcardGenerateRequest is the body for POST /api/flashcards/generate.
type FlashcardGenerateRequest struct {
	ContentRequest
	NumCards     int `json:"num_cards" form:"num_cards"`
	WordsPerCard int `json:"words_per_card" form:"words_per_card"`
}

type FlashcardGenerateResponse struct {
	Flashcards      []domain.Flashcard `json:"flashcards"`
	OriginalContent string             `json:"original_content"`
	ContentSource   string             `json:"content_source"`
}

// FlashcardSaveRequest is the body for POST /api/flashcards/save.
type FlashcardSaveRequest struct {
	Flashcards      []domain.Flashcard `json:"flashcards"`
	OriginalContent string             `json:"original_content"`
	ContentSource   string             `json:"content_source"`
	NumCards        int                `json:"num_cards"`
	WordsPerCard    int                `json:"words_per_card"`
}

type FlashcardSaveResponse struct {
	SetID   int64  `json:"set_id"`
	Message string `json:"message"`
}

// FlashcardSetSummary is one saved set in GET /api/flashcards/saved.
type FlashcardSetSummary struct {
	SetID         int64  `json:"set_id"`
	NumCards      int    `json:"num_cards"`
	ContentSource string `json:"content_source"`
	CreatedAt     string `json:"created_at"`
}

type SavedFlashcardSetsResponse struct {
	Sets []FlashcardSetSummary `json:"sets"`
}

// WorkflowGenerateRequest is the body for POST /api/workflow/generate.
type WorkflowGenerateRequest struct {
	ContentRequest
}

type WorkflowGenerateResponse struct {
	MermaidCode     string `json:"mermaid_code"`
	OriginalContent string `json:"original_content"`
	ContentSource   string `json:"content_source"`
}

// WorkflowSaveRequest is the body for POST /api/workflow/save.
type WorkflowSaveRequest struct {
	MermaidCode     string `json:"mermaid_code"`
	OriginalContent string `json:"original_content"`
	ContentSource   string `json:"content_source"`
}

type WorkflowSaveResponse struct {
	WorkflowID int64  `json:"workflow_id"`
	Message    string `json:"message"`
}

// WorkflowSummary is one saved diagram in GET /api/workflow/history.
type WorkflowSummary struct {
	WorkflowID    int64  `json:"workflow_id"`
	ContentSource string `json:"content_source"`
	CreatedAt     string `json:"created_at"`
}

type WorkflowHistoryResponse struct {
	Workflows []WorkflowSummary `json:"workflows"`
}

// ErrorResponse represents an error in the API response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
