package domain

// SourceType identifies where generation content came from.
type SourceType string

const (
	SourceText SourceType = "text"
	SourceURL  SourceType = "url"
	SourcePDF  SourceType = "pdf"
)

// Difficulty levels accepted across quiz and flashcard generation.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Explanation is the structured explanation artifact. It is produced once per
// explain request and never mutated afterwards; OriginalContent feeds
// downstream quiz/flashcard/workflow generation.
type Explanation struct {
	Title             string               `json:"title"`
	Summary           string               `json:"summary"`
	Sections          []ExplanationSection `json:"sections"`
	Concepts          []Concept            `json:"concepts"`
	Workflows         []WorkflowOutline    `json:"workflows"`
	Diagrams          []Diagram            `json:"diagrams"`
	ImageSuggestions  []ImageSuggestion    `json:"image_suggestions"`
	References        []Reference          `json:"references"`
	QuizTopics        []string             `json:"quiz_topics"`
	FlashcardConcepts []string             `json:"flashcard_concepts"`
	OriginalContent   string               `json:"original_content,omitempty"`
	ContentSource     string               `json:"content_source,omitempty"`
}

type ExplanationSection struct {
	Heading   string   `json:"heading"`
	Content   string   `json:"content"`
	KeyPoints []string `json:"key_points"`
	Examples  []string `json:"examples"`
}

type Concept struct {
	Term       string `json:"term"`
	Definition string `json:"definition"`
	Analogy    string `json:"analogy"`
}

type WorkflowOutline struct {
	Title string   `json:"title"`
	Steps []string `json:"steps"`
}

type Diagram struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	MermaidCode string `json:"mermaid_code"`
}

type ImageSuggestion struct {
	Query   string `json:"query"`
	Context string `json:"context"`
}

type Reference struct {
	Title           string `json:"title"`
	Description     string `json:"description"`
	SuggestedSearch string `json:"suggested_search"`
}

// QuizQuestion is one multiple-choice question. Options always has four
// entries and CorrectAnswer is one of them; both are enforced after parsing.
type QuizQuestion struct {
	ID            int      `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer"`
}

// Flashcard is a single study card. Front and back are bounded by the
// caller-supplied word limit; cards over the limit are dropped, not repaired.
type Flashcard struct {
	ID         int    `json:"id"`
	Front      string `json:"front"`
	Back       string `json:"back"`
	Difficulty string `json:"difficulty"`
}

// WorkflowDiagram carries Mermaid flowchart code generated from content.
type WorkflowDiagram struct {
	MermaidCode     string `json:"mermaid_code"`
	OriginalContent string `json:"original_content,omitempty"`
	ContentSource   string `json:"content_source,omitempty"`
}

// Analysis summarizes quiz performance.
type Analysis struct {
	Analysis        string   `json:"analysis"`
	TopicsToImprove []string `json:"topics_to_improve"`
	Strengths       []string `json:"strengths"`
	Recommendations []string `json:"recommendations"`
}

// QuizScore is the graded result of a submitted quiz.
type QuizScore struct {
	Correct    int     `json:"correct"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Grade      string  `json:"grade"`
}

/// PresentationOutline is the first stage of slide generation: a title plus
// topic blocks, each a heading with two or three bullets.
type PresentationOutline struct {
	Title  string         `json:"title"`
	Topics []OutlineTopic `json:"topics"`
}

type OutlineTopic struct {
	Heading string   `json:"heading"`
	Bullets []string `json:"bullets"`
}

// Slide layouts and image positions are free-form tags chosen by the model
// from a closed list in the prompt; they are passed through untouched.
type Slide struct {
	Layout        string       `json:"layout"`
	SectionLayout string       `json:"section_layout"`
	Content       SlideContent `json:"content"`
	ImageQuery    string       `json:"image_query,omitempty"`
}

type SlideContent struct {
	Heading string      `json:"heading"`
	Items   []SlideItem `json:"items"`
}

type SlideItem struct {
	Text    string `json:"text"`
	Subtext string `json:"subtext,omitempty"`
}

type SlideDeck struct {
	Title  string  `json:"title"`
	Slides []Slide `json:"slides"`
	Theme  string  `json:"theme"`
}

// ChatReply is a follow-up answer grounded in a previous explanation.
type ChatReply struct {
	Answer          string `json:"answer"`
	RelevantSection string `json:"relevant_section,omitempty"`
}
