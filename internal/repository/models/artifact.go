package models

import "time"

// FlashcardSet is the flashcard_sets table row. Flashcards holds the card
// array as JSON.
type FlashcardSet struct {
	ID              int64     `db:"id"`
	UserID          string    `db:"user_id"`
	Flashcards      string    `db:"flashcards"`
	OriginalContent string    `db:"original_content"`
	ContentSource   string    `db:"content_source"`
	NumCards        int       `db:"num_cards"`
	WordsPerCard    int       `db:"words_per_card"`
	CreatedAt       time.Time `db:"created_at"`
}

// Workflow is the workflows table row.
type Workflow struct {
	ID              int64     `db:"id"`
	UserID          string    `db:"user_id"`
	MermaidCode     string    `db:"mermaid_code"`
	OriginalContent string    `db:"original_content"`
	ContentSource   string    `db:"content_source"`
	CreatedAt       time.Time `db:"created_at"`
}

// Presentation is the presentations table row. Slides holds the deck as JSON.
type Presentation struct {
	ID        int64     `db:"id"`
	UserID    string    `db:"user_id"`
	Title     string    `db:"title"`
	Slides    string    `db:"slides"`
	Theme     string    `db:"theme"`
	NumSlides int       `db:"num_slides"`
	CreatedAt time.Time `db:"created_at"`
}
