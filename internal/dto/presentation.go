package dto

import "studyforge/internal/domain"

// OutlineRequest is the body for POST /api/presentation/outline.
type OutlineRequest struct {
	Prompt    string `json:"prompt"`
	NumSlides int    `json:"num_slides"`
	Language  string `json:"language"`
}

type OutlineResponse struct {
	Title   string   `json:"title"`
	Outline []string `json:"outline"`
	Success bool     `json:"success"`
}

// PresentationRequest is the body for POST /api/presentation/generate.
type PresentationRequest struct {
	Title    string   `json:"title"`
	Prompt   string   `json:"prompt"`
	Outline  []string `json:"outline"`
	Language string   `json:"language"`
	Tone     string   `json:"tone"`
	Theme    string   `json:"theme"`
}

type PresentationResponse struct {
	Title   string         `json:"title"`
	Slides  []domain.Slide `json:"slides"`
	Theme   string         `json:"theme"`
	Success bool           `json:"success"`
}

// PresentationSaveRequest is the body for POST /api/presentation/save.
type PresentationSaveRequest struct {
	Title  string         `json:"title"`
	Slides []domain.Slide `json:"slides"`
	Theme  string         `json:"theme"`
}

type PresentationSaveResponse struct {
	PresentationID int64  `json:"presentation_id"`
	Message        string `json:"message"`
}

// PresentationSummary is one saved deck in GET /api/presentation/history.
type PresentationSummary struct {
	PresentationID int64  `json:"presentation_id"`
	Title          string `json:"title"`
	NumSlides      int    `json:"num_slides"`
	CreatedAt      string `json:"created_at"`
}

type PresentationHistoryResponse struct {
	Presentations []PresentationSummary `json:"presentations"`
}
