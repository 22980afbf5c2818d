package service

import (
	"context"
	"fmt"
	"strings"

	"studyforge/internal/domain"
	"studyforge/internal/dto"
	"studyforge/internal/logger"
	"studyforge/internal/util"

	"go.uber.org/zap"
)

const (
	// minContentLength rejects inputs too short to generate anything useful
	// from, before any model call is made.
	minContentLength = 50

	// maxContentLength bounds how much source text reaches a prompt.
	maxContentLength = 15000
)

// ResolvedContent is source text ready for a generation prompt.
type ResolvedContent struct {
	Text       string
	SourceType domain.SourceType
}

// ContentResolver turns a request's text, URL, or PDF into prompt-ready text.
type ContentResolver interface {
	Resolve(ctx context.Context, req *dto.ContentRequest) (*ResolvedContent, error)
}

type contentResolver struct {
	pdfExtractor domain.PDFExtractor
	urlExtractor domain.URLExtractor
}

func NewContentResolver(pdfExtractor domain.PDFExtractor, urlExtractor domain.URLExtractor) ContentResolver {
	return &contentResolver{pdfExtractor: pdfExtractor, urlExtractor: urlExtractor}
}

// Resolve extracts content with PDF taking precedence over URL over text,
// then enforces the minimum length and truncates to the prompt bound.
func (r *contentResolver) Resolve(ctx context.Context, req *dto.ContentRequest) (*ResolvedContent, error) {
	var (
		content    string
		sourceType domain.SourceType
	)

	switch {
	case len(req.PDFData) > 0:
		sourceType = domain.SourcePDF
		extracted, err := r.pdfExtractor.Extract(req.PDFData, req.PDFFilename)
		if err != nil {
			return nil, err
		}
		content = extracted
	case req.URL != "":
		sourceType = domain.SourceURL
		extracted, err := r.urlExtractor.Extract(ctx, req.URL)
		if err != nil {
			return nil, err
		}
		content = extracted
	case req.Text != "":
		sourceType = domain.SourceText
		content = req.Text
	default:
		return nil, domain.NewInvalidInputError("Please provide text, PDF, or URL")
	}

	content = strings.TrimSpace(content)
	if len(content) < minContentLength {
		return nil, domain.NewInvalidInputError(
			fmt.Sprintf("Content too short. Need at least %d characters.", minContentLength))
	}

	if len(content) > maxContentLength {
		logger.Get().Debug("truncating content for prompt",
			zap.Int("original_length", len(content)),
			zap.Int("truncated_length", maxContentLength),
			zap.String("source_type", string(sourceType)))
		content = util.Truncate(content, maxContentLength)
	}

	return &ResolvedContent{Text: content, SourceType: sourceType}, nil
}
