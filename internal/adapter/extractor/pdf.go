package extractor

import (
	"bytes"
	"strings"

	"studyforge/internal/domain"

	"github.com/ledongthuc/pdf"
)

// PDFTextExtractor pulls plain text out of uploaded PDF bytes.
type PDFTextExtractor struct{}

func NewPDFTextExtractor() domain.PDFExtractor {
	return &PDFTextExtractor{}
}

func (e *PDFTextExtractor) Extract(data []byte, filename string) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewExtractionError(filename, err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			// A single unreadable page should not sink the whole document.
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}

	extracted := strings.TrimSpace(builder.String())
	if extracted == "" {
		return "", domain.NewExtractionError(filename, nil)
	}
	return extracted, nil
}
