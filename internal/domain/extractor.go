package domain

import "context"

// PDFExtractor turns PDF bytes into plain text.
type PDFExtractor interface {
	Extract(data []byte, filename string) (string, error)
}

// URLExtractor fetches readable text for a URL through a third-party
// extraction API. Failures are upstream errors and are never retried here.
type URLExtractor interface {
	Extract(ctx context.Context, url string) (string, error)
}
