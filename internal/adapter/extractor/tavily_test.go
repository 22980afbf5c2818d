package extractor

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"studyforge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTavilyExtractSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/extract", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"url":"https://example.com","raw_content":"  page text  "}]}`))
	}))
	defer server.Close()

	extractor := NewTavilyExtractorWithBaseURL("test-key", server.URL, server.Client())

	content, err := extractor.Extract(context.Background(), "https://example.com")
	require.NoError(t, err)
	assert.Equal(t, "page text", content)
}

func TestTavilyExtractFailedResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[],"failed_results":[{"url":"https://example.com","error":"page not reachable"}]}`))
	}))
	defer server.Close()

	extractor := NewTavilyExtractorWithBaseURL("test-key", server.URL, server.Client())

	_, err := extractor.Extract(context.Background(), "https://example.com")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
}

func TestTavilyExtractServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	extractor := NewTavilyExtractorWithBaseURL("test-key", server.URL, server.Client())

	_, err := extractor.Extract(context.Background(), "https://example.com")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
}

func TestTavilyExtractMissingKey(t *testing.T) {
	extractor := NewTavilyExtractor("")

	_, err := extractor.Extract(context.Background(), "https://example.com")
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domain.CodeExtractionFailed, domainErr.Code)
}
