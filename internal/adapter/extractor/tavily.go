package extractor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"studyforge/internal/domain"
	"studyforge/internal/logger"

	"go.uber.org/zap"
)

const defaultTavilyBaseURL = "https://api.tavily.com"

// TavilyExtractor fetches readable page text through the Tavily extract API.
type TavilyExtractor struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTavilyExtractor(apiKey string) domain.URLExtractor {
	return &TavilyExtractor{
		apiKey:  apiKey,
		baseURL: defaultTavilyBaseURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

// NewTavilyExtractorWithBaseURL is used by tests to point at a stub server.
func NewTavilyExtractorWithBaseURL(apiKey, baseURL string, client *http.Client) domain.URLExtractor {
	if client == nil {
		client = &http.Client{Timeout: 20 * time.Second}
	}
	return &TavilyExtractor{apiKey: apiKey, baseURL: baseURL, client: client}
}

type tavilyExtractRequest struct {
	URLs string `json:"urls"`
}

type tavilyExtractResponse struct {
	Results []struct {
		URL        string `json:"url"`
		RawContent string `json:"raw_content"`
	} `json:"results"`
	FailedResults []struct {
		URL   string `json:"url"`
		Error string `json:"error"`
	} `json:"failed_results"`
}

func (e *TavilyExtractor) Extract(ctx context.Context, url string) (string, error) {
	if e.apiKey == "" {
		return "", domain.NewExtractionError(url, fmt.Errorf("tavily API key is not configured"))
	}

	body, err := json.Marshal(tavilyExtractRequest{URLs: url})
	if err != nil {
		return "", domain.NewExtractionError(url, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.baseURL+"/extract", bytes.NewReader(body))
	if err != nil {
		return "", domain.NewExtractionError(url, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+e.apiKey)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", domain.NewExtractionError(url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", domain.NewExtractionError(url, fmt.Errorf("tavily returned status %d", resp.StatusCode))
	}

	var extractResp tavilyExtractResponse
	if err := json.NewDecoder(resp.Body).Decode(&extractResp); err != nil {
		return "", domain.NewExtractionError(url, err)
	}

	if len(extractResp.Results) == 0 {
		if len(extractResp.FailedResults) > 0 {
			logger.Get().Warn("tavily extraction failed",
				zap.String("url", url),
				zap.String("reason", extractResp.FailedResults[0].Error))
			return "", domain.NewExtractionError(url, fmt.Errorf("%s", extractResp.FailedResults[0].Error))
		}
		return "", domain.NewExtractionError(url, nil)
	}

	content := strings.TrimSpace(extractResp.Results[0].RawContent)
	if content == "" {
		return "", domain.NewExtractionError(url, nil)
	}
	return content, nil
}
