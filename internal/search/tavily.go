// Package search provides the web-search collaborator client.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/tpclabs/research-assistant/internal/models"
)

const defaultEndpoint = "https://api.tavily.com/search"

// Options bound a single search call.
type Options struct {
	// Days restricts results to the given recency window.
	Days int
	// MaxResults caps the result-set size.
	MaxResults int
	// Page selects the result page, starting at 1.
	Page int
}

// Tavily calls the Tavily search API. The API key is supplied per call
// because the user can change it at any time through settings.
type Tavily struct {
	endpoint string
	client   *http.Client
}

// NewTavily constructs a Tavily search client.
func NewTavily() *Tavily {
	return &Tavily{endpoint: defaultEndpoint, client: &http.Client{Timeout: 30 * time.Second}}
}

// NewTavilyWithClient constructs a Tavily client against a custom endpoint
// and HTTP client. Used by tests.
func NewTavilyWithClient(endpoint string, client *http.Client) *Tavily {
	return &Tavily{endpoint: endpoint, client: client}
}

type tavilyRequest struct {
	Query      string `json:"query"`
	APIKey     string `json:"api_key"`
	Days       int    `json:"days"`
	MaxResults int    `json:"max_results"`
	Page       int    `json:"page,omitempty"`
}

// Search posts a query to Tavily and returns the mapped results.
// 429 responses are retried with a doubling delay until the context is done.
func (t *Tavily) Search(ctx context.Context, apiKey, query string, opts Options) ([]models.SearchResult, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("tavily: API key is missing")
	}

	payload, err := json.Marshal(tavilyRequest{
		Query:      query,
		APIKey:     apiKey,
		Days:       opts.Days,
		MaxResults: opts.MaxResults,
		Page:       opts.Page,
	})
	if err != nil {
		return nil, err
	}

	var resp *http.Response
	delay := time.Second
	for {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = t.client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("tavily: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests {
			break
		}
		resp.Body.Close()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
		if delay < 30*time.Second {
			delay *= 2
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tavily http %d", resp.StatusCode)
	}

	var response struct {
		Results []struct {
			Title   string `json:"title"`
			URL     string `json:"url"`
			Content string `json:"content"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("tavily: decode: %w", err)
	}

	results := make([]models.SearchResult, 0, len(response.Results))
	for _, r := range response.Results {
		results = append(results, models.SearchResult{Title: r.Title, URL: r.URL, Content: r.Content})
	}
	return results, nil
}
