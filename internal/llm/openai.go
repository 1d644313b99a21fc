// Package llm provides the refinement and content-generation collaborators,
// backed by OpenAI chat completions.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"

	"github.com/tpclabs/research-assistant/internal/models"
)

const (
	refineModel  = "gpt-4o-mini"
	contentModel = "gpt-4o"

	contentTemperature = 0.7
)

// Client wraps OpenAI chat completion calls. The API key is supplied per
// call because the user can change it at any time through settings.
type Client struct {
	baseURL string
}

func NewClient() *Client {
	return &Client{}
}

// NewClientWithBaseURL points the client at an OpenAI-compatible endpoint.
// Used by tests.
func NewClientWithBaseURL(baseURL string) *Client {
	return &Client{baseURL: baseURL}
}

// Refine rewrites a raw topic into a search-effective query. Failure
// propagates; there is no fallback to the unrefined query.
func (c *Client) Refine(ctx context.Context, apiKey, query string) (string, error) {
	out, err := c.chat(ctx, apiKey, refineModel, refinePrompt, query)
	if err != nil {
		return "", fmt.Errorf("refine query: %w", err)
	}
	return out, nil
}

// GenerateTweetThread writes a numbered tweet thread from the research.
func (c *Client) GenerateTweetThread(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error) {
	return c.generate(ctx, apiKey, tweetPrompt, tweetContext(rc))
}

// GenerateBlogPost writes a markdown blog post from the research.
func (c *Client) GenerateBlogPost(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error) {
	return c.generate(ctx, apiKey, blogPrompt, sourceContext(rc))
}

// GenerateNewsletter writes an email newsletter from the research.
func (c *Client) GenerateNewsletter(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error) {
	return c.generate(ctx, apiKey, newsletterPrompt, sourceContext(rc))
}

// GenerateLinkedInPost writes a LinkedIn post from the research.
func (c *Client) GenerateLinkedInPost(ctx context.Context, apiKey string, rc models.ResearchContext) (string, error) {
	return c.generate(ctx, apiKey, linkedinPrompt, sourceContext(rc))
}

func (c *Client) generate(ctx context.Context, apiKey, system, user string) (string, error) {
	out, err := c.chat(ctx, apiKey, contentModel, system, user, llms.WithTemperature(contentTemperature))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return out, nil
}

func (c *Client) chat(ctx context.Context, apiKey, model, system, user string, callOpts ...llms.CallOption) (string, error) {
	opts := []openai.Option{openai.WithToken(apiKey), openai.WithModel(model)}
	if c.baseURL != "" {
		opts = append(opts, openai.WithBaseURL(c.baseURL))
	}
	client, err := openai.New(opts...)
	if err != nil {
		return "", err
	}

	resp, err := client.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, system),
		llms.TextParts(schema.ChatMessageTypeHuman, user),
	}, callOpts...)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("model returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Content), nil
}
