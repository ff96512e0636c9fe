// Package llm provides the language-model collaborator used to generate
// package recommendations. It speaks the OpenAI-compatible chat API,
// pointed at Groq by default.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const (
	// DefaultBaseURL is Groq's OpenAI-compatible endpoint.
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	// DefaultModel is the model used when none is configured.
	DefaultModel = "llama-3.3-70b-versatile"

	defaultTemperature = 0.2
)

// Config holds the explicit model configuration. Values come from the
// caller; nothing is read from the environment here.
type Config struct {
	APIKey      string
	Model       string  // Defaults to DefaultModel.
	BaseURL     string  // Defaults to DefaultBaseURL.
	Temperature float64 // Defaults to 0.2.
}

// Client wraps an OpenAI-compatible chat model behind the single
// Complete call the aggregator needs. Safe for concurrent use.
type Client struct {
	model       llms.Model
	temperature float64
}

// NewClient builds a chat client for the configured endpoint.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing API key")
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = defaultTemperature
	}

	model, err := openai.New(
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
		openai.WithBaseURL(cfg.BaseURL),
	)
	if err != nil {
		return nil, fmt.Errorf("create model client: %w", err)
	}

	return &Client{model: model, temperature: cfg.Temperature}, nil
}

// Complete sends one system+user prompt pair and returns the raw text of
// the first choice. No session state is retained between calls.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	resp, err := c.model.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(schema.ChatMessageTypeSystem, systemPrompt),
			llms.TextParts(schema.ChatMessageTypeHuman, userPrompt),
		},
		llms.WithTemperature(c.temperature),
	)
	if err != nil {
		return "", fmt.Errorf("model completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("model returned no choices")
	}
	return resp.Choices[0].Content, nil
}
