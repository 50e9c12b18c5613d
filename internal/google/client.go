package google

import (
	"context"
	"fmt"

	"github.com/ymaeda/katsuyo/internal/llm"
	"google.golang.org/genai"
)

// Model identifies a Google AI model.
type Model string

const DefaultModel Model = "gemini-2.0-flash"

// Client implements llm.Client against the Gemini API.
type Client struct {
	client *genai.Client
	model  Model
}

func NewClient(ctx context.Context, apiKey string, model Model) (*Client, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating google client: %w", err)
	}
	return &Client{client: client, model: model}, nil
}

func (c *Client) Complete(ctx context.Context, system, prompt string) (string, error) {
	// Not every model supports system instructions, so prepend instead.
	fullPrompt := system + "\n\n" + prompt

	result, err := c.client.Models.GenerateContent(ctx, string(c.model),
		[]*genai.Content{{Parts: []*genai.Part{{Text: fullPrompt}}}},
		nil,
	)
	if err != nil {
		return "", fmt.Errorf("google completion: %w", err)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("google completion: empty response")
	}
	return llm.StripCodeFence(result.Candidates[0].Content.Parts[0].Text), nil
}
