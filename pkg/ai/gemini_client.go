package ai

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

type gemini struct {
	client *genai.Client
	model  string
}

// NewGemini builds a Gemini-backed interpreter.
func NewGemini(ctx context.Context, apiKey, model string) (Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &gemini{client: c, model: model}, nil
}

func (g *gemini) ParseMessage(ctx context.Context, text string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx,
		g.model,
		genai.Text(fmt.Sprintf("User: %q", text)),
		&genai.GenerateContentConfig{
			SystemInstruction: genai.NewContentFromText(SystemPrompt, genai.RoleUser),
			ResponseMIMEType:  "application/json",
			Temperature:       genai.Ptr[float32](0),
		},
	)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	raw := StripFences(resp.Text())
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}
