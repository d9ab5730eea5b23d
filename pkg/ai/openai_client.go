// pkg/ai/openai_client.go

package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type openAI struct {
	endpoint string
	key      string
	model    string
	httpc    *http.Client
}

// NewOpenAI talks to any OpenAI-compatible chat completions endpoint.
func NewOpenAI(endpoint, key, model string) Client {
	return &openAI{
		endpoint: endpoint,
		key:      key,
		model:    model,
		httpc:    &http.Client{Timeout: 25 * time.Second},
	}
}

func (c *openAI) ParseMessage(ctx context.Context, text string) (string, error) {
	type chatReq struct {
		Model          string              `json:"model"`
		Messages       []map[string]string `json:"messages"`
		Temperature    float64             `json:"temperature"`
		ResponseFormat map[string]string   `json:"response_format"`
	}
	reqBody := chatReq{
		Model: c.model,
		Messages: []map[string]string{
			{"role": "system", "content": SystemPrompt},
			{"role": "user", "content": fmt.Sprintf("User: %q", text)},
		},
		Temperature:    0,
		ResponseFormat: map[string]string{"type": "json_object"},
	}

	b, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(c.endpoint, "/")+"/v1/chat/completions", bytes.NewReader(b))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.key)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return "", fmt.Errorf("chat completions: status %d", resp.StatusCode)
	}

	var out struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("decode chat completions: %w", err)
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("no choices")
	}
	raw := StripFences(out.Choices[0].Message.Content)
	if raw == "" {
		return "", ErrEmptyResponse
	}
	return raw, nil
}
