package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"homedesignai/internal/chain"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIClient wraps minimal functionality needed for chat completions.
type OpenAIClient struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// OpenAIOption tweaks optional client behaviour.
type OpenAIOption func(*OpenAIClient)

// WithOpenAIBaseURL overrides the API endpoint, mainly for tests.
func WithOpenAIBaseURL(baseURL string) OpenAIOption {
	return func(c *OpenAIClient) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// NewOpenAIClient constructs a client using the provided API key and model.
func NewOpenAIClient(apiKey, model string, timeout time.Duration, opts ...OpenAIOption) *OpenAIClient {
	if model == "" {
		model = "gpt-4"
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	client := &OpenAIClient{
		apiKey:  apiKey,
		model:   model,
		baseURL: defaultOpenAIBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// ChatCompletion sends chat messages to OpenAI and returns the first response
// content.
func (c *OpenAIClient) ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64) (string, error) {
	payload := map[string]any{
		"model":       c.model,
		"temperature": temperature,
		"messages":    messages,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal openai payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return "", chain.Rejected(fmt.Errorf("openai status %d: %s", resp.StatusCode, failure.Error.Message))
	}

	var completion struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", chain.Malformed(fmt.Errorf("decode response: %w", err))
	}

	if len(completion.Choices) == 0 {
		return "", chain.Malformed(fmt.Errorf("no choices returned"))
	}
	content := strings.TrimSpace(completion.Choices[0].Message.Content)
	if content == "" {
		return "", chain.Malformed(fmt.Errorf("empty completion content"))
	}
	return content, nil
}
