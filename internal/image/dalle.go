package image

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/prompts"
)

const defaultDalleBaseURL = "https://api.openai.com/v1"

// DalleClient renders interiors via the OpenAI image generation API.
type DalleClient struct {
	apiKey  string
	model   string
	size    string
	baseURL string
	client  *http.Client
}

// NewDalleClient constructs a generation client for the given model.
func NewDalleClient(apiKey, model string, timeout time.Duration) *DalleClient {
	if model == "" {
		model = "dall-e-3"
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &DalleClient{
		apiKey:  apiKey,
		model:   model,
		size:    "1024x1024",
		baseURL: defaultDalleBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *DalleClient) WithBaseURL(baseURL string) *DalleClient {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// Name identifies the provider in chain diagnostics.
func (c *DalleClient) Name() string { return "dalle" }

// Invoke requests a single rendered image for the request's image prompt.
func (c *DalleClient) Invoke(ctx context.Context, req design.Request) (Reference, error) {
	payload := map[string]any{
		"model":   c.model,
		"prompt":  prompts.BuildImagePrompt(req),
		"n":       1,
		"size":    c.size,
		"quality": "standard",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return Reference{}, fmt.Errorf("marshal dalle payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(body))
	if err != nil {
		return Reference{}, fmt.Errorf("dalle request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Reference{}, fmt.Errorf("dalle perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var failure struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&failure)
		return Reference{}, chain.Rejected(fmt.Errorf("dalle status %d: %s", resp.StatusCode, failure.Error.Message))
	}

	var generation struct {
		Data []struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&generation); err != nil {
		return Reference{}, chain.Malformed(fmt.Errorf("dalle decode response: %w", err))
	}
	if len(generation.Data) == 0 || strings.TrimSpace(generation.Data[0].URL) == "" {
		return Reference{}, chain.Malformed(fmt.Errorf("dalle returned no image data"))
	}

	return Reference{URL: generation.Data[0].URL}, nil
}
