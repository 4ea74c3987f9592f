package image

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/prompts"
)

const defaultLexicaBaseURL = "https://lexica.art/api/v1"

// LexicaClient searches lexica.art for existing renders matching the request.
type LexicaClient struct {
	baseURL string
	client  *http.Client
}

// NewLexicaClient constructs a search client with the given per-call timeout.
func NewLexicaClient(timeout time.Duration) *LexicaClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &LexicaClient{
		baseURL: defaultLexicaBaseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests.
func (c *LexicaClient) WithBaseURL(baseURL string) *LexicaClient {
	c.baseURL = strings.TrimSuffix(baseURL, "/")
	return c
}

// Name identifies the provider in chain diagnostics.
func (c *LexicaClient) Name() string { return "lexica" }

// Invoke searches for an image matching the request and returns the first hit.
func (c *LexicaClient) Invoke(ctx context.Context, req design.Request) (Reference, error) {
	query := prompts.BuildImageQuery(req)
	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Reference{}, fmt.Errorf("lexica request: %w", err)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return Reference{}, fmt.Errorf("lexica perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return Reference{}, chain.Rejected(fmt.Errorf("lexica status %d", resp.StatusCode))
	}

	var payload struct {
		Images []struct {
			Src string `json:"src"`
		} `json:"images"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Reference{}, chain.Malformed(fmt.Errorf("lexica decode response: %w", err))
	}
	if len(payload.Images) == 0 || strings.TrimSpace(payload.Images[0].Src) == "" {
		return Reference{}, chain.Malformed(fmt.Errorf("lexica returned no images for %q", query))
	}

	return Reference{URL: payload.Images[0].Src}, nil
}
