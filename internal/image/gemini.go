package image

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"homedesignai/internal/chain"
	"homedesignai/internal/design"
	"homedesignai/internal/media"
	"homedesignai/internal/prompts"
)

const defaultGeminiImageModel = "gemini-2.5-flash-image"

// GeminiImageClient renders interiors via Gemini inline image outputs. The
// raw bytes are pushed through the media uploader so the layout always ends
// up with a plain URL.
type GeminiImageClient struct {
	apiKey   string
	model    string
	timeout  time.Duration
	uploader media.Uploader
}

// NewGeminiImageClient constructs a generator able to request inline images.
func NewGeminiImageClient(apiKey, model string, timeout time.Duration, uploader media.Uploader) *GeminiImageClient {
	if strings.TrimSpace(model) == "" {
		model = defaultGeminiImageModel
	}
	model = strings.TrimPrefix(strings.TrimSpace(model), "models/")
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &GeminiImageClient{
		apiKey:   apiKey,
		model:    model,
		timeout:  timeout,
		uploader: uploader,
	}
}

// Name identifies the provider in chain diagnostics.
func (g *GeminiImageClient) Name() string { return "gemini-image" }

// Invoke requests a photorealistic render for the request's image prompt.
func (g *GeminiImageClient) Invoke(ctx context.Context, req design.Request) (Reference, error) {
	if g.uploader == nil {
		return Reference{}, chain.Rejected(fmt.Errorf("gemini-image: no media uploader configured"))
	}
	if strings.TrimSpace(g.apiKey) == "" {
		return Reference{}, chain.Rejected(fmt.Errorf("gemini-image: missing API key"))
	}

	childCtx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	client, err := genai.NewClient(childCtx, &genai.ClientConfig{
		APIKey: g.apiKey,
	})
	if err != nil {
		return Reference{}, fmt.Errorf("gemini-image: create client: %w", err)
	}

	prompt := prompts.BuildImagePrompt(req)
	resp, err := client.Models.GenerateContent(childCtx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return Reference{}, fmt.Errorf("gemini-image: generate: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return Reference{}, chain.Malformed(fmt.Errorf("gemini-image: response has no candidates"))
	}

	for _, part := range resp.Candidates[0].Content.Parts {
		if part.InlineData == nil || len(part.InlineData.Data) == 0 {
			continue
		}
		mimeType := part.InlineData.MIMEType
		if strings.TrimSpace(mimeType) == "" {
			mimeType = "image/png"
		}
		result, err := g.uploader.Upload(ctx, media.UploadInput{
			Filename:    "layout-render.png",
			ContentType: mimeType,
			Body:        bytes.NewReader(part.InlineData.Data),
			Size:        int64(len(part.InlineData.Data)),
		})
		if err != nil {
			return Reference{}, fmt.Errorf("gemini-image: upload render: %w", err)
		}
		return Reference{URL: result.URL}, nil
	}

	return Reference{}, chain.Malformed(fmt.Errorf("gemini-image: response has no inline image data"))
}
