package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"homedesignai/internal/chain"
	"homedesignai/internal/config"
	"homedesignai/internal/events"
	"homedesignai/internal/image"
	"homedesignai/internal/layout"
	"homedesignai/internal/layouts"
	"homedesignai/internal/llm"
	"homedesignai/internal/media"
	"homedesignai/internal/server"
	"homedesignai/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ValidateChains(); err != nil {
		log.Fatalf("invalid provider configuration: %v", err)
	}

	ctx := context.Background()
	store, err := storage.NewStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to init store: %v", err)
	}
	defer store.Close()

	uploader, err := media.NewUploader(ctx, media.Config{
		Disabled:       cfg.Media.Disabled,
		Bucket:         cfg.Media.Bucket,
		Region:         cfg.Media.Region,
		Endpoint:       cfg.Media.Endpoint,
		PublicURL:      cfg.Media.PublicURL,
		KeyPrefix:      cfg.Media.KeyPrefix,
		ForcePathStyle: cfg.Media.ForcePathStyle,
	})
	if err != nil {
		log.Fatalf("failed to init media uploader: %v", err)
	}

	var mediaFS http.Handler
	if local, ok := uploader.(*media.LocalUploader); ok {
		mediaFS = http.FileServer(http.Dir(local.BaseDir))
		log.Println("media uploader: using local storage (S3 config missing)")
	}

	textChain, err := buildTextChain(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to build text chain: %v", err)
	}
	imageChain := buildImageChain(cfg, uploader)

	eventBroker := events.NewBroker()

	orchestrator, err := layout.New(textChain, imageChain, eventBroker)
	if err != nil {
		log.Fatalf("failed to wire orchestrator: %v", err)
	}
	log.Printf("text chain: %v, image chain: %v", cfg.TextChain, cfg.ImageChain)

	layoutHandler := layouts.Handler{
		Store:        store,
		Orchestrator: orchestrator,
		Events:       eventBroker,
	}

	staticFS := http.FileServer(http.Dir("web"))
	srv := server.New(cfg.Port, layoutHandler, staticFS, mediaFS)

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-shutdownChan
		log.Println("shutting down server...")
		if err := srv.Close(); err != nil {
			log.Printf("server close error: %v", err)
		}
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server failed: %v", err)
	}
}

func buildTextChain(ctx context.Context, cfg config.Config) ([]chain.Provider[string], error) {
	providers := make([]chain.Provider[string], 0, len(cfg.TextChain))
	for _, name := range cfg.TextChain {
		switch name {
		case "gemini":
			opts := []llm.GeminiOption{}
			if cfg.Gemini.ServiceAccountJSON != "" {
				ts, err := serviceAccountTokenSource(ctx, cfg.Gemini.ServiceAccountJSON)
				if err != nil {
					return nil, err
				}
				opts = append(opts, llm.WithGeminiTokenSource(ts))
			}
			client := llm.NewGeminiClient(cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Timeout, opts...)
			providers = append(providers, llm.NewTextProvider("gemini", client))
		case "openai":
			client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, cfg.Timeout)
			providers = append(providers, llm.NewTextProvider("openai", client))
		}
	}
	return providers, nil
}

func buildImageChain(cfg config.Config, uploader media.Uploader) []chain.Provider[image.Reference] {
	providers := make([]chain.Provider[image.Reference], 0, len(cfg.ImageChain))
	for _, name := range cfg.ImageChain {
		switch name {
		case "lexica":
			providers = append(providers, image.NewLexicaClient(cfg.Timeout))
		case "dalle":
			providers = append(providers, image.NewDalleClient(cfg.OpenAI.APIKey, cfg.OpenAI.ImageModel, cfg.Timeout))
		case "gemini-image":
			providers = append(providers, image.NewGeminiImageClient(cfg.Gemini.APIKey, cfg.Gemini.ImageModel, cfg.Timeout, uploader))
		case "imagen":
			providers = append(providers, image.NewVertexImagen(image.VertexImagenConfig{
				ProjectID:          cfg.Imagen.ProjectID,
				Location:           cfg.Imagen.Location,
				Model:              cfg.Imagen.Model,
				APIKey:             cfg.Imagen.APIKey,
				ServiceAccount:     cfg.Imagen.ServiceAccount,
				ServiceAccountJSON: cfg.Imagen.ServiceAccountJSON,
			}, uploader))
		case "curated":
			providers = append(providers, image.NewCuratedLibrary())
		}
	}
	return providers
}

func serviceAccountTokenSource(ctx context.Context, serviceAccountJSON string) (oauth2.TokenSource, error) {
	jwtConfig, err := google.JWTConfigFromJSON([]byte(serviceAccountJSON), "https://www.googleapis.com/auth/cloud-platform")
	if err != nil {
		return nil, err
	}
	return jwtConfig.TokenSource(ctx), nil
}
