package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Known provider names accepted in chain configuration.
var (
	TextProviders  = []string{"gemini", "openai"}
	ImageProviders = []string{"lexica", "dalle", "gemini-image", "imagen", "curated"}
)

// Config holds runtime configuration values.
type Config struct {
	Port        string
	DatabaseURL string

	// Timeout bounds each individual provider call.
	Timeout time.Duration

	// TextChain and ImageChain are the fallback priority orders.
	TextChain  []string
	ImageChain []string

	Gemini GeminiConfig
	OpenAI OpenAIConfig
	Imagen ImagenConfig
	Media  MediaConfig
}

// GeminiConfig carries Google Generative Language credentials.
type GeminiConfig struct {
	APIKey             string
	Model              string
	ImageModel         string
	ServiceAccountJSON string
}

// OpenAIConfig carries OpenAI credentials for chat and image generation.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	ImageModel string
}

// ImagenConfig carries Vertex AI Imagen settings.
type ImagenConfig struct {
	ProjectID          string
	Location           string
	Model              string
	APIKey             string
	ServiceAccount     string
	ServiceAccountJSON string
}

// MediaConfig describes S3/media related configuration.
type MediaConfig struct {
	Disabled       bool
	Bucket         string
	Region         string
	Endpoint       string
	PublicURL      string
	KeyPrefix      string
	ForcePathStyle bool
}

// Load reads configuration from the environment (and .env when present) and
// validates it. Chain misconfiguration is rejected here, never at request time.
func Load() (Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := Config{
		Port:        getenv("APP_PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Timeout:     getenvDuration("PROVIDER_TIMEOUT", 30*time.Second),
		TextChain:   splitChain(getenv("TEXT_PROVIDER_CHAIN", "gemini,openai")),
		ImageChain:  splitChain(getenv("IMAGE_PROVIDER_CHAIN", "lexica,dalle,curated")),
		Gemini: GeminiConfig{
			APIKey:             os.Getenv("GEMINI_API_KEY"),
			Model:              getenv("GEMINI_MODEL", "gemini-1.5-flash-latest"),
			ImageModel:         getenv("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
			ServiceAccountJSON: os.Getenv("GEMINI_SERVICE_ACCOUNT_JSON"),
		},
		OpenAI: OpenAIConfig{
			APIKey:     os.Getenv("OPENAI_API_KEY"),
			Model:      getenv("OPENAI_MODEL", "gpt-4"),
			ImageModel: getenv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		},
		Imagen: ImagenConfig{
			ProjectID:          os.Getenv("IMAGEN_PROJECT_ID"),
			Location:           getenv("IMAGEN_LOCATION", "us-central1"),
			Model:              getenv("IMAGEN_MODEL", "imagegeneration@006"),
			APIKey:             os.Getenv("IMAGEN_API_KEY"),
			ServiceAccount:     os.Getenv("IMAGEN_SERVICE_ACCOUNT"),
			ServiceAccountJSON: os.Getenv("IMAGEN_SERVICE_ACCOUNT_JSON"),
		},
		Media: MediaConfig{
			Disabled:       getenvBool("MEDIA_UPLOADS_DISABLED", false),
			Bucket:         os.Getenv("S3_BUCKET"),
			Region:         os.Getenv("S3_REGION"),
			Endpoint:       os.Getenv("S3_ENDPOINT"),
			PublicURL:      os.Getenv("S3_PUBLIC_URL"),
			KeyPrefix:      strings.Trim(os.Getenv("S3_KEY_PREFIX"), "/"),
			ForcePathStyle: getenvBool("S3_FORCE_PATH_STYLE", false),
		},
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks the settings every binary relies on.
func (c Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("APP_PORT cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("PROVIDER_TIMEOUT must be positive")
	}
	return nil
}

// ValidateChains rejects configurations that would leave a fallback chain
// unable to run. The API server calls this at startup so an empty or
// credential-less chain can never surface as a request-time failure.
func (c Config) ValidateChains() error {
	if len(c.TextChain) == 0 {
		return fmt.Errorf("TEXT_PROVIDER_CHAIN must name at least one provider")
	}
	if len(c.ImageChain) == 0 {
		return fmt.Errorf("IMAGE_PROVIDER_CHAIN must name at least one provider")
	}

	for _, name := range c.TextChain {
		if !knownProvider(TextProviders, name) {
			return fmt.Errorf("unknown text provider %q (supported: %s)", name, strings.Join(TextProviders, ", "))
		}
		if err := c.providerCredentials(name); err != nil {
			return err
		}
	}
	for _, name := range c.ImageChain {
		if !knownProvider(ImageProviders, name) {
			return fmt.Errorf("unknown image provider %q (supported: %s)", name, strings.Join(ImageProviders, ", "))
		}
		if err := c.providerCredentials(name); err != nil {
			return err
		}
	}

	return nil
}

func (c Config) providerCredentials(name string) error {
	switch name {
	case "gemini":
		if c.Gemini.APIKey == "" && c.Gemini.ServiceAccountJSON == "" {
			return fmt.Errorf("provider %q requires GEMINI_API_KEY or GEMINI_SERVICE_ACCOUNT_JSON", name)
		}
	case "gemini-image":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("provider %q requires GEMINI_API_KEY", name)
		}
	case "openai", "dalle":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("provider %q requires OPENAI_API_KEY", name)
		}
	case "imagen":
		if c.Imagen.ProjectID == "" {
			return fmt.Errorf("provider %q requires IMAGEN_PROJECT_ID", name)
		}
	}
	// lexica and curated need no credentials.
	return nil
}

func knownProvider(known []string, name string) bool {
	for _, k := range known {
		if k == name {
			return true
		}
	}
	return false
}

func splitChain(raw string) []string {
	chunks := strings.Split(raw, ",")
	names := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		if trimmed := strings.ToLower(strings.TrimSpace(chunk)); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return fallback
}

func getenvBool(key string, fallback bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}

	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}

	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return fallback
}
