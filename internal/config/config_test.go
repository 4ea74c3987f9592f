package config

import (
	"strings"
	"testing"
	"time"
)

func chainConfig() Config {
	return Config{
		Port:       "8080",
		Timeout:    30 * time.Second,
		TextChain:  []string{"gemini", "openai"},
		ImageChain: []string{"lexica", "dalle", "curated"},
		Gemini:     GeminiConfig{APIKey: "g-key"},
		OpenAI:     OpenAIConfig{APIKey: "o-key"},
	}
}

func TestValidate(t *testing.T) {
	cfg := chainConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}

	cfg.Port = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty port should be rejected")
	}

	cfg = chainConfig()
	cfg.Timeout = 0
	if err := cfg.Validate(); err == nil {
		t.Error("non-positive timeout should be rejected")
	}
}

func TestValidateChains(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		wantText string
	}{
		{
			name:   "valid chains",
			mutate: func(*Config) {},
		},
		{
			name:     "empty text chain",
			mutate:   func(c *Config) { c.TextChain = nil },
			wantText: "TEXT_PROVIDER_CHAIN",
		},
		{
			name:     "empty image chain",
			mutate:   func(c *Config) { c.ImageChain = nil },
			wantText: "IMAGE_PROVIDER_CHAIN",
		},
		{
			name:     "unknown text provider",
			mutate:   func(c *Config) { c.TextChain = []string{"claude"} },
			wantText: `unknown text provider "claude"`,
		},
		{
			name:     "unknown image provider",
			mutate:   func(c *Config) { c.ImageChain = []string{"midjourney"} },
			wantText: `unknown image provider "midjourney"`,
		},
		{
			name: "gemini without credentials",
			mutate: func(c *Config) {
				c.Gemini = GeminiConfig{}
			},
			wantText: "GEMINI_API_KEY or GEMINI_SERVICE_ACCOUNT_JSON",
		},
		{
			name: "gemini with service account only",
			mutate: func(c *Config) {
				c.Gemini = GeminiConfig{ServiceAccountJSON: `{"type":"service_account"}`}
			},
		},
		{
			name: "openai without key",
			mutate: func(c *Config) {
				c.OpenAI = OpenAIConfig{}
			},
			wantText: "OPENAI_API_KEY",
		},
		{
			name: "imagen without project",
			mutate: func(c *Config) {
				c.ImageChain = []string{"imagen"}
			},
			wantText: "IMAGEN_PROJECT_ID",
		},
		{
			name: "credential-free image chain",
			mutate: func(c *Config) {
				c.TextChain = []string{"gemini"}
				c.OpenAI = OpenAIConfig{}
				c.ImageChain = []string{"lexica", "curated"}
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := chainConfig()
			tc.mutate(&cfg)

			err := cfg.ValidateChains()
			if tc.wantText == "" {
				if err != nil {
					t.Fatalf("ValidateChains() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.wantText) {
				t.Errorf("error = %q, want it to contain %q", err, tc.wantText)
			}
		})
	}
}

func TestSplitChain(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"gemini,openai", []string{"gemini", "openai"}},
		{" Gemini , OPENAI ", []string{"gemini", "openai"}},
		{"lexica,,curated,", []string{"lexica", "curated"}},
		{"", nil},
		{" , ", nil},
	}

	for _, tc := range tests {
		got := splitChain(tc.in)
		if len(got) != len(tc.want) {
			t.Errorf("splitChain(%q) = %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("splitChain(%q)[%d] = %q, want %q", tc.in, i, got[i], tc.want[i])
			}
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_PORT", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("PROVIDER_TIMEOUT", "")
	t.Setenv("TEXT_PROVIDER_CHAIN", "")
	t.Setenv("IMAGE_PROVIDER_CHAIN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != "8080" {
		t.Errorf("port = %q, want the 8080 default", cfg.Port)
	}
	if cfg.Timeout != 30*time.Second {
		t.Errorf("timeout = %v, want 30s default", cfg.Timeout)
	}
	if len(cfg.TextChain) != 2 || cfg.TextChain[0] != "gemini" {
		t.Errorf("text chain = %v, want the gemini,openai default", cfg.TextChain)
	}
	if len(cfg.ImageChain) != 3 || cfg.ImageChain[2] != "curated" {
		t.Errorf("image chain = %v, want the lexica,dalle,curated default", cfg.ImageChain)
	}
}

func TestLoadParsesChainAndTimeout(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT", "45s")
	t.Setenv("TEXT_PROVIDER_CHAIN", "openai")
	t.Setenv("IMAGE_PROVIDER_CHAIN", "curated")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Timeout != 45*time.Second {
		t.Errorf("timeout = %v, want 45s", cfg.Timeout)
	}
	if len(cfg.TextChain) != 1 || cfg.TextChain[0] != "openai" {
		t.Errorf("text chain = %v", cfg.TextChain)
	}
	if len(cfg.ImageChain) != 1 || cfg.ImageChain[0] != "curated" {
		t.Errorf("image chain = %v", cfg.ImageChain)
	}
}
