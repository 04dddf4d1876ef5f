package imagegen

import (
	"errors"
	"fmt"

	"github.com/KirkDiggler/promptgen/internal/seed"
	"github.com/caarlos0/env/v11"
)

const (
	ProviderPlaceholder = "placeholder"
	ProviderOpenAI      = "openai"
)

// ErrMissingAPIKey is returned when the openai provider is selected without a key
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY is required for the openai image provider")

// Config selects and configures the image provider
type Config struct {
	Provider        string `env:"PROMPTGEN_IMAGE_PROVIDER"    envDefault:"placeholder"`
	OpenAIAPIKey    string `env:"OPENAI_API_KEY"`
	OpenAIBaseURL   string `env:"OPENAI_BASE_URL"`
	ImageModel      string `env:"PROMPTGEN_IMAGE_MODEL"       envDefault:"dall-e-3"`
	ImageSize       string `env:"PROMPTGEN_IMAGE_SIZE"        envDefault:"1024x1024"`
	ChatModel       string `env:"PROMPTGEN_CHAT_MODEL"        envDefault:"gpt-4o-mini"`
	PlaceholderPath string `env:"PROMPTGEN_PLACEHOLDER_IMAGE"`
	Seed            int64  `env:"PROMPTGEN_SEED"`
}

// LoadConfigFromEnv reads the provider configuration from the environment
func LoadConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// New builds the generator named by cfg.Provider
func New(cfg Config) (Generator, error) {
	composer := seed.New(&seed.Config{Seed: cfg.Seed})

	switch cfg.Provider {
	case "", ProviderPlaceholder:
		return NewPlaceholder(&PlaceholderConfig{
			Path:     cfg.PlaceholderPath,
			Composer: composer,
		})
	case ProviderOpenAI:
		if cfg.OpenAIAPIKey == "" {
			return nil, ErrMissingAPIKey
		}
		return NewOpenAI(&OpenAIConfig{
			APIKey:     cfg.OpenAIAPIKey,
			BaseURL:    cfg.OpenAIBaseURL,
			ImageModel: cfg.ImageModel,
			ImageSize:  cfg.ImageSize,
			ChatModel:  cfg.ChatModel,
			Composer:   composer,
		})
	default:
		return nil, fmt.Errorf("unknown image provider %q", cfg.Provider)
	}
}
