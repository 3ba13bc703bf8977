package phonetic

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Config holds the external G2P settings.
type Config struct {
	Provider string // "none", "openai" or "gemini"

	OpenAIKey   string
	OpenAIModel string

	GeminiKey   string
	GeminiModel string

	Timeout         time.Duration // per word
	BreakerFailures uint32        // consecutive failures before the breaker opens
	BreakerTimeout  time.Duration // open period before a probe is allowed
}

// DefaultConfig returns the default configuration. No external model is
// used unless a provider is set.
func DefaultConfig() *Config {
	return &Config{
		Provider:        "none",
		OpenAIModel:     "gpt-4o-mini",
		GeminiModel:     "gemini-2.0-flash",
		Timeout:         10 * time.Second,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

// Model is the result of the one-time model initialization. Available is
// false whenever the built-in table must be used.
type Model struct {
	G2P       G2P
	Available bool
}

// LoadModel initializes the configured external model once. A missing key,
// an unknown provider or a client error is logged and results in an
// unavailable model, which makes New pick the fallback for the rest of the
// process.
func LoadModel(ctx context.Context, config *Config, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "phonetic")

	if config == nil {
		config = DefaultConfig()
	}

	model, err := newModel(ctx, config)
	if err != nil {
		logger.Warn("external g2p unavailable, using builtin transcriber",
			slog.String("provider", config.Provider),
			slog.Any("error", err))
		return Model{}
	}
	if model == nil {
		logger.Info("external g2p disabled, using builtin transcriber")
		return Model{}
	}

	logger.Info("external g2p loaded", slog.String("model", model.Name()))
	return Model{
		G2P:       NewBreakerModel(model, config.BreakerFailures, config.BreakerTimeout, logger),
		Available: true,
	}
}

// newModel returns nil without error when no provider is configured.
func newModel(ctx context.Context, config *Config) (G2P, error) {
	switch config.Provider {
	case "", "none":
		return nil, nil

	case "openai":
		if config.OpenAIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return NewOpenAIModel(config.OpenAIKey, config.OpenAIModel, config.Timeout), nil

	case "gemini":
		model, err := NewGeminiModel(ctx, config.GeminiKey, config.GeminiModel, config.Timeout)
		if err != nil {
			return nil, err
		}
		return model, nil

	default:
		return nil, fmt.Errorf("unknown g2p provider: %s", config.Provider)
	}
}
