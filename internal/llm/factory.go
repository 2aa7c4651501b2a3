package llm

import (
	"context"
	"fmt"

	"github.com/abhisek/skillgauge/internal/store"
)

// NewProvider creates a Provider from configuration.
// It returns the provider wrapped with retry and event-logging middleware.
// Initialization failures (missing keys, unknown provider) surface here,
// at startup, rather than on the first oracle call.
func NewProvider(ctx context.Context, cfg Config, eventLog store.EventLog) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "mock":
		return NewMockProvider(), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	// Wrap with middleware: caller → timeout → retry → logging → base
	wrapped := base
	if eventLog != nil {
		wrapped = WithEventLog(wrapped, eventLog)
	}
	wrapped = WithRetry(wrapped, cfg.Retry)
	if cfg.Timeout > 0 {
		wrapped = WithTimeout(wrapped, cfg.Timeout)
	}
	return wrapped, nil
}

// NewProviderWithFallback builds a provider from cfg, falling back to
// standard API key discovery when cfg fails validation. This is the one
// place the discovery order applies.
func NewProviderWithFallback(ctx context.Context, cfg Config, eventLog store.EventLog) (Provider, error) {
	if cfg.Validate() != nil {
		if discovered, ok := DiscoverConfig(); ok {
			cfg = discovered
		}
	}
	return NewProvider(ctx, cfg, eventLog)
}

// NewProviderFromEnv builds a provider from SKILLGAUGE_* env vars, falling
// back to standard API key discovery when no provider is selected.
func NewProviderFromEnv(ctx context.Context, eventLog store.EventLog) (Provider, error) {
	return NewProviderWithFallback(ctx, ConfigFromEnv(), eventLog)
}
