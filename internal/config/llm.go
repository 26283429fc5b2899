package config

import (
	"os"
	"strings"

	"github.com/Veraticus/rplmatch/internal/llm"
	"github.com/spf13/viper"
)

// LoadLLMConfig reads the summarizer's provider settings. The API key falls
// back to the provider's conventional environment variable. An empty
// Provider means summaries are disabled.
func LoadLLMConfig(v *viper.Viper) llm.Config {
	cfg := llm.Config{
		Provider:    strings.ToLower(v.GetString("llm.provider")),
		APIKey:      v.GetString("llm.api_key"),
		Model:       v.GetString("llm.model"),
		BaseURL:     v.GetString("llm.base_url"),
		Temperature: v.GetFloat64("llm.temperature"),
		MaxTokens:   v.GetInt("llm.max_tokens"),
		RateLimit:   v.GetInt("llm.rate_limit"),
		CacheTTL:    v.GetDuration("llm.cache_ttl"),
		MaxRetries:  v.GetInt("llm.max_retries"),
		Timeout:     v.GetDuration("llm.timeout"),
	}

	if cfg.APIKey == "" {
		switch cfg.Provider {
		case "openai":
			cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		case "anthropic":
			cfg.APIKey = os.Getenv("ANTHROPIC_API_KEY")
		}
	}

	return cfg
}
