package config

import (
	"time"

	"github.com/spf13/viper"
)

// SetDefaults registers default values for every configuration key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")

	v.SetDefault("database.path", DefaultDatabasePath)

	v.SetDefault("matching.workers", 1)
	v.SetDefault("matching.checkpoint_interval", 100)

	v.SetDefault("columns.customer_keyword", "customer")
	v.SetDefault("columns.reference_keyword", "rpl")

	v.SetDefault("llm.temperature", 0.3)
	v.SetDefault("llm.max_tokens", 300)
	v.SetDefault("llm.rate_limit", 60)
	v.SetDefault("llm.cache_ttl", 15*time.Minute)
	v.SetDefault("llm.max_retries", 3)
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("sheets.spreadsheet_name", "RPL Match Results")
	v.SetDefault("sheets.token_file", "$HOME/.config/rplmatch/sheets-token.json")
}
