package cli

import (
	"log/slog"
	"strings"

	"github.com/spf13/viper"

	"codeberg.org/snonux/rapwiz/internal/lyrics"
	"codeberg.org/snonux/rapwiz/internal/phonetic"
	"codeberg.org/snonux/rapwiz/internal/server"
)

// G2PConfig builds the external phoneme model configuration from viper
func G2PConfig() *phonetic.Config {
	config := phonetic.DefaultConfig()

	config.Provider = strings.ToLower(viper.GetString("g2p.provider"))
	config.OpenAIKey = GetOpenAIKey()
	config.GeminiKey = GetGeminiKey()

	if model := viper.GetString("g2p.openai_model"); model != "" {
		config.OpenAIModel = model
	}
	if model := viper.GetString("g2p.gemini_model"); model != "" {
		config.GeminiModel = model
	}
	if timeout := viper.GetDuration("g2p.timeout"); timeout > 0 {
		config.Timeout = timeout
	}
	if failures := viper.GetUint32("g2p.breaker_failures"); failures > 0 {
		config.BreakerFailures = failures
	}
	if timeout := viper.GetDuration("g2p.breaker_timeout"); timeout > 0 {
		config.BreakerTimeout = timeout
	}

	return config
}

// AnalyzerOptions returns the analysis options configured in viper
func AnalyzerOptions(logger *slog.Logger) []lyrics.Option {
	return []lyrics.Option{
		lyrics.WithThreshold(viper.GetFloat64("analysis.threshold")),
		lyrics.WithStripNiqqud(viper.GetBool("analysis.strip_niqqud")),
		lyrics.WithLogger(logger),
	}
}

// ServerConfig builds the HTTP server configuration from viper
func ServerConfig() server.Config {
	config := server.DefaultConfig()

	if host := viper.GetString("server.host"); host != "" {
		config.Host = host
	}
	if port := viper.GetInt("server.port"); port > 0 {
		config.Port = port
	}
	if timeout := viper.GetDuration("server.shutdown_timeout"); timeout > 0 {
		config.ShutdownTimeout = timeout
	}
	if limit := viper.GetInt("server.rate_limit"); limit > 0 {
		config.RateLimit = limit
	}
	if origins := parseOrigins(viper.GetStringSlice("cors.allowed_origins")); len(origins) > 0 {
		config.AllowedOrigins = origins
	}

	return config
}

// parseOrigins accepts both YAML lists and comma separated strings from
// the environment.
func parseOrigins(values []string) []string {
	var origins []string
	for _, v := range values {
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	return origins
}
