package am

import (
	"github.com/spf13/viper"
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	// Wikibase session defaults
	v.SetDefault("wikibase.endpoint", DefaultEndpoint)
	v.SetDefault("wikibase.bot", false)
	v.SetDefault("wikibase.maxlag", DefaultMaxlag)                                      // Wikimedia recommends 5
	v.SetDefault("wikibase.maxlag_retry_delay_seconds", DefaultMaxlagRetryDelaySeconds) // Fixed interval, no backoff
	v.SetDefault("wikibase.maxlag_attempts", DefaultMaxlagAttempts)
	v.SetDefault("wikibase.edits_per_minute", 0)

	// Transport defaults
	v.SetDefault("http.timeout_seconds", DefaultTimeoutSeconds)
	v.SetDefault("http.max_redirects", DefaultMaxRedirects)
	v.SetDefault("http.block_private_ip", false)

	// Logging defaults
	v.SetDefault("log.json", false)
	v.SetDefault("log.verbosity", 0)
}

// BindSensitiveEnvVars explicitly binds sensitive configuration to environment variables
func BindSensitiveEnvVars(v *viper.Viper) {
	v.BindEnv("wikibase.username", "WBAPI_WIKIBASE_USERNAME")
	v.BindEnv("wikibase.password", "WBAPI_WIKIBASE_PASSWORD")
	v.BindEnv("wikibase.endpoint", "WBAPI_WIKIBASE_ENDPOINT")
}

// GetEndpoint returns the configured endpoint, falling back to Wikidata
func (c *Config) GetEndpoint() string {
	if c.Wikibase.Endpoint == "" {
		return DefaultEndpoint
	}
	return c.Wikibase.Endpoint
}

// GetMaxlag returns the maxlag threshold (default: 5)
func (c *Config) GetMaxlag() int {
	if c.Wikibase.Maxlag == 0 {
		return DefaultMaxlag
	}
	return c.Wikibase.Maxlag
}

// GetMaxlagAttempts returns the total attempts per request (default: 3)
func (c *Config) GetMaxlagAttempts() int {
	if c.Wikibase.MaxlagAttempts == 0 {
		return DefaultMaxlagAttempts
	}
	return c.Wikibase.MaxlagAttempts
}

// GetMaxlagRetryDelaySeconds returns the wait between maxlag retries (default: 5)
func (c *Config) GetMaxlagRetryDelaySeconds() int {
	if c.Wikibase.MaxlagRetryDelaySeconds == 0 {
		return DefaultMaxlagRetryDelaySeconds
	}
	return c.Wikibase.MaxlagRetryDelaySeconds
}

// GetTimeoutSeconds returns the HTTP timeout (default: 60)
func (c *Config) GetTimeoutSeconds() int {
	if c.HTTP.TimeoutSeconds == 0 {
		return DefaultTimeoutSeconds
	}
	return c.HTTP.TimeoutSeconds
}

// GetMaxRedirects returns the redirect cap (default: 10)
func (c *Config) GetMaxRedirects() int {
	if c.HTTP.MaxRedirects == 0 {
		return DefaultMaxRedirects
	}
	return c.HTTP.MaxRedirects
}
