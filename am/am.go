package am

// Config represents the wbapi configuration
type Config struct {
	Wikibase WikibaseConfig `mapstructure:"wikibase" toml:"wikibase" json:"wikibase" yaml:"wikibase"`
	HTTP     HTTPConfig     `mapstructure:"http" toml:"http" json:"http" yaml:"http"`
	Log      LogConfig      `mapstructure:"log" toml:"log" json:"log" yaml:"log"`
}

// WikibaseConfig configures the API session
type WikibaseConfig struct {
	Endpoint string `mapstructure:"endpoint" toml:"endpoint" json:"endpoint" yaml:"endpoint"` // api.php URL
	Username string `mapstructure:"username" toml:"username" json:"username" yaml:"username"`
	Password string `mapstructure:"password" toml:"password" json:"password" yaml:"password"` // Prefer WBAPI_WIKIBASE_PASSWORD
	Bot      bool   `mapstructure:"bot" toml:"bot" json:"bot" yaml:"bot"`                     // Send bot=1 on edits

	// Maxlag backpressure: threshold sent with every request (seconds of replication lag),
	// fixed wait between retries and total attempts per request.
	Maxlag                  int `mapstructure:"maxlag" toml:"maxlag" json:"maxlag" yaml:"maxlag"`
	MaxlagRetryDelaySeconds int `mapstructure:"maxlag_retry_delay_seconds" toml:"maxlag_retry_delay_seconds" json:"maxlag_retry_delay_seconds" yaml:"maxlag_retry_delay_seconds"`
	MaxlagAttempts          int `mapstructure:"maxlag_attempts" toml:"maxlag_attempts" json:"maxlag_attempts" yaml:"maxlag_attempts"`

	EditsPerMinute int `mapstructure:"edits_per_minute" toml:"edits_per_minute" json:"edits_per_minute" yaml:"edits_per_minute"` // 0 = unthrottled
}

// HTTPConfig configures the default transport
type HTTPConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds" toml:"timeout_seconds" json:"timeout_seconds" yaml:"timeout_seconds"`
	MaxRedirects   int    `mapstructure:"max_redirects" toml:"max_redirects" json:"max_redirects" yaml:"max_redirects"`
	BlockPrivateIP bool   `mapstructure:"block_private_ip" toml:"block_private_ip" json:"block_private_ip" yaml:"block_private_ip"` // Off by default: local wikibase installs are common
	UserAgent      string `mapstructure:"user_agent" toml:"user_agent" json:"user_agent" yaml:"user_agent"`                         // Empty = wbapi/<version>
}

// LogConfig configures structured logging
type LogConfig struct {
	JSON      bool `mapstructure:"json" toml:"json" json:"json" yaml:"json"`
	Verbosity int  `mapstructure:"verbosity" toml:"verbosity" json:"verbosity" yaml:"verbosity"`
}

// Default values
const (
	DefaultEndpoint                = "https://www.wikidata.org/w/api.php"
	DefaultMaxlag                  = 5
	DefaultMaxlagRetryDelaySeconds = 5
	DefaultMaxlagAttempts          = 3
	DefaultTimeoutSeconds          = 60
	DefaultMaxRedirects            = 10
)

// File system constants
const (
	DefaultDirPermissions  = 0755 // Standard directory permissions (rwxr-xr-x)
	DefaultFilePermissions = 0644 // Standard file permissions (rw-r--r--)
)

// Redacted returns a copy safe for display: the password is masked.
func (c Config) Redacted() Config {
	if c.Wikibase.Password != "" {
		c.Wikibase.Password = "********"
	}
	return c
}
