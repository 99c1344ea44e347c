package am

import (
	"net/url"

	"github.com/teranos/wikibase/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Endpoint is optional - empty defaults to Wikidata
	if c.Wikibase.Endpoint != "" {
		u, err := url.Parse(c.Wikibase.Endpoint)
		if err != nil {
			return errors.Wrapf(err, "wikibase.endpoint %q is not a valid URL", c.Wikibase.Endpoint)
		}
		if u.Scheme != "http" && u.Scheme != "https" {
			return errors.Newf("wikibase.endpoint must use http or https, got %q", u.Scheme)
		}
		if u.Host == "" {
			return errors.Newf("wikibase.endpoint %q has no host", c.Wikibase.Endpoint)
		}
	}

	// Maxlag: 0 = default, negative = invalid
	if c.Wikibase.Maxlag < 0 {
		return errors.Newf("wikibase.maxlag must be >= 0, got %d", c.Wikibase.Maxlag)
	}
	if c.Wikibase.MaxlagRetryDelaySeconds < 0 {
		return errors.Newf("wikibase.maxlag_retry_delay_seconds must be >= 0, got %d", c.Wikibase.MaxlagRetryDelaySeconds)
	}
	if c.Wikibase.MaxlagAttempts < 0 {
		return errors.Newf("wikibase.maxlag_attempts must be >= 0, got %d", c.Wikibase.MaxlagAttempts)
	}

	// Edit throttle: 0 = unthrottled
	if c.Wikibase.EditsPerMinute < 0 {
		return errors.Newf("wikibase.edits_per_minute must be >= 0, got %d", c.Wikibase.EditsPerMinute)
	}

	if c.HTTP.TimeoutSeconds < 0 {
		return errors.Newf("http.timeout_seconds must be >= 0, got %d", c.HTTP.TimeoutSeconds)
	}
	if c.HTTP.MaxRedirects < 0 {
		return errors.Newf("http.max_redirects must be >= 0, got %d", c.HTTP.MaxRedirects)
	}

	return nil
}

// ValidateCredentials checks that a login can be attempted
func (c *Config) ValidateCredentials() error {
	if c.Wikibase.Username == "" {
		return errors.WithHint(errors.New("wikibase.username is not set"),
			"set it in wbapi.toml or WBAPI_WIKIBASE_USERNAME")
	}
	if c.Wikibase.Password == "" {
		return errors.WithHint(errors.New("wikibase.password is not set"),
			"set WBAPI_WIKIBASE_PASSWORD")
	}
	return nil
}
