package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds everything one run needs: where to scrape from, where to
// persist to, and how the process reports on itself.
type Config struct {
	BaseURL      string
	DatabasePath string
	Timeout      time.Duration
	UserAgent    string
	MetricsAddr  string
	Verbose      bool
}

// DefaultConfig returns defaults for the demo target. A bare invocation of
// the binary runs end to end with these values.
func DefaultConfig() *Config {
	return &Config{
		BaseURL:      "http://books.toscrape.com/",
		DatabasePath: "books.db",
		Timeout:      15 * time.Second,
		UserAgent:    "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/117.0.0.0 Safari/537.36",
		MetricsAddr:  "",
		Verbose:      false,
	}
}

// Validate ensures all configuration values are coherent.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL cannot be empty")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}
	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host")
	}

	if c.DatabasePath == "" {
		return fmt.Errorf("database path cannot be empty")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.UserAgent == "" {
		return fmt.Errorf("user agent cannot be empty")
	}

	return nil
}

// EnvString reports the environment variable's value and whether it is set
// to a non-empty string.
func EnvString(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	return v, ok && v != ""
}

// EnvDuration parses the environment variable as a duration ("30s", "2m").
// The boolean reports whether the variable is set; a set but malformed value
// is an error for the caller to surface.
func EnvDuration(key string) (time.Duration, bool, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return 0, false, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, true, err
	}
	return d, true, nil
}
