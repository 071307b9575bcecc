// Package config loads and validates application configuration from
// environment variables and an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values for the API server.
// Values are populated by Load; environment variables win over the file.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// TrustedUserHeader and TrustedEmailHeader name the headers an
	// authenticating reverse proxy sets. Defaults: Remote-User, Remote-Email.
	TrustedUserHeader  string
	TrustedEmailHeader string

	Geocoder Geocoder
}

// Geocoder configures the Nominatim client.
type Geocoder struct {
	URL       string
	Language  string
	UserAgent string
	Timeout   time.Duration
	Retries   uint64
	CacheTTL  time.Duration
}

// defaults are applied before the file and the environment.
var defaults = map[string]any{
	"port":                 "8080",
	"log_level":            "info",
	"cors_origins":         "http://localhost:5173",
	"max_body_bytes":       int64(1 << 20),
	"trusted_user_header":  "Remote-User",
	"trusted_email_header": "Remote-Email",
	"geocoder_url":         "https://nominatim.openstreetmap.org",
	"geocoder_language":    "en-US",
	"geocoder_user_agent":  "travel-journal/1.0",
	"geocoder_timeout":     "10s",
	"geocoder_retries":     2,
	"geocoder_cache_ttl":   "24h",
}

// Load reads configuration and returns a Config. path names an optional YAML
// file whose keys are the lowercase environment variable names
// (database_url, cors_origins, ...); pass "" to use the environment only.
// Returns an error listing any required values that are not set.
func Load(path string) (Config, error) {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	// Every key maps to the upper-cased environment variable: database_url → DATABASE_URL.
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	cfg := Config{
		Port:               v.GetString("port"),
		DatabaseURL:        v.GetString("database_url"),
		LogLevel:           v.GetString("log_level"),
		CORSOrigins:        stringList(v, "cors_origins"),
		MaxBodyBytes:       v.GetInt64("max_body_bytes"),
		TrustedUserHeader:  v.GetString("trusted_user_header"),
		TrustedEmailHeader: v.GetString("trusted_email_header"),
		Geocoder: Geocoder{
			URL:       strings.TrimRight(v.GetString("geocoder_url"), "/"),
			Language:  v.GetString("geocoder_language"),
			UserAgent: v.GetString("geocoder_user_agent"),
			Timeout:   v.GetDuration("geocoder_timeout"),
			Retries:   v.GetUint64("geocoder_retries"),
			CacheTTL:  v.GetDuration("geocoder_cache_ttl"),
		},
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if c.TrustedUserHeader == "" {
		errs = append(errs, errors.New("TRUSTED_USER_HEADER must not be empty"))
	}
	if c.Geocoder.Timeout <= 0 {
		errs = append(errs, errors.New("GEOCODER_TIMEOUT must be positive"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// stringList accepts either a YAML list or a comma-separated string.
func stringList(v *viper.Viper, key string) []string {
	if s, ok := v.Get(key).(string); ok {
		return splitCSV(s)
	}
	return v.GetStringSlice(key)
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
