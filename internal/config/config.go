// Package config loads the order-client configuration from the
// environment or a YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DefaultBaseURL points at the public order service.
const DefaultBaseURL = "https://norma.nomoreparties.space/api"

// Config holds every knob the client layer exposes.
type Config struct {
	// BaseURL is the service root for HTTP calls.
	BaseURL string `env:"BURGER_API_URL" yaml:"base_url"`
	// FeedSocketURL is the live order-feed websocket endpoint. Empty
	// disables the socket; the UI falls back to polling FetchFeed.
	FeedSocketURL string `env:"BURGER_FEED_WS_URL" yaml:"feed_socket_url"`
	// HTTPTimeout bounds each request round-trip.
	HTTPTimeout time.Duration `env:"BURGER_HTTP_TIMEOUT,default=15s" yaml:"-"`
	// RateLimit caps outgoing requests per second; zero disables.
	RateLimit float64 `env:"BURGER_RATE_LIMIT" yaml:"rate_limit"`
	// RateBurst is the limiter burst size.
	RateBurst int `env:"BURGER_RATE_BURST,default=1" yaml:"rate_burst"`
	// CredentialsFile, when set, persists the refresh token across runs.
	CredentialsFile string `env:"BURGER_CREDENTIALS_FILE" yaml:"credentials_file"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"BURGER_LOG_LEVEL,default=info" yaml:"log_level"`
}

// Load reads configuration from the environment, picking up a local .env
// file if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("config: decode environment: %w", err)
	}
	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

// LoadFile reads configuration from a YAML file. Unset fields get the same
// defaults as Load.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg.applyDefaults()
	return &cfg, cfg.validate()
}

// UnmarshalYAML accepts Go duration strings ("5s") for http_timeout, which
// yaml.v3 does not decode into time.Duration on its own.
func (c *Config) UnmarshalYAML(value *yaml.Node) error {
	type plain Config
	if err := value.Decode((*plain)(c)); err != nil {
		return err
	}
	var aux struct {
		HTTPTimeout string `yaml:"http_timeout"`
	}
	if err := value.Decode(&aux); err != nil {
		return err
	}
	if aux.HTTPTimeout != "" {
		d, err := time.ParseDuration(aux.HTTPTimeout)
		if err != nil {
			return fmt.Errorf("http_timeout: %w", err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.HTTPTimeout <= 0 {
		c.HTTPTimeout = 15 * time.Second
	}
	if c.RateBurst < 1 {
		c.RateBurst = 1
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *Config) validate() error {
	if c.RateLimit < 0 {
		return errors.New("config: rate_limit must not be negative")
	}
	return nil
}
