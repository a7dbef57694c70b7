// Package config provides configuration management.
// Application settings live in a JSON file; SMTP credentials come
// from the environment so secrets never land in the config file.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/caarlos0/env/v9"

	"labquote/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server"`

	// Catalog contains pricing catalog settings
	Catalog CatalogConfig `json:"catalog"`

	// Delivery contains confirmation delivery settings
	Delivery DeliveryConfig `json:"delivery"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// ListenAddr is the address the server binds to
	ListenAddr string `json:"listen_addr"`
}

// CatalogConfig contains pricing catalog settings
type CatalogConfig struct {
	// Path is the catalog document (.json or .hcl)
	Path string `json:"path"`

	// DefaultServiceKey is the service quoted when a request does
	// not name one
	DefaultServiceKey string `json:"default_service_key"`
}

// DeliveryConfig contains confirmation delivery settings
type DeliveryConfig struct {
	// Enabled turns confirmation email delivery on
	Enabled bool `json:"enabled"`

	// MaxRetries bounds delivery retry attempts
	MaxRetries int `json:"max_retries"`
}

// SMTP contains mail transport settings, read from the environment
type SMTP struct {
	Host     string `env:"SMTP_HOST,required"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	User     string `env:"SMTP_USER,required"`
	Password string `env:"SMTP_PASS,required"`

	// From is the sender address on confirmations
	From string `env:"EMAIL_FROM,required"`

	// SupportBCC receives a copy of every confirmation
	SupportBCC string `env:"EMAIL_SUPPORT"`
}

// LoadSMTP reads SMTP settings from the environment
func LoadSMTP() (*SMTP, error) {
	var cfg SMTP
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse SMTP config: %w", err)
	}
	return &cfg, nil
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			ListenAddr: ":8080",
		},
		Catalog: CatalogConfig{
			Path:              "service-config.json",
			DefaultServiceKey: "cytoscan-750k-ruo",
		},
		Delivery: DeliveryConfig{
			Enabled:    false,
			MaxRetries: 3,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	config := Default()
	if err := json.Unmarshal(data, config); err != nil {
		return nil, err
	}

	return config, nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}
