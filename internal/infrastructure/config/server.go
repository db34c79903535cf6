package config

import "time"

// ServerConfig holds the HTTP evaluation API configuration
type ServerConfig struct {
	// Listen address, e.g. ":8080"
	Address string `mapstructure:"address" validate:"required"`

	// PID file guarding against a second server on the same host
	PIDFile string `mapstructure:"pid_file"`

	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// Rate limiting settings
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}
