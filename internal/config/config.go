package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Feed    FeedConfig    `mapstructure:"feed" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// BackendConfig describes how to reach the profile backend that serves the
// feed and records decisions.
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Token is sent as a bearer token. Empty means unauthenticated requests.
	Token          string        `mapstructure:"token"`
	Timeout        time.Duration `mapstructure:"timeout" validate:"gt=0"`
	MaxRetries     uint64        `mapstructure:"max_retries" validate:"lte=10"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay" validate:"gt=0"`
}

// FeedConfig tunes the swipe engine.
type FeedConfig struct {
	SwipeThreshold       float64       `mapstructure:"swipe_threshold" validate:"gt=0"`
	WindowSize           int           `mapstructure:"window_size" validate:"gte=1,lte=10"`
	SettleDuration       time.Duration `mapstructure:"settle_duration" validate:"gte=0"`
	LoadTimeout          time.Duration `mapstructure:"load_timeout" validate:"gte=0"`
	NotificationCapacity int           `mapstructure:"notification_capacity" validate:"gte=1,lte=1000"`
}
