// Package config loads server settings from flags, environment variables
// and an optional config file, following the teacher's viper wiring
// (config.go) with the field set narrowed to what this server actually
// exposes.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all tunables for the server.
type Config struct {
	// Server settings
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	MaxConnections int    `mapstructure:"max_connections"`
	DatabaseCount  int    `mapstructure:"databases"`

	// Logging
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Advanced
	TCPKeepAlive bool          `mapstructure:"tcp_keepalive"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DefaultConfig matches original_source's Config::default (port 6379, host
// 127.0.0.1, max_connections 1000, db_num 16), with the ambient fields the
// teacher always carries layered on top. ReadTimeout defaults to 0
// (disabled): there are no command-level timeouts, and a connection that
// is merely idle between commands must not be dropped.
func DefaultConfig() *Config {
	return &Config{
		Host:           "127.0.0.1",
		Port:           6379,
		MaxConnections: 1000,
		DatabaseCount:  16,
		LogLevel:       "info",
		LogFormat:      "text",
		TCPKeepAlive:   true,
		ReadTimeout:    0,
		WriteTimeout:   30 * time.Second,
	}
}

// LoadConfig loads configuration from environment variables, an optional
// config file, and built-in defaults, in that order of increasing
// precedence reversed (env wins, same as the teacher's viper setup).
func LoadConfig() (*Config, error) {
	config := DefaultConfig()

	viper.SetConfigName("redicache")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/redicache/")
	viper.AddConfigPath("$HOME/.redicache")

	viper.SetEnvPrefix("REDICACHE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("host", config.Host)
	viper.SetDefault("port", config.Port)
	viper.SetDefault("max_connections", config.MaxConnections)
	viper.SetDefault("databases", config.DatabaseCount)
	viper.SetDefault("log_level", config.LogLevel)
	viper.SetDefault("log_format", config.LogFormat)
	viper.SetDefault("tcp_keepalive", config.TCPKeepAlive)
	viper.SetDefault("read_timeout", config.ReadTimeout)
	viper.SetDefault("write_timeout", config.WriteTimeout)

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	return config, nil
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port: %d (must be 1-65535)", c.Port)
	}
	if c.MaxConnections < 1 {
		return fmt.Errorf("max_connections must be at least 1")
	}
	if c.DatabaseCount < 1 || c.DatabaseCount > 256 {
		return fmt.Errorf("databases must be between 1 and 256")
	}

	validLogLevels := []string{"trace", "debug", "info", "warn", "error", "fatal"}
	validLevel := false
	for _, level := range validLogLevels {
		if c.LogLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log_level: %s (must be one of: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", "))
	}

	return nil
}

// String renders a one-line summary for startup logs.
func (c *Config) String() string {
	return fmt.Sprintf("redicache %s:%d, databases=%d, log_level=%s",
		c.Host, c.Port, c.DatabaseCount, c.LogLevel)
}
