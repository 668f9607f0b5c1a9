// Package config loads application settings.
//
// Sources are applied in order, later ones winning: built-in defaults, an
// optional YAML file, a .env file and finally NFE_* environment variables.
// Command-line flags are applied on top by the CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/rezonia/nfe-mapper/internal/logger"
)

// Config is the top-level configuration
type Config struct {
	Log    logger.LogConfig `yaml:"log"`
	Server ServerConfig     `yaml:"server"`
	Encode EncodeConfig     `yaml:"encode"`
	Batch  BatchConfig      `yaml:"batch"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	MaxBodyBytes int64         `yaml:"max_body_bytes"`
	Debug        bool          `yaml:"debug"`
}

// EncodeConfig controls XML output
type EncodeConfig struct {
	// Indent is the number of spaces per level; 0 emits compact canonical XML
	Indent int `yaml:"indent"`
}

// BatchConfig controls multi-file decoding
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Log: logger.DefaultConfig(),
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
			MaxBodyBytes: 10 << 20,
		},
		Batch: BatchConfig{Workers: 4},
	}
}

// Load builds the configuration from defaults, the YAML file at path (if not
// empty), the given .env files (".env" when none) and the environment.
// Missing .env files are not an error.
func Load(path string, envFiles ...string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	setString(&c.Log.Level, "NFE_LOG_LEVEL")
	setString(&c.Log.Format, "NFE_LOG_FORMAT")
	setString(&c.Log.Output, "NFE_LOG_OUTPUT")
	setString(&c.Log.TimeFormat, "NFE_LOG_TIME_FORMAT")
	setString(&c.Server.Addr, "NFE_SERVER_ADDR")

	if err := setDuration(&c.Server.ReadTimeout, "NFE_SERVER_READ_TIMEOUT"); err != nil {
		return err
	}
	if err := setDuration(&c.Server.WriteTimeout, "NFE_SERVER_WRITE_TIMEOUT"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv("NFE_SERVER_MAX_BODY_BYTES"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("NFE_SERVER_MAX_BODY_BYTES: %w", err)
		}
		c.Server.MaxBodyBytes = n
	}
	if v, ok := os.LookupEnv("NFE_SERVER_DEBUG"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("NFE_SERVER_DEBUG: %w", err)
		}
		c.Server.Debug = b
	}
	if err := setInt(&c.Encode.Indent, "NFE_ENCODE_INDENT"); err != nil {
		return err
	}
	return setInt(&c.Batch.Workers, "NFE_BATCH_WORKERS")
}

// Validate checks ranges and required values
func (c *Config) Validate() error {
	if _, err := logger.New(logger.LogConfig{Level: c.Log.Level, Output: "stderr"}); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Server.Addr == "" {
		return errors.New("server address is required")
	}
	if c.Server.MaxBodyBytes <= 0 {
		return errors.New("server max body bytes must be positive")
	}
	if c.Encode.Indent < 0 {
		return errors.New("encode indent cannot be negative")
	}
	if c.Batch.Workers < 1 {
		return errors.New("batch workers must be at least 1")
	}
	return nil
}

// GetLoggerConfig returns the logging section
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return c.Log
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = n
	return nil
}

func setDuration(dst *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = d
	return nil
}
