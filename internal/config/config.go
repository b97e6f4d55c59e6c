// Package config provides the configuration structure for the text-normalizer service.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/book-expert/configurator"
	"github.com/book-expert/logger"
)

// Defaults applied to unset values.
const (
	DefaultMaxChunkLength    = 512
	DefaultUploadConcurrency = 4
	DefaultJobTimeoutSeconds = 60
	DefaultTranslateTimeout  = 10
	DefaultMaxRetries        = 3
	DefaultCacheSize         = 4096
)

var (
	// ErrNATSURLMissing is returned when no NATS URL is configured.
	ErrNATSURLMissing = errors.New("nats.url is required")
	// ErrSubjectMissing is returned when no request subject is configured.
	ErrSubjectMissing = errors.New("nats.normalization_requested_subject is required")
	// ErrBucketMissing is returned when no object store bucket is configured.
	ErrBucketMissing = errors.New("nats.text_object_store_bucket is required")
	// ErrInvalidValue is returned for negative sizes and timeouts.
	ErrInvalidValue = errors.New("invalid configuration value")
)

// NATSConfig holds the configuration for NATS.
type NATSConfig struct {
	URL                           string `toml:"url"`
	NormalizationRequestedSubject string `toml:"normalization_requested_subject"`
	QueueGroup                    string `toml:"queue_group"`
	TextObjectStoreBucket         string `toml:"text_object_store_bucket"`
	ChunkObjectStoreBucket        string `toml:"chunk_object_store_bucket"`
}

// NormalizerConfig holds the job processing settings.
type NormalizerConfig struct {
	MaxChunkLength    int `toml:"max_chunk_length"`
	UploadConcurrency int `toml:"upload_concurrency"`
	TimeoutSeconds    int `toml:"timeout_seconds"`
}

// TranslatorConfig holds the settings of the external translator.
type TranslatorConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxRetries     int    `toml:"max_retries"`
	CacheSize      int    `toml:"cache_size"`
}

// PathsConfig holds the configuration for file paths.
type PathsConfig struct {
	BaseLogsDir string `toml:"base_logs_dir"`
}

// Config is the root configuration structure.
type Config struct {
	NATS       NATSConfig       `toml:"nats"`
	Normalizer NormalizerConfig `toml:"normalizer"`
	Translator TranslatorConfig `toml:"translator"`
	Paths      PathsConfig      `toml:"paths"`
}

// Load loads the configuration for the text-normalizer service.
func Load(log *logger.Logger) (*Config, error) {
	var cfg Config

	err := configurator.Load(&cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration from configurator: %w", err)
	}

	cfg.ApplyDefaults()

	err = cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyDefaults fills zero values. Negative values are left for Validate.
func (c *Config) ApplyDefaults() {
	if c.NATS.ChunkObjectStoreBucket == "" {
		c.NATS.ChunkObjectStoreBucket = c.NATS.TextObjectStoreBucket
	}

	if c.Normalizer.MaxChunkLength == 0 {
		c.Normalizer.MaxChunkLength = DefaultMaxChunkLength
	}

	if c.Normalizer.UploadConcurrency == 0 {
		c.Normalizer.UploadConcurrency = DefaultUploadConcurrency
	}

	if c.Normalizer.TimeoutSeconds == 0 {
		c.Normalizer.TimeoutSeconds = DefaultJobTimeoutSeconds
	}

	if c.Translator.TimeoutSeconds == 0 {
		c.Translator.TimeoutSeconds = DefaultTranslateTimeout
	}

	if c.Translator.MaxRetries == 0 {
		c.Translator.MaxRetries = DefaultMaxRetries
	}

	if c.Translator.CacheSize == 0 {
		c.Translator.CacheSize = DefaultCacheSize
	}
}

// Validate reports the first missing or invalid setting.
func (c *Config) Validate() error {
	if c.NATS.URL == "" {
		return ErrNATSURLMissing
	}

	if c.NATS.NormalizationRequestedSubject == "" {
		return ErrSubjectMissing
	}

	if c.NATS.TextObjectStoreBucket == "" {
		return ErrBucketMissing
	}

	positives := map[string]int{
		"normalizer.max_chunk_length":   c.Normalizer.MaxChunkLength,
		"normalizer.upload_concurrency": c.Normalizer.UploadConcurrency,
		"normalizer.timeout_seconds":    c.Normalizer.TimeoutSeconds,
		"translator.timeout_seconds":    c.Translator.TimeoutSeconds,
	}
	for name, value := range positives {
		if value < 1 {
			return fmt.Errorf("%w: %s must be positive, got %d", ErrInvalidValue, name, value)
		}
	}

	if c.Translator.MaxRetries < 0 {
		return fmt.Errorf("%w: translator.max_retries must not be negative", ErrInvalidValue)
	}

	return nil
}

// JobTimeout returns the per-message processing deadline.
func (c *Config) JobTimeout() time.Duration {
	return time.Duration(c.Normalizer.TimeoutSeconds) * time.Second
}

// TranslateTimeout returns the per-request translator deadline.
func (c *Config) TranslateTimeout() time.Duration {
	return time.Duration(c.Translator.TimeoutSeconds) * time.Second
}
