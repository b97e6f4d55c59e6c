// Package config_test tests the configuration loading for the text-normalizer service.
package config_test

import (
	"testing"
	"time"

	"github.com/book-expert/text-normalizer/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	tomlData := `
[nats]
url = "nats://127.0.0.1:4222"
normalization_requested_subject = "text.normalization.requested"
queue_group = "textnorm-workers"
text_object_store_bucket = "RAW_TEXT"
chunk_object_store_bucket = "TEXT_CHUNKS"

[normalizer]
max_chunk_length = 300
upload_concurrency = 8
timeout_seconds = 120

[translator]
base_url = "https://translation.googleapis.com"
api_key = "test-key"
timeout_seconds = 5
max_retries = 2
cache_size = 100

[paths]
base_logs_dir = "/var/log/textnorm"
`

	var cfg config.Config

	err := toml.Unmarshal([]byte(tomlData), &cfg)
	require.NoError(t, err)

	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "nats://127.0.0.1:4222", cfg.NATS.URL)
	assert.Equal(t, "text.normalization.requested", cfg.NATS.NormalizationRequestedSubject)
	assert.Equal(t, "textnorm-workers", cfg.NATS.QueueGroup)
	assert.Equal(t, "RAW_TEXT", cfg.NATS.TextObjectStoreBucket)
	assert.Equal(t, "TEXT_CHUNKS", cfg.NATS.ChunkObjectStoreBucket)
	assert.Equal(t, 300, cfg.Normalizer.MaxChunkLength)
	assert.Equal(t, 8, cfg.Normalizer.UploadConcurrency)
	assert.Equal(t, 2*time.Minute, cfg.JobTimeout())
	assert.Equal(t, "https://translation.googleapis.com", cfg.Translator.BaseURL)
	assert.Equal(t, "test-key", cfg.Translator.APIKey)
	assert.Equal(t, 5*time.Second, cfg.TranslateTimeout())
	assert.Equal(t, 2, cfg.Translator.MaxRetries)
	assert.Equal(t, 100, cfg.Translator.CacheSize)
	assert.Equal(t, "/var/log/textnorm", cfg.Paths.BaseLogsDir)
}

func TestApplyDefaults(t *testing.T) {
	t.Parallel()

	tomlData := `
[nats]
url = "nats://127.0.0.1:4222"
normalization_requested_subject = "text.normalization.requested"
text_object_store_bucket = "RAW_TEXT"
`

	var cfg config.Config

	err := toml.Unmarshal([]byte(tomlData), &cfg)
	require.NoError(t, err)

	cfg.ApplyDefaults()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "RAW_TEXT", cfg.NATS.ChunkObjectStoreBucket)
	assert.Equal(t, config.DefaultMaxChunkLength, cfg.Normalizer.MaxChunkLength)
	assert.Equal(t, config.DefaultUploadConcurrency, cfg.Normalizer.UploadConcurrency)
	assert.Equal(t, time.Duration(config.DefaultJobTimeoutSeconds)*time.Second, cfg.JobTimeout())
	assert.Equal(t, config.DefaultCacheSize, cfg.Translator.CacheSize)
	assert.Equal(t, config.DefaultMaxRetries, cfg.Translator.MaxRetries)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := func() config.Config {
		cfg := config.Config{
			NATS: config.NATSConfig{
				URL:                           "nats://127.0.0.1:4222",
				NormalizationRequestedSubject: "text.normalization.requested",
				TextObjectStoreBucket:         "RAW_TEXT",
			},
		}
		cfg.ApplyDefaults()

		return cfg
	}

	tests := []struct {
		name     string
		mutate   func(cfg *config.Config)
		expected error
	}{
		{name: "missing url", mutate: func(cfg *config.Config) { cfg.NATS.URL = "" }, expected: config.ErrNATSURLMissing},
		{
			name:     "missing subject",
			mutate:   func(cfg *config.Config) { cfg.NATS.NormalizationRequestedSubject = "" },
			expected: config.ErrSubjectMissing,
		},
		{
			name:     "missing bucket",
			mutate:   func(cfg *config.Config) { cfg.NATS.TextObjectStoreBucket = "" },
			expected: config.ErrBucketMissing,
		},
		{
			name:     "negative chunk length",
			mutate:   func(cfg *config.Config) { cfg.Normalizer.MaxChunkLength = -1 },
			expected: config.ErrInvalidValue,
		},
		{
			name:     "negative retries",
			mutate:   func(cfg *config.Config) { cfg.Translator.MaxRetries = -2 },
			expected: config.ErrInvalidValue,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			cfg := valid()
			testCase.mutate(&cfg)

			require.ErrorIs(t, cfg.Validate(), testCase.expected)
		})
	}
}
