// Package translate provides the translator used by the normalizer for
// languages without native number and date words.
//
// Client speaks the Google Cloud Translation v2 REST format and retries
// transient failures with exponential backoff. Cached wraps any translator
// with an LRU cache of finished translations.
package translate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/book-expert/logger"
	"github.com/book-expert/text-normalizer/internal/core"
	"github.com/cenkalti/backoff/v4"
)

// API endpoints and wire values.
const (
	apiTranslate      = "/language/translate/v2"
	queryKey          = "key"
	formatText        = "text"
	headerContentType = "Content-Type"
	contentTypeJSON   = "application/json"
)

// Defaults.
const (
	DefaultTimeout       = 10 * time.Second
	DefaultMaxRetries    = 3
	DefaultRetryInterval = 500 * time.Millisecond
)

// Error and log messages.
const (
	errFmtMarshalRequest    = "failed to marshal translate request: %w"
	errFmtCreateRequest     = "failed to create translate request: %w"
	errFmtSendRequest       = "failed to send request to translator at %s: %w"
	errFmtReadResponse      = "failed to read translate response: %w"
	errFmtDecodeResponse    = "failed to decode translate response: %w"
	errFmtTranslate         = "%w: %s to %s: %w"
	errFmtStatus            = "translator returned %d: %s"
	logFmtRetry             = "Translation %s to %s failed, retrying in %s: %v"
	errEmptyTranslations    = "translator returned no translations"
	errBaseURLCannotBeEmpty = "translator base URL cannot be empty"
)

var (
	// ErrNoTranslations is returned when a 200 response carries no result.
	ErrNoTranslations = errors.New(errEmptyTranslations)
	// ErrBaseURLEmpty is returned by NewClient without a base URL.
	ErrBaseURLEmpty = errors.New(errBaseURLCannotBeEmpty)
)

// StatusError is a non-200 reply from the translator.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf(errFmtStatus, e.StatusCode, e.Message)
}

// Retryable reports whether the request may succeed when repeated.
func (e *StatusError) Retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

// ClientConfig configures a Client. Zero values select the defaults.
type ClientConfig struct {
	BaseURL       string
	APIKey        string
	Timeout       time.Duration
	MaxRetries    int
	RetryInterval time.Duration
}

// Client implements core.Translator over HTTP.
type Client struct {
	httpClient    *http.Client
	log           *logger.Logger
	baseURL       string
	apiKey        string
	maxRetries    uint64
	retryInterval time.Duration
}

// translateRequest is the JSON body of a v2 translate call.
type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
}

type translateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText string `json:"translatedText"`
		} `json:"translations"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// NewClient creates a translator client.
func NewClient(cfg ClientConfig, log *logger.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, ErrBaseURLEmpty
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = DefaultMaxRetries
	}

	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = DefaultRetryInterval
	}

	return &Client{
		httpClient:    &http.Client{Timeout: cfg.Timeout},
		log:           log,
		baseURL:       strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:        cfg.APIKey,
		maxRetries:    uint64(cfg.MaxRetries),
		retryInterval: cfg.RetryInterval,
	}, nil
}

// Translate translates text from fromLang to toLang. Network errors, 5xx and
// 429 replies are retried; any final failure wraps core.ErrTranslationFailure.
func (c *Client) Translate(ctx context.Context, text, fromLang, toLang string) (string, error) {
	if strings.TrimSpace(text) == "" || fromLang == toLang {
		return text, nil
	}

	var translated string

	operation := func() error {
		result, err := c.do(ctx, text, fromLang, toLang)
		if err != nil {
			return err
		}

		translated = result

		return nil
	}

	notify := func(err error, wait time.Duration) {
		c.log.Warn(logFmtRetry, fromLang, toLang, wait, err)
	}

	err := backoff.RetryNotify(operation, c.newBackOff(ctx), notify)
	if err != nil {
		return "", fmt.Errorf(errFmtTranslate, core.ErrTranslationFailure, fromLang, toLang, err)
	}

	return translated, nil
}

func (c *Client) newBackOff(ctx context.Context) backoff.BackOff {
	exponential := backoff.NewExponentialBackOff()
	exponential.InitialInterval = c.retryInterval

	return backoff.WithContext(backoff.WithMaxRetries(exponential, c.maxRetries), ctx)
}

// do performs one request. Errors that cannot succeed on retry are marked
// permanent.
func (c *Client) do(ctx context.Context, text, fromLang, toLang string) (string, error) {
	body, err := json.Marshal(translateRequest{
		Q:      text,
		Source: fromLang,
		Target: toLang,
		Format: formatText,
	})
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf(errFmtMarshalRequest, err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf(errFmtCreateRequest, err))
	}

	httpReq.Header.Set(headerContentType, contentTypeJSON)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(ctx.Err())
		}

		return "", fmt.Errorf(errFmtSendRequest, c.baseURL, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf(errFmtReadResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		statusErr := parseErrorResponse(resp.StatusCode, payload)
		if statusErr.Retryable() {
			return "", statusErr
		}

		return "", backoff.Permanent(statusErr)
	}

	var decoded translateResponse

	err = json.Unmarshal(payload, &decoded)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf(errFmtDecodeResponse, err))
	}

	if len(decoded.Data.Translations) == 0 {
		return "", backoff.Permanent(ErrNoTranslations)
	}

	return decoded.Data.Translations[0].TranslatedText, nil
}

func (c *Client) endpoint() string {
	endpoint := c.baseURL + apiTranslate
	if c.apiKey == "" {
		return endpoint
	}

	return endpoint + "?" + url.Values{queryKey: []string{c.apiKey}}.Encode()
}

// parseErrorResponse decodes the structured error body, falling back to the
// raw body so diagnostics are kept.
func parseErrorResponse(statusCode int, payload []byte) *StatusError {
	var decoded errorResponse

	err := json.Unmarshal(payload, &decoded)
	if err == nil && decoded.Error.Message != "" {
		return &StatusError{StatusCode: statusCode, Message: decoded.Error.Message}
	}

	return &StatusError{StatusCode: statusCode, Message: strings.TrimSpace(string(payload))}
}
