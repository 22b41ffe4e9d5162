// Package translator wraps the MyMemory machine-translation API, used as a
// best-effort fallback when KRDict has no French match for a query.
package translator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"resty.dev/v3"
)

const (
	DefaultBaseURL  = "https://api.mymemory.translated.net"
	DefaultLangPair = "fr|ko"
)

type Config struct {
	BaseURL  string
	LangPair string
	Timeout  time.Duration
	// MaxRetryAttempts is the number of retries after a 429 or 5xx response.
	MaxRetryAttempts uint
}

type Client struct {
	httpClient *resty.Client
	config     Config
}

func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	if config.LangPair == "" {
		config.LangPair = DefaultLangPair
	}
	client := resty.New()
	client.SetBaseURL(config.BaseURL)
	return &Client{
		httpClient: client,
		config:     config,
	}
}

func (client *Client) Close() error {
	return client.httpClient.Close()
}

type response struct {
	ResponseData struct {
		TranslatedText string `json:"translatedText"`
	} `json:"responseData"`
	ResponseStatus status `json:"responseStatus"`
}

// status is the MyMemory responseStatus, which is sent either as a number or
// as a quoted number.
type status int

func (s *status) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		return fmt.Errorf("strconv.Atoi(%s) > %w", data, err)
	}
	*s = status(n)
	return nil
}

type retryableError struct {
	statusCode int
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("response error %d", e.statusCode)
}

// Translate returns the translation of text and true, or false when no
// translation is available. A transport failure, a non-success status, a
// malformed body and an untranslated echo of text all count as unavailable.
func (client *Client) Translate(ctx context.Context, text string) (string, bool) {
	var translated string
	err := retry.Do(
		func() error {
			result, err := client.translate(ctx, text)
			if err != nil {
				return err
			}
			translated = result
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(client.config.MaxRetryAttempts+1),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			_, ok := err.(*retryableError)
			return ok
		}),
		retry.DelayType(func(n uint, err error, config *retry.Config) time.Duration {
			return retry.BackOffDelay(n, err, config)
		}),
	)
	if err != nil {
		slog.Default().Warn("translation unavailable",
			slog.String("text", text),
			slog.Any("error", err),
		)
		return "", false
	}
	if translated == "" || strings.EqualFold(translated, text) {
		return "", false
	}
	return translated, true
}

func (client *Client) translate(ctx context.Context, text string) (string, error) {
	if client.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, client.config.Timeout)
		defer cancel()
	}

	res, err := client.httpClient.R().
		SetContext(ctx).
		SetQueryParam("q", text).
		SetQueryParam("langpair", client.config.LangPair).
		Get("/get")
	if err != nil {
		return "", fmt.Errorf("httpClient.Get > %w", err)
	}
	if res.StatusCode() == http.StatusTooManyRequests || res.StatusCode() >= http.StatusInternalServerError {
		return "", &retryableError{statusCode: res.StatusCode()}
	}
	if res.IsError() {
		return "", fmt.Errorf("response error %d: %s", res.StatusCode(), res.String())
	}

	var decoded response
	if err := json.Unmarshal([]byte(res.String()), &decoded); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}
	if decoded.ResponseStatus != http.StatusOK {
		return "", fmt.Errorf("mymemory status %d", decoded.ResponseStatus)
	}
	return strings.TrimSpace(decoded.ResponseData.TranslatedText), nil
}
