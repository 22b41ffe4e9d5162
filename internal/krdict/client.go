package krdict

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultBaseURL is the KRDict search endpoint.
const DefaultBaseURL = "https://krdict.korean.go.kr/api/search"

// SearchField selects which field of the dictionary the query is matched against.
type SearchField string

const (
	FieldWord                  SearchField = "word"
	FieldTranslationWord       SearchField = "trans_word"
	FieldTranslationDefinition SearchField = "trans_dfn"
)

// Method is the match mode of a query.
type Method string

const (
	MethodInclude Method = "include"
	MethodExact   Method = "exact"
)

// Query is a single lookup against KRDict.
type Query struct {
	Key    string
	Text   string
	Field  SearchField
	Method Method
}

// Config holds the request defaults applied to every lookup.
type Config struct {
	BaseURL string
	// Num caps the number of results per request.
	Num       int
	Sort      string
	TransLang string
	Timeout   time.Duration
}

// DefaultConfig returns the defaults used by the KRDict search page:
// 30 results in dictionary order with French translations.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		Num:       30,
		Sort:      "dict",
		TransLang: "3",
		Timeout:   10 * time.Second,
	}
}

// StatusError is returned when KRDict answers with a non-success HTTP status.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("krdict status code: %d, body: %s", e.StatusCode, e.Body)
}

type Client struct {
	config     Config
	httpClient *resty.Client
}

func NewClient(config Config) *Client {
	defaults := DefaultConfig()
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if config.Num <= 0 {
		config.Num = defaults.Num
	}
	if config.Sort == "" {
		config.Sort = defaults.Sort
	}
	if config.TransLang == "" {
		config.TransLang = defaults.TransLang
	}
	return &Client{
		config:     config,
		httpClient: resty.New(),
	}
}

// Lookup runs one query. Zero matches is an empty list with a nil error.
// A non-success status is reported as *StatusError and an <error> document as
// *APIError; any other error is a transport failure.
func (c *Client) Lookup(ctx context.Context, query Query) ([]Entry, error) {
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	res, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(c.queryParams(query)).
		Get(c.config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("client.R.Get > %w", err)
	}
	if res.StatusCode() != http.StatusOK {
		return nil, &StatusError{StatusCode: res.StatusCode(), Body: string(res.Body())}
	}

	entries, err := ParseEntries(bytes.NewReader(res.Body()))
	if err != nil {
		return nil, fmt.Errorf("ParseEntries > %w", err)
	}
	return entries, nil
}

func (c *Client) queryParams(query Query) map[string]string {
	return map[string]string{
		"key":        query.Key,
		"q":          query.Text,
		"part":       string(query.Field),
		"method":     string(query.Method),
		"num":        strconv.Itoa(c.config.Num),
		"sort":       c.config.Sort,
		"advanced":   "y",
		"translated": "y",
		"trans_lang": c.config.TransLang,
	}
}
