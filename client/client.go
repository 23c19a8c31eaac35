package client

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the GNews v4 API root.
	DefaultBaseURL = "https://gnews.io/api/v4"
	// DefaultTimeout bounds a single upstream request.
	DefaultTimeout = 15 * time.Second
	// DefaultMaxBodySize bounds how much of a response body is read.
	DefaultMaxBodySize = 1 << 20
)

type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	MaxBodySize int64
	ProxyURL    string
	InsecureTLS bool
	Logger      *slog.Logger
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	apiKey      string
	maxBodySize int64
	logger      *slog.Logger
}

// NewsResponse is the upstream success payload shared by both endpoints.
type NewsResponse struct {
	TotalArticles int       `json:"totalArticles"`
	Articles      []Article `json:"articles"`
}

// Source identifies the publisher of an article.
type Source struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Article is a projection of the provider's article object. Description,
// Content and Image are pointers so provider nulls survive re-encoding.
type Article struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	URL         string  `json:"url"`
	Image       *string `json:"image"`
	PublishedAt string  `json:"publishedAt"`
	Source      Source  `json:"source"`
}

// errorBody is the provider's failure payload, e.g. {"errors":["..."]}.
type errorBody struct {
	Errors []string `json:"errors"`
}

func NewClient(cfg Config) *Client {
	transport := &http.Transport{}

	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	maxBodySize := cfg.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.APIKey,
		maxBodySize: maxBodySize,
		logger:      logger,
	}
}

// Search runs a /search query. The params must already be validated.
func (c *Client) Search(ctx context.Context, params SearchParams) (*NewsResponse, error) {
	return c.get(ctx, "/search", params.Values())
}

// TopHeadlines runs a /top-headlines query. The params must already be
// validated.
func (c *Client) TopHeadlines(ctx context.Context, params HeadlinesParams) (*NewsResponse, error) {
	return c.get(ctx, "/top-headlines", params.Values())
}

// get issues a single GET against the given endpoint. No retries: errors are
// classified and surfaced to the caller. The API key check runs first so a
// misconfigured process never attempts a doomed network call.
func (c *Client) get(ctx context.Context, path string, query url.Values) (*NewsResponse, error) {
	if c.apiKey == "" {
		return nil, &ConfigError{
			Reason: "GNEWS_API_KEY environment variable is required; get a free key from https://gnews.io/",
		}
	}

	// Log before the key is attached so it never reaches the log stream.
	c.logger.Info("requesting GNews API", "path", path, "params", query.Encode())
	query.Set("apikey", c.apiKey)

	requestURL := c.baseURL + path + "?" + query.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("GNews API request failed", "path", path, "error", err)
		return nil, &NetworkError{Err: err}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodySize))
	resp.Body.Close()
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		upstreamErr := &UpstreamError{StatusCode: resp.StatusCode, Message: upstreamMessage(body)}
		c.logger.Error("GNews API returned an error", "path", path, "status", resp.StatusCode)
		return nil, upstreamErr
	}

	var out NewsResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, &ProtocolError{Err: err}
	}

	c.logger.Info("GNews API response", "path", path, "totalArticles", out.TotalArticles)
	return &out, nil
}

// upstreamMessage extracts the provider's error text from a failure body,
// falling back to the raw body when it is not the documented shape.
func upstreamMessage(body []byte) string {
	var parsed errorBody
	if err := json.Unmarshal(body, &parsed); err == nil && len(parsed.Errors) > 0 {
		return strings.Join(parsed.Errors, "; ")
	}
	return strings.TrimSpace(string(body))
}
