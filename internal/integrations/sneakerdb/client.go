package sneakerdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"sneaker-fulfillment/internal/domain"
	"sneaker-fulfillment/internal/metrics"
)

const (
	DefaultBaseURL = "https://sneaker-database-stockx.p.rapidapi.com"
	DefaultHost    = "sneaker-database-stockx.p.rapidapi.com"

	resultLimit = 5
)

// tokenPayload is the JSON shape accepted for the API key parameter. A bare
// string value is accepted as well.
type tokenPayload struct {
	Token string `json:"token"`
}

type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// HTTPStatusError is returned when the product API answers with a non-2xx
// status.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("sneakerdb: product API returned %d: %s", e.StatusCode, e.Body)
}

// Client searches the sneaker product database.
type Client struct {
	baseURL    string
	host       string
	httpClient *http.Client
	getter     Getter
	keyName    string
	log        *slog.Logger
	metrics    *metrics.Metrics

	keyMu  sync.Mutex
	apiKey string
}

type Option func(*Client)

func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSpace(baseURL)
	}
}

// WithHost overrides the value sent in the X-RapidAPI-Host header.
func WithHost(host string) Option {
	return func(c *Client) {
		c.host = strings.TrimSpace(host)
	}
}

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// NewClient creates a Client that reads its API key from getter under
// keyName. The key is fetched on the first search and kept for the lifetime
// of the process; a failed fetch is retried on the next search.
func NewClient(getter Getter, keyName string, opts ...Option) (*Client, error) {
	if getter == nil {
		return nil, errors.New("sneakerdb: key getter must not be nil")
	}
	keyName = strings.TrimSpace(keyName)
	if keyName == "" {
		return nil, errors.New("sneakerdb: key parameter name must not be empty")
	}
	c := &Client{
		baseURL:    DefaultBaseURL,
		host:       DefaultHost,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		getter:     getter,
		keyName:    keyName,
		log:        slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.log == nil {
		c.log = slog.Default()
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return c, nil
}

// Search returns up to five products matching the query keywords. Any
// failure is logged and reported as an empty result.
func (c *Client) Search(ctx context.Context, q domain.SearchQuery) []domain.Product {
	c.log.DebugContext(ctx, "product lookup",
		"brand", q.Brand.String(),
		"model", q.Model.String(),
		"color", q.Color.String(),
	)

	products, err := c.search(ctx, q.Keywords())
	if err != nil {
		c.metrics.ObserveLookup(metrics.LookupError)
		attrs := []any{"keywords", q.Keywords(), "err", err}
		var statusErr *HTTPStatusError
		if errors.As(err, &statusErr) {
			attrs = append(attrs, "status_code", statusErr.StatusCode)
		}
		c.log.WarnContext(ctx, "product lookup failed", attrs...)
		return []domain.Product{}
	}
	if len(products) == 0 {
		c.metrics.ObserveLookup(metrics.LookupEmpty)
		return []domain.Product{}
	}
	c.metrics.ObserveLookup(metrics.LookupHit)
	return products
}

func (c *Client) search(ctx context.Context, keywords string) ([]domain.Product, error) {
	apiKey, err := c.resolveAPIKey(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, productsURL(c.baseURL, keywords), nil)
	if err != nil {
		return nil, fmt.Errorf("sneakerdb: create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-RapidAPI-Key", apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("sneakerdb: request failed: %w", err)
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{StatusCode: res.StatusCode, Body: string(buf)}
	}

	var products []domain.Product
	if err := json.NewDecoder(io.LimitReader(res.Body, 1<<20)).Decode(&products); err != nil {
		return nil, fmt.Errorf("sneakerdb: decode response: %w", err)
	}
	return products, nil
}

func productsURL(baseURL, keywords string) string {
	base := strings.TrimRight(baseURL, "/")
	if base == "" {
		base = DefaultBaseURL
	}
	q := url.Values{}
	q.Set("keywords", keywords)
	q.Set("limit", fmt.Sprintf("%d", resultLimit))
	return base + "/getproducts?" + q.Encode()
}

func (c *Client) resolveAPIKey(ctx context.Context) (string, error) {
	c.keyMu.Lock()
	defer c.keyMu.Unlock()
	if c.apiKey != "" {
		return c.apiKey, nil
	}
	key, err := fetchAPIKey(ctx, c.getter, c.keyName)
	if err != nil {
		return "", err
	}
	c.apiKey = key
	return key, nil
}

func fetchAPIKey(ctx context.Context, getter Getter, name string) (string, error) {
	raw, err := getter.GetParameter(ctx, name)
	if err != nil {
		return "", fmt.Errorf("sneakerdb: fetch API key: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "{") {
		var tp tokenPayload
		if err := json.Unmarshal([]byte(raw), &tp); err != nil {
			return "", fmt.Errorf("sneakerdb: unmarshal API key value as JSON: %w", err)
		}
		raw = strings.TrimSpace(tp.Token)
	}
	if raw == "" {
		return "", errors.New("sneakerdb: API key is empty")
	}
	return raw, nil
}
