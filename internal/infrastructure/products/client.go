package products

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gemvault/storefront/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// ListPath is the product-listing endpoint on the upstream backend
const ListPath = "/api/admin/products"

// ClientConfig holds settings for the product-listing client
type ClientConfig struct {
	BaseURL           string
	Timeout           time.Duration
	RequestsPerSecond float64
	Burst             int
}

// Client handles communication with the product-listing endpoint
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a new product-listing client
func NewClient(cfg ClientConfig, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     strings.TrimRight(cfg.BaseURL, "/"),
		rateLimiter: rate.NewLimiter(limit, burst),
		logger:      logger.Named("products"),
	}
}

// ListProducts fetches the full product list. Any transport error, non-200
// status or undecodable body is reported as domain.ErrFetchFailure.
// The request is issued once; callers decide what a failure means.
func (c *Client) ListProducts(ctx context.Context) ([]domain.Product, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter: %v", domain.ErrFetchFailure, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+ListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", domain.ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "Storefront/1.0")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrFetchFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: status %d, body: %s", domain.ErrFetchFailure, resp.StatusCode, string(body))
	}

	var products []domain.Product
	if err := json.NewDecoder(resp.Body).Decode(&products); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", domain.ErrFetchFailure, err)
	}
	if products == nil {
		products = []domain.Product{}
	}

	c.logger.Debug("fetched product list",
		zap.Int("count", len(products)),
		zap.Duration("latency", time.Since(start)),
	)
	return products, nil
}
