package usda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/macrotrack/backend/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DemoAPIKey is the shared key FoodData Central accepts without registration
const DemoAPIKey = "DEMO_KEY"

const (
	defaultTimeout     = 5 * time.Second
	defaultPageSize    = 20
	defaultMaxAttempts = 3
	defaultHourlyLimit = 1000
	defaultBurst       = 10
	backoffBase        = 500 * time.Millisecond
)

// searchDataTypes restricts searches to the datasets with usable per-100g values
const searchDataTypes = "Survey (FNDDS),Foundation,Branded,SR Legacy"

// Client handles communication with the USDA FoodData Central API
type Client struct {
	httpClient  *http.Client
	apiKey      string
	baseURL     string
	pageSize    int
	maxAttempts int
	backoff     func(attempt int) time.Duration
	rateLimiter *rate.Limiter
	logger      *zap.Logger
	debug       bool
}

// Option configures a Client
type Option func(*Client)

// WithTimeout bounds every single HTTP request
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithPageSize sets how many foods a search asks for
func WithPageSize(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.pageSize = n
		}
	}
}

// WithHourlyLimit sets the client-side request budget per hour
func WithHourlyLimit(perHour int) Option {
	return func(c *Client) {
		if perHour > 0 {
			c.rateLimiter = rate.NewLimiter(rate.Limit(float64(perHour)/3600), defaultBurst)
		}
	}
}

// WithBackoff replaces the delay between retries
func WithBackoff(backoff func(attempt int) time.Duration) Option {
	return func(c *Client) {
		c.backoff = backoff
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a new USDA API client. An empty key falls back to DEMO_KEY
func NewClient(apiKey, baseURL string, opts ...Option) *Client {
	if apiKey == "" {
		apiKey = DemoAPIKey
	}

	c := &Client{
		httpClient: &http.Client{
			Timeout: defaultTimeout,
		},
		apiKey:      apiKey,
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		pageSize:    defaultPageSize,
		maxAttempts: defaultMaxAttempts,
		backoff:     exponentialBackoff,
		// USDA allows 1000 requests per hour
		rateLimiter: rate.NewLimiter(rate.Limit(float64(defaultHourlyLimit)/3600), defaultBurst),
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetDebug toggles verbose request logging
func (c *Client) SetDebug(debug bool) {
	c.debug = debug
}

// exponentialBackoff returns the delay before the next attempt: 500ms, 1s, 2s, ...
func exponentialBackoff(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	return backoffBase * time.Duration(1<<(attempt-1))
}

// SearchFoods searches for foods in the USDA database.
// An empty match list is not an error
func (c *Client) SearchFoods(ctx context.Context, query string) (*domain.USDASearchResponse, error) {
	params := url.Values{}
	params.Add("query", query)
	params.Add("dataType", searchDataTypes)
	params.Add("pageSize", strconv.Itoa(c.pageSize))

	var searchResp domain.USDASearchResponse
	if err := c.getJSON(ctx, "/v1/foods/search", params, &searchResp); err != nil {
		c.logger.Warn("usda search failed", zap.String("query", query), zap.Error(err))
		return nil, err
	}
	if searchResp.Foods == nil {
		searchResp.Foods = []domain.USDAFood{}
	}

	c.logger.Debug("usda search completed",
		zap.String("query", query),
		zap.Int("foods", len(searchResp.Foods)),
		zap.Int("totalHits", searchResp.TotalHits))
	return &searchResp, nil
}

// GetFoodDetails retrieves detailed nutrition information for a specific food by FDC ID
func (c *Client) GetFoodDetails(ctx context.Context, fdcID string) (*domain.USDAFood, error) {
	var food domain.USDAFood
	if err := c.getJSON(ctx, "/v1/food/"+url.PathEscape(fdcID), url.Values{}, &food); err != nil {
		c.logger.Warn("usda food lookup failed", zap.String("fdcId", fdcID), zap.Error(err))
		return nil, err
	}
	return &food, nil
}

// getJSON performs a GET with rate limiting and retries transport errors,
// 429 and 5xx responses. 404 maps to ErrProductNotFound; other statuses fail at once
func (c *Client) getJSON(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, params.Encode())

	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if attempt > 1 {
			if err := sleepContext(ctx, c.backoff(attempt-1)); err != nil {
				return fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %v", domain.ErrUSDAAPIFailure, err)
		}

		if c.debug {
			c.logger.Debug("usda request", zap.String("path", path), zap.Int("attempt", attempt))
		}

		resp, err := c.doRequest(ctx, reqURL)
		if err != nil {
			lastErr = err
			if ctx.Err() != nil {
				return lastErr
			}
			continue
		}

		body, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			if readErr != nil {
				return fmt.Errorf("%w: reading body: %v", domain.ErrUSDAAPIFailure, readErr)
			}
			if err := json.Unmarshal(body, out); err != nil {
				return fmt.Errorf("%w: failed to decode response: %v", domain.ErrUSDAAPIFailure, err)
			}
			return nil
		case resp.StatusCode == http.StatusNotFound:
			return domain.ErrProductNotFound
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			if c.debug {
				c.logger.Debug("usda retryable status",
					zap.Int("status", resp.StatusCode),
					zap.ByteString("body", truncate(body, 512)))
			}
			lastErr = statusError(resp.StatusCode)
		default:
			return statusError(resp.StatusCode)
		}
	}
	return lastErr
}

// doRequest executes an HTTP GET request with proper headers and error handling
func (c *Client) doRequest(ctx context.Context, reqURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "MacroTrack/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// url.Error carries the full URL, which includes the api key
		if ue, ok := err.(*url.Error); ok {
			err = ue.Err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrUSDAAPIFailure, err)
	}
	return resp, nil
}

func statusError(status int) error {
	return fmt.Errorf("%w: status %d %s", domain.ErrUSDAAPIFailure, status, http.StatusText(status))
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func truncate(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
