package omdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL  = "http://www.omdbapi.com/"
	defaultTimeout  = 10 * time.Second
	defaultCacheTTL = 24 * time.Hour
	maxRetries      = 3
	retryDelay      = 500 * time.Millisecond
	cachePrefix     = "omdb:lookup:"
	requestsPerSec  = 2
)

// ErrNotFound is returned when OMDb has no entry for the title.
var ErrNotFound = errors.New("omdb: movie not found")

// Result holds the attributes OMDb knows about a movie. Optional fields are
// nil when OMDb reports "N/A".
type Result struct {
	Title      string
	Director   *string
	Year       *int
	Genre      *string
	PosterURL  *string
	ImdbRating *float64
}

// Lookuper is the metadata lookup collaborator as seen by the domain layer.
type Lookuper interface {
	Lookup(ctx context.Context, title string, year *int) (*Result, error)
}

type ClientConfig struct {
	BaseURL  string
	APIKey   string
	Timeout  time.Duration
	CacheTTL time.Duration
	Redis    *redis.Client // nil disables caching
	Logger   *zap.Logger
}

type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	redis      *redis.Client
	cacheTTL   time.Duration
	log        *zap.Logger
}

func NewClient(config ClientConfig) *Client {
	if config.BaseURL == "" {
		config.BaseURL = defaultBaseURL
	}
	if config.Timeout <= 0 {
		config.Timeout = defaultTimeout
	}
	if config.CacheTTL <= 0 {
		config.CacheTTL = defaultCacheTTL
	}
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}

	return &Client{
		baseURL:    config.BaseURL,
		apiKey:     config.APIKey,
		httpClient: &http.Client{Timeout: config.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(requestsPerSec), 1),
		redis:      config.Redis,
		cacheTTL:   config.CacheTTL,
		log:        config.Logger.With(zap.String("client", "omdb")),
	}
}

// payload is the subset of the OMDb response we consume.
type payload struct {
	Response   string `json:"Response"`
	Error      string `json:"Error"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Director   string `json:"Director"`
	Genre      string `json:"Genre"`
	Poster     string `json:"Poster"`
	ImdbRating string `json:"imdbRating"`
}

// Lookup fetches metadata for a title, optionally narrowed by year. It
// returns ErrNotFound when OMDb has no match and a wrapped transport error
// when OMDb is unreachable; callers decide how to degrade.
func (c *Client) Lookup(ctx context.Context, title string, year *int) (*Result, error) {
	if strings.TrimSpace(title) == "" {
		return nil, fmt.Errorf("omdb: empty title")
	}

	cacheKey := cacheKeyFor(title, year)

	// Check cache first
	if c.redis != nil {
		cached, err := c.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var result Result
			if err := json.Unmarshal([]byte(cached), &result); err == nil {
				c.log.Debug("Lookup served from cache", zap.String("title", title))
				return &result, nil
			}
			c.log.Warn("Failed to unmarshal cached lookup", zap.Error(err))
		} else if err != redis.Nil {
			c.log.Warn("Failed to read from cache", zap.Error(err))
		}
	}

	params := url.Values{}
	params.Set("t", title)
	params.Set("apikey", c.apiKey)
	if year != nil {
		params.Set("y", strconv.Itoa(*year))
	}

	body, err := c.makeRequest(ctx, fmt.Sprintf("%s?%s", c.baseURL, params.Encode()))
	if err != nil {
		return nil, err
	}

	var data payload
	if err := json.Unmarshal(body, &data); err != nil {
		return nil, fmt.Errorf("omdb: decode response: %w", err)
	}

	if data.Response != "True" {
		c.log.Info("Movie not found in OMDb",
			zap.String("title", title),
			zap.String("omdb_error", data.Error),
		)
		return nil, ErrNotFound
	}

	result := data.toResult()

	// Cache result
	if c.redis != nil {
		encoded, err := json.Marshal(result)
		if err != nil {
			c.log.Warn("Failed to marshal lookup for caching", zap.Error(err))
		} else if err := c.redis.Set(ctx, cacheKey, encoded, c.cacheTTL).Err(); err != nil {
			c.log.Warn("Failed to write lookup to cache", zap.Error(err))
		}
	}

	return result, nil
}

func (c *Client) makeRequest(ctx context.Context, requestURL string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("omdb: rate limit wait: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, fmt.Errorf("omdb: create request: %w", err)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			c.log.Warn("OMDb request failed",
				zap.Int("attempt", attempt),
				zap.Error(err),
			)
		} else {
			body, readErr := io.ReadAll(resp.Body)
			resp.Body.Close()

			switch {
			case readErr != nil:
				lastErr = readErr
			case resp.StatusCode >= http.StatusInternalServerError:
				lastErr = fmt.Errorf("omdb: status %d", resp.StatusCode)
			case resp.StatusCode != http.StatusOK:
				return nil, fmt.Errorf("omdb: unexpected status %d", resp.StatusCode)
			default:
				return body, nil
			}
		}

		if attempt < maxRetries {
			select {
			case <-time.After(retryDelay * time.Duration(attempt)):
			case <-ctx.Done():
				return nil, fmt.Errorf("omdb: request cancelled: %w", ctx.Err())
			}
		}
	}

	return nil, fmt.Errorf("omdb: unreachable after %d attempts: %w", maxRetries, lastErr)
}

func (p *payload) toResult() *Result {
	result := &Result{Title: p.Title}

	if v := cleanField(p.Director); v != "" {
		result.Director = &v
	}
	if v := cleanField(p.Genre); v != "" {
		result.Genre = &v
	}
	if v := cleanField(p.Poster); v != "" {
		result.PosterURL = &v
	}
	if year, ok := parseYear(p.Year); ok {
		result.Year = &year
	}
	if rating, err := strconv.ParseFloat(cleanField(p.ImdbRating), 64); err == nil {
		result.ImdbRating = &rating
	}

	return result
}

func cleanField(value string) string {
	value = strings.TrimSpace(value)
	if value == "N/A" {
		return ""
	}
	return value
}

// parseYear handles both plain years ("2010") and series ranges ("2010-2013").
func parseYear(value string) (int, bool) {
	value = cleanField(value)
	if len(value) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(value[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

func cacheKeyFor(title string, year *int) string {
	key := cachePrefix + strings.ToLower(strings.TrimSpace(title))
	if year != nil {
		key += ":" + strconv.Itoa(*year)
	}
	return key
}
