package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/timeout"
	"github.com/rs/zerolog"

	"github.com/whatbetter/whatapi/internal/cache"
	"github.com/whatbetter/whatapi/internal/config"
	"github.com/whatbetter/whatapi/internal/models"
	"github.com/whatbetter/whatapi/internal/parser"
	"github.com/whatbetter/whatapi/internal/ratelimit"
	"github.com/whatbetter/whatapi/internal/services"
)

// Client defines the interface for talking to a gazelle tracker
type Client interface {
	// Login authenticates with the configured credentials and loads the account secrets.
	Login(ctx context.Context) error
	// Logout ends the remote session. Failures are logged, never returned.
	Logout(ctx context.Context) error
	Authenticated() bool
	AccountInfo() (*models.AccountInfo, error)

	// Request performs one AJAX action and returns its "response" payload.
	Request(ctx context.Context, action string, params url.Values) (json.RawMessage, error)
	Artist(ctx context.Context, artistID int, format string, bestSeeded bool) (*models.ArtistResponse, error)

	// StreamSnatched emits the user's snatch history page by page.
	// The channel is closed when every partition has been read.
	// Errors are sent as StreamResult with a non-nil Err field.
	StreamSnatched(ctx context.Context, opts models.SnatchOptions) <-chan models.StreamResult[models.SnatchEntry]

	Upload(ctx context.Context, req models.UploadRequest) (*models.UploadResult, error)

	ReleaseURL(groupID, torrentID int) string
	Permalink(torrentID int) string

	// Close releases any resources held by the client (e.g., cache connections).
	Close() error
}

// client implements the Client interface
type client struct {
	// httpClient follows redirects; ajaxClient shares its cookie jar but stops at the first response.
	httpClient *http.Client
	ajaxClient *http.Client

	baseURL   string
	uploadURL string
	username  string
	password  string
	userAgent string
	headers   map[string]string

	limiter       *ratelimit.Limiter
	cache         cache.Cache
	snatchParser  parser.SnatchPageParser
	selector      services.ReleaseSelector
	uploadBuilder services.UploadRequestBuilder
	logger        zerolog.Logger

	mu      sync.RWMutex
	account *models.AccountInfo
}

// NewClient creates a new client instance with proxy configuration if provided
func NewClient(cfg *config.Config) (Client, error) {
	logger := config.GetLogger().With().Str("component", "client").Logger()

	base, err := url.Parse(strings.TrimRight(cfg.TrackerURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid tracker url %q", cfg.TrackerURL)
	}
	baseURL := base.String()

	requestTimeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, config.DefaultClientTimeout)
	interval := config.ParseDuration("rate_limit", cfg.RateLimit, config.DefaultRateLimit)

	// Clone DefaultTransport to preserve all its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	transport := failsafehttp.NewRoundTripper(
		newCompressionTransport(baseTransport),
		timeout.New[*http.Response](requestTimeout),
	)

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	httpClient := &http.Client{
		Transport: transport,
		Jar:       jar,
	}
	ajaxClient := &http.Client{
		Transport: transport,
		Jar:       jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	uploadURL := cfg.UploadURL
	if uploadURL == "" {
		uploadURL = baseURL + "/upload.php"
	}

	headers := cfg.Headers
	if len(headers) == 0 {
		headers = config.DefaultHeaders()
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	responseCache, err := cache.New(cfg.Cache.Provider, cache.Config{
		Size:          cfg.Cache.Size,
		TTL:           config.ParseDuration("cache.ttl", cfg.Cache.TTL, 0),
		RedisAddress:  cfg.Cache.Redis.Address,
		RedisPassword: cfg.Cache.Redis.Password,
		RedisDB:       cfg.Cache.Redis.DB,
		Group:         "ajax",
		Logger:        logger,
	})
	if err != nil {
		logger.Warn().Err(err).Str("provider", cfg.Cache.Provider).Msg("Failed to create response cache, continuing without cache")
		responseCache, _ = cache.New(cache.ProviderNone, cache.Config{})
	}

	limiter := ratelimit.NewLimiter(interval, logger)

	lenCtx, cancelLen := context.WithTimeout(context.Background(), 2*time.Second)
	cachedEntries := responseCache.Len(lenCtx)
	cancelLen()

	logger.Info().
		Str("tracker", baseURL).
		Dur("rate_limit", limiter.Interval()).
		Dur("timeout", requestTimeout).
		Str("cache_provider", cfg.Cache.Provider).
		Int("cached_entries", cachedEntries).
		Msg("Client configured")

	return &client{
		httpClient:    httpClient,
		ajaxClient:    ajaxClient,
		baseURL:       baseURL,
		uploadURL:     uploadURL,
		username:      cfg.Username,
		password:      cfg.Password,
		userAgent:     userAgent,
		headers:       headers,
		limiter:       limiter,
		cache:         responseCache,
		snatchParser:  parser.NewSnatchParser(),
		selector:      services.NewReleaseSelector(),
		uploadBuilder: services.NewUploadRequestBuilder(),
		logger:        logger,
	}, nil
}

// Close releases any resources held by the client, such as cache connections.
func (c *client) Close() error {
	return c.cache.Close()
}

func (c *client) endpoint(path string) string {
	return c.baseURL + "/" + path
}

// send waits for the rate limiter, then performs the request with the browser headers.
// Every request to the tracker goes through here. The limiter interval restarts
// once the response headers arrive.
func (c *client) send(ctx context.Context, hc *http.Client, method, rawURL string, body io.Reader, contentType string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for name, value := range c.headers {
		req.Header.Set(name, value)
	}
	req.Header.Set("User-Agent", c.userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := hc.Do(req)
	c.limiter.Done()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, req.URL.Path, err)
	}
	return resp, nil
}

func (c *client) currentAccount() (*models.AccountInfo, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.account, c.account != nil
}

func (c *client) authKey() string {
	if account, ok := c.currentAccount(); ok {
		return account.AuthKey
	}
	return ""
}
