package apiclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/rs/zerolog"
)

// Defaults applied by DefaultConfig and by New for zero fields
const (
	DefaultBasePath = "/api"
	DefaultTimeout  = 15 * time.Second
	DefaultRetries  = 1
	DefaultAgent    = "jcc-web"
)

// Config holds the settings resolved at startup.
type Config struct {
	// BaseURL is the backend origin, e.g. http://localhost:8080
	BaseURL string
	// BasePath prefixes every request path
	BasePath string
	// Timeout bounds each attempt
	Timeout time.Duration
	// Retries is the number of extra attempts on transport failure, 0 or 1
	Retries   int
	UserAgent string
}

// DefaultConfig returns a Config for baseURL with the default base path,
// timeout and a single retry.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:   baseURL,
		BasePath:  DefaultBasePath,
		Timeout:   DefaultTimeout,
		Retries:   DefaultRetries,
		UserAgent: DefaultAgent,
	}
}

// Doer performs a request and returns the unwrapped payload.
type Doer interface {
	Do(ctx context.Context, req Request) (json.RawMessage, error)
}

// Client is the envelope-aware backend client
type Client struct {
	baseURL    string
	basePath   string
	userAgent  string
	httpClient *retryablehttp.Client
	logger     zerolog.Logger
}

var _ Doer = (*Client)(nil)

// New creates a new envelope client
func New(cfg Config, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	}

	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidConfig, cfg.BaseURL)
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = DefaultBasePath
	}
	if !strings.HasPrefix(basePath, "/") {
		return nil, fmt.Errorf("%w: base path %q must start with '/'", ErrInvalidConfig, basePath)
	}
	basePath = strings.TrimRight(basePath, "/")

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = DefaultAgent
	}

	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}

	rc := retryablehttp.NewClient()
	if options.httpClient != nil {
		rc.HTTPClient = options.httpClient
	}
	rc.HTTPClient.Timeout = timeout
	rc.RetryMax = min(max(cfg.Retries, 0), 1)
	rc.RetryWaitMin = options.retryWaitMin
	rc.RetryWaitMax = options.retryWaitMax
	rc.CheckRetry = checkRetry
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	rc.Logger = leveledLogger{logger: logger}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		basePath:   basePath,
		userAgent:  userAgent,
		httpClient: rc,
		logger:     logger,
	}, nil
}

// resolve joins the base URL, base path and path. A path that already
// carries the base path is not prefixed again.
func (c *Client) resolve(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if c.basePath != "" && (path == c.basePath || strings.HasPrefix(path, c.basePath+"/")) {
		return c.baseURL + path
	}
	return c.baseURL + c.basePath + path
}

// Do performs the request and returns the unwrapped envelope data, or the
// raw body when the response is not an envelope.
func (c *Client) Do(ctx context.Context, r Request) (json.RawMessage, error) {
	method := r.method()
	endpoint := c.resolve(r.Path)
	if params := r.Params.Values(); len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, method, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-Id", requestID)

	log := c.logger.With().
		Str("request_id", requestID).
		Str("method", method).
		Str("url", endpoint).
		Logger()

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if resp != nil {
			resp.Body.Close()
		}
		log.Error().Err(err).Msg("API request failed")
		return nil, &TransportError{Method: method, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error().Err(err).Int("status", resp.StatusCode).Msg("Failed to read API response")
		return nil, &TransportError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("failed to read response body: %w", err),
		}
	}

	log.Debug().
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("API response received")

	env, isEnvelope := parseEnvelope(body)
	statusOK := resp.StatusCode >= 200 && resp.StatusCode < 300

	switch {
	case isEnvelope && !env.Succeeded():
		log.Warn().
			Int("status", resp.StatusCode).
			Int("code", env.Code).
			Str("msg", env.Msg).
			Msg("API returned failure envelope")
		return nil, newRemoteError(env)

	case !statusOK:
		log.Error().
			Int("status", resp.StatusCode).
			Str("body", string(body)).
			Msg("API error")
		return nil, &TransportError{
			Method:     method,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        ErrUnexpectedStatus,
		}

	case isEnvelope:
		return env.Payload(), nil

	default:
		return json.RawMessage(body), nil
	}
}

// Fetch performs req through d and decodes the payload into T.
// A null or empty payload yields the zero value of T.
func Fetch[T any](ctx context.Context, d Doer, req Request) (T, error) {
	var out T

	raw, err := d.Do(ctx, req)
	if err != nil {
		return out, err
	}

	if isNull(raw) {
		return out, nil
	}

	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &MalformedResponseError{
			Path:   req.Path,
			Reason: "payload does not match the expected shape",
			Err:    err,
		}
	}

	return out, nil
}
