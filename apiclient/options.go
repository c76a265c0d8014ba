package apiclient

import (
	"net/http"
	"time"
)

// Option configures a Client.
type Option func(*clientOptions)

// clientOptions holds optional settings not covered by Config.
type clientOptions struct {
	httpClient   *http.Client
	retryWaitMin time.Duration
	retryWaitMax time.Duration
}

func defaultOptions() clientOptions {
	return clientOptions{
		retryWaitMin: 300 * time.Millisecond,
		retryWaitMax: 2 * time.Second,
	}
}

// WithHTTPClient sets the underlying HTTP client. Its Timeout is replaced
// by Config.Timeout.
func WithHTTPClient(client *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// WithRetryWait sets the bounds of the wait before the retry attempt.
func WithRetryWait(minWait, maxWait time.Duration) Option {
	return func(o *clientOptions) {
		if minWait >= 0 && maxWait >= minWait {
			o.retryWaitMin = minWait
			o.retryWaitMax = maxWait
		}
	}
}
