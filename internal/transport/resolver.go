package transport

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// NetworkError signals that both the direct and the relay attempt
// failed. The underlying causes are logged, not exposed.
type NetworkError struct {
	URL string
}

func (e *NetworkError) Error() string {
	return "unable to reach provider"
}

// Options parameterise the resolver.
type Options struct {
	RelayURL  string
	Timeout   time.Duration
	UserAgent string
}

// Resolver performs a request against the primary endpoint, falling
// back to a relay endpoint that embeds the original URL as a
// query-escaped parameter. No retries beyond the two attempts; cadence
// is the caller's responsibility.
type Resolver struct {
	opts   Options
	logger zerolog.Logger
	client *http.Client

	mu        sync.Mutex
	usedRelay bool
}

// New constructs a resolver.
func New(opts Options, logger zerolog.Logger) *Resolver {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Resolver{
		opts:   opts,
		logger: logger.With().Str("component", "transport").Logger(),
		client: &http.Client{Timeout: timeout},
	}
}

// Get fetches the URL, trying the relay if the direct attempt fails.
// On success the response body is returned verbatim.
func (r *Resolver) Get(ctx context.Context, rawURL string) ([]byte, error) {
	body, directErr := r.attempt(ctx, rawURL)
	if directErr == nil {
		r.setUsedRelay(false)
		return body, nil
	}

	r.logger.Debug().Err(directErr).Str("url", rawURL).Msg("direct attempt failed, trying relay")

	relayURL := r.relayFor(rawURL)
	if relayURL == "" {
		r.logger.Warn().Str("url", rawURL).Msg("no relay configured")
		return nil, &NetworkError{URL: rawURL}
	}

	body, relayErr := r.attempt(ctx, relayURL)
	if relayErr != nil {
		r.logger.Debug().Err(relayErr).Str("url", rawURL).Msg("relay attempt failed")
		return nil, &NetworkError{URL: rawURL}
	}

	r.setUsedRelay(true)
	return body, nil
}

// UsedRelay reports whether the relay path served the most recent
// successful call.
func (r *Resolver) UsedRelay() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.usedRelay
}

func (r *Resolver) setUsedRelay(v bool) {
	r.mu.Lock()
	r.usedRelay = v
	r.mu.Unlock()
}

func (r *Resolver) relayFor(rawURL string) string {
	base := strings.TrimRight(r.opts.RelayURL, "/")
	if base == "" {
		return ""
	}
	return base + "?url=" + url.QueryEscape(rawURL)
}

func (r *Resolver) attempt(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(r.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", "spotwatch/1.0")
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	return body, nil
}
