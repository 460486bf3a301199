package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"newsdesk/internal/config"
	"newsdesk/internal/logger"
	"newsdesk/internal/metrics"
	"newsdesk/internal/network"
)

const (
	proxyTimeout  = 20 * time.Second
	hostRateLimit = 8 // requests per second per upstream host
	hostRateBurst = 16
)

// ProxyResult is a fetched remote resource. Fallback marks a response that was
// swapped to the placeholder after the requested image failed.
type ProxyResult struct {
	Data        []byte
	ContentType string
	Fallback    bool
}

// ProxyService mirrors the card fallback rules server-side: a failing image is
// swapped exactly once to its placeholder, a failing favicon is simply absent.
type ProxyService interface {
	FetchImage(ctx context.Context, imageURL, fallbackURL string) (*ProxyResult, error)
	FetchFavicon(ctx context.Context, host string) (*ProxyResult, error)
}

type proxyService struct {
	clientFactory *network.ClientFactory
	faviconBase   string

	mu       sync.Mutex
	limiters map[string]*rate.Limiter
}

func NewProxyService(clientFactory *network.ClientFactory, faviconBase string) ProxyService {
	if clientFactory == nil {
		clientFactory = network.NewClientFactory()
	}
	return &proxyService{
		clientFactory: clientFactory,
		faviconBase:   faviconBase,
		limiters:      make(map[string]*rate.Limiter),
	}
}

// FetchImage fetches the requested image. On any failure it swaps once to the
// fallback address; a failing fallback is not retried.
func (s *proxyService) FetchImage(ctx context.Context, imageURL, fallbackURL string) (*ProxyResult, error) {
	parsed, err := url.Parse(imageURL)
	if err != nil || parsed.Hostname() == "" {
		return nil, ErrInvalid
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, ErrInvalid
	}
	if !s.allow(parsed.Hostname()) {
		return nil, ErrRateLimited
	}

	result, err := s.doFetch(ctx, imageURL, true)
	if err == nil {
		return result, nil
	}
	logger.Debug("image fetch failed, swapping to placeholder",
		"module", "service", "action", "fetch", "resource", "image", "result", "failed",
		"host", parsed.Hostname(), "error", err)

	if fallbackURL == "" {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamRejected, err)
	}
	result, err = s.doFetch(ctx, fallbackURL, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamRejected, err)
	}
	metrics.ProxyFallbacks.Inc()
	result.Fallback = true
	return result, nil
}

// FetchFavicon fetches the favicon for a host. Callers hide the element on
// error; there is no secondary fallback.
func (s *proxyService) FetchFavicon(ctx context.Context, host string) (*ProxyResult, error) {
	host = strings.TrimSpace(host)
	if host == "" || strings.ContainsAny(host, "/?#") {
		return nil, ErrInvalid
	}
	if !s.allow(host) {
		return nil, ErrRateLimited
	}

	faviconURL := fmt.Sprintf("%s?domain=%s&sz=64", s.faviconBase, url.QueryEscape(host))
	result, err := s.doFetch(ctx, faviconURL, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpstreamRejected, err)
	}
	return result, nil
}

func (s *proxyService) doFetch(ctx context.Context, rawURL string, wantImage bool) (*ProxyResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", config.UserAgent)
	req.Header.Set("Accept", "image/avif,image/webp,image/png,image/*,*/*;q=0.8")

	client := s.clientFactory.NewHTTPClient(proxyTimeout)
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	contentType := resp.Header.Get("Content-Type")
	if wantImage && !strings.HasPrefix(contentType, "image/") {
		return nil, fmt.Errorf("not an image: %q", contentType)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	return &ProxyResult{Data: data, ContentType: contentType}, nil
}

// allow applies the per-host token bucket. A limited request is rejected, not
// queued; nothing in this system retries.
func (s *proxyService) allow(host string) bool {
	s.mu.Lock()
	limiter, ok := s.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(rate.Limit(hostRateLimit), hostRateBurst)
		s.limiters[host] = limiter
	}
	s.mu.Unlock()
	return limiter.Allow()
}
