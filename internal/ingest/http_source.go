package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"goldboard/internal/domain"
)

// DefaultTimeout bounds a single fetch attempt.
const DefaultTimeout = 30 * time.Second

// HTTPSource fetches a JSON payload via unauthenticated HTTP GET. An
// optional API key is appended as a query parameter for premium upstream
// tiers; without one the demo tier is used.
type HTTPSource struct {
	name   domain.SourceName
	url    string
	apiKey string
	client *http.Client
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient sets a custom http.Client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		s.client = client
	}
}

// WithAPIKey appends an apikey query parameter to every request.
func WithAPIKey(key string) HTTPOption {
	return func(s *HTTPSource) {
		s.apiKey = key
	}
}

// NewHTTPSource creates a source fetching from baseURL joined with path.
func NewHTTPSource(name domain.SourceName, baseURL, path string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		name:   name,
		url:    joinURL(baseURL, path),
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements PayloadSource.
func (s *HTTPSource) Name() domain.SourceName {
	return s.name
}

// URL implements PayloadSource.
func (s *HTTPSource) URL() string {
	return s.url
}

// Fetch implements PayloadSource. The request is awaited to completion;
// there is no racing against other sources and no explicit cancellation
// beyond the passed context.
func (s *HTTPSource) Fetch(ctx context.Context) (domain.RawPayload, error) {
	reqURL := s.url
	if s.apiKey != "" {
		sep := "?"
		if u, err := url.Parse(reqURL); err == nil && u.RawQuery != "" {
			sep = "&"
		}
		reqURL += sep + "apikey=" + url.QueryEscape(s.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", s.name, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", s.name, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("fetch %s: status %d: %w", s.name, resp.StatusCode, ErrBadStatus)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s body: %w", s.name, err)
	}

	var payload domain.RawPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", s.name, err, ErrInvalidJSON)
	}
	return payload, nil
}

// joinURL joins base and path with exactly one slash.
func joinURL(base, path string) string {
	for len(base) > 0 && base[len(base)-1] == '/' {
		base = base[:len(base)-1]
	}
	for len(path) > 0 && path[0] == '/' {
		path = path[1:]
	}
	return base + "/" + path
}

var _ PayloadSource = (*HTTPSource)(nil)
