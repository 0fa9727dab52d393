package tle

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	defaultBaseURL = "https://celestrak.org/NORAD/elements/gp.php"
	maxBodyBytes   = 50 << 20
)

// Fetcher retrieves TLE text from a CelesTrak-compatible GP endpoint.
type Fetcher struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewFetcher creates a Fetcher. An empty baseURL selects CelesTrak.
func NewFetcher(baseURL string, logger *slog.Logger) *Fetcher {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Fetcher{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger: logger,
	}
}

// BaseURL returns the configured endpoint.
func (f *Fetcher) BaseURL() string {
	return f.baseURL
}

// FetchGroup downloads a named CelesTrak group such as "stations" or "weather".
func (f *Fetcher) FetchGroup(ctx context.Context, group string) ([]byte, error) {
	return f.fetch(ctx, url.Values{"GROUP": {group}, "FORMAT": {"tle"}})
}

// FetchCatalog downloads a single satellite by NORAD catalog number.
func (f *Fetcher) FetchCatalog(ctx context.Context, noradID int) ([]byte, error) {
	return f.fetch(ctx, url.Values{"CATNR": {strconv.Itoa(noradID)}, "FORMAT": {"tle"}})
}

func (f *Fetcher) fetch(ctx context.Context, query url.Values) ([]byte, error) {
	u, err := url.Parse(f.baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	start := time.Now()
	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching TLE data: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code %d from %s", resp.StatusCode, u.Redacted())
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if len(body) > maxBodyBytes {
		return nil, fmt.Errorf("response from %s exceeds %d byte limit", u.Redacted(), maxBodyBytes)
	}

	f.logger.Debug("fetched TLE data",
		"component", "tle",
		"url", u.Redacted(),
		"bytes", len(body),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return body, nil
}
