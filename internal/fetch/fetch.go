package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"jobsift/internal/model"
)

// Browser-like UA: several career sites serve bot UAs an empty shell.
const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// HTTPPageFetcher retrieves a career page over HTTP and returns its cleaned
// plain text, newline-delimited, with navigation chrome and markup stripped.
type HTTPPageFetcher struct {
	httpClient *http.Client
	userAgent  string
}

// NewHTTPPageFetcher creates a fetcher using the given client.
func NewHTTPPageFetcher(httpClient *http.Client) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		httpClient: httpClient,
		userAgent:  defaultUserAgent,
	}
}

// FetchPage GETs url and returns the page's cleaned text. Non-2xx responses
// become *model.HTTPError so retry logic can inspect the status code.
func (f *HTTPPageFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("create page request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &model.HTTPError{
			StatusCode: resp.StatusCode,
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read page body: %w", err)
	}

	return ExtractText(string(body)), nil
}
