package ingestion

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the user agent string for HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (compatible; RoleColorAgent/1.0)"

// FetchError represents an error during URL fetching.
type FetchError struct {
	URL     string
	Message string
	Cause   error
}

func (e *FetchError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *FetchError) Unwrap() error {
	return e.Cause
}

// FetchOptions configures URL fetching.
type FetchOptions struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultFetchOptions returns sensible defaults for fetching.
func DefaultFetchOptions() *FetchOptions {
	return &FetchOptions{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// FetchURL retrieves the raw body of a URL.
func FetchURL(ctx context.Context, urlStr string, opts *FetchOptions) (string, error) {
	if opts == nil {
		opts = DefaultFetchOptions()
	}

	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return "", &FetchError{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	client := &http.Client{Timeout: opts.Timeout}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", opts.UserAgent)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &FetchError{URL: urlStr, Message: fmt.Sprintf("unexpected status %d", resp.StatusCode)}
	}

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	return string(bodyBytes), nil
}

// IngestFromURL fetches an HTML resume or profile page, extracts the main
// text, cleans it, and returns the cleaned text with metadata.
func IngestFromURL(ctx context.Context, urlStr string) (string, *Metadata, error) {
	html, err := FetchURL(ctx, urlStr, nil)
	if err != nil {
		return "", nil, err
	}

	textContent, err := ExtractHTMLText(html)
	if err != nil {
		return "", nil, fmt.Errorf("content extraction failed: %w", err)
	}

	cleanedText := CleanText(textContent)

	metadata := NewMetadata(cleanedText, urlStr)
	metadata.SourceType = "url"

	return cleanedText, metadata, nil
}
