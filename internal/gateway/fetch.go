package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const maxDocumentBytes = 10 << 20

// ErrDocumentTooLarge is returned for bodies over the fetcher's MaxBytes.
// Parsing a truncated document would drop records silently.
var ErrDocumentTooLarge = errors.New("document too large")

// Fetcher retrieves a remote text document.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher fetches over plain HTTP GET. No retries.
type HTTPFetcher struct {
	Client   *http.Client
	MaxBytes int64
}

func NewHTTPFetcher(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPFetcher{Client: client, MaxBytes: maxDocumentBytes}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return "", fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("failed to fetch GitHub file: %s", http.StatusText(resp.StatusCode))
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = maxDocumentBytes
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}
	if int64(len(b)) > limit {
		return "", fmt.Errorf("%w: over %d bytes", ErrDocumentTooLarge, limit)
	}
	return string(b), nil
}
