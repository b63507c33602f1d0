package services

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
)

// Hard cap on any buffered provider response. Exceeding it is a fatal
// failure, not something to retry.
const MaxImageResponseBytes = 50 * 1024 * 1024

func GetEnv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// ReadFileFromUrl downloads url into memory, refusing to buffer more than
// maxBytes. Returns the content and the response Content-Type.
func ReadFileFromUrl(ctx context.Context, url string, maxBytes int64) ([]byte, string, error) {
	httpClient := &http.Client{}
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create HTTP request: %v", err)
	}
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get response: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, "", fmt.Errorf("failed to fetch file, status code: %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, maxBytes+1))
	if err != nil {
		return nil, "", fmt.Errorf("failed to read response body: %v", err)
	}
	if int64(len(content)) > maxBytes {
		return nil, "", fmt.Errorf("response larger than %d bytes limit", maxBytes)
	}

	return content, resp.Header.Get("Content-Type"), nil
}
