package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultFetchCap = 256 << 10
	maxFetchCap     = 2 << 20
	fetchTimeout    = 30 * time.Second
)

var fetchClient = &http.Client{
	Timeout: fetchTimeout,
	// A redirect could hop from a vetted public URL to an internal
	// one after the sanitizer has already passed it, so redirects are
	// not followed.
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

// handleFetch GETs an already-validated URL and returns status plus a
// size-capped body.
func handleFetch(ctx context.Context, args map[string]any) (any, error) {
	url, _ := args["url"].(string)

	cap64 := int64(defaultFetchCap)
	if n, ok := args["max_bytes"].(int64); ok && n > 0 {
		cap64 = n
	}
	if cap64 > maxFetchCap {
		cap64 = maxFetchCap
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", "toolgate/http_fetch")

	resp, err := fetchClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, cap64))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	truncated := false
	if resp.ContentLength > int64(len(body)) {
		truncated = true
	} else if resp.ContentLength < 0 {
		// Unknown length: probe one byte past the cap.
		var one [1]byte
		if n, _ := resp.Body.Read(one[:]); n > 0 {
			truncated = true
		}
	}

	return map[string]any{
		"url":          url,
		"status":       resp.StatusCode,
		"content_type": resp.Header.Get("Content-Type"),
		"body":         string(body),
		"truncated":    truncated,
	}, nil
}
