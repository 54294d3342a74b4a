// Package netx contains small networking helpers shared by the client.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CheckReachable probes url with a lightweight GET and reports whether the
// backend answered at all. Any HTTP status counts as reachable; only transport
// failures (DNS, refused connection, timeout) are errors.
//
// The probe is bounded by timeout regardless of the parent context.
func CheckReachable(ctx context.Context, url string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("building probe request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	return nil
}
