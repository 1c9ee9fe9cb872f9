package upstream

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrUpstream wraps any third-party API failure. Callers surface it as a
// generic retry-able message; there is no automatic retry or backoff.
var ErrUpstream = errors.New("upstream service error")

// defaultTimeout bounds every outbound call so a stuck upstream cannot pin
// request handlers.
const defaultTimeout = 15 * time.Second

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}

// readBody drains a response, capping the size so a misbehaving upstream
// cannot balloon memory.
func readBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("%w: reading response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d: %s", ErrUpstream, resp.StatusCode, truncate(body, 200))
	}
	return body, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
