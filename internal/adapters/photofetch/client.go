// internal/adapters/photofetch/client.go
package photofetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"stayhub/internal/adapters/observability"
)

// Client downloads a photo from a user-supplied URL into the uploads
// directory, with client-side rate limiting so one user pasting links cannot
// turn the API into a scraping proxy.
type Client struct {
	hc       *http.Client
	rl       *rate.Limiter
	dir      string
	maxBytes int64
}

var (
	ErrNotFound = errors.New("photofetch: not found")
	ErrNotImage = errors.New("photofetch: not an image")
	ErrTooLarge = errors.New("photofetch: image too large")
)

const defaultMaxBytes = 15 << 20

func New(dir string, rps int) *Client {
	if rps <= 0 {
		rps = 5
	}
	return &Client{
		hc:       &http.Client{Timeout: 20 * time.Second},
		rl:       rate.NewLimiter(rate.Limit(rps), rps),
		dir:      dir,
		maxBytes: defaultMaxBytes,
	}
}

var extByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// Fetch downloads url and returns the generated filename. Retries on 429 and
// transient 5xx, honoring Retry-After when provided.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return "", err
	}

	var lastErr error
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return "", err
		}
		req.Header.Set("Accept", "image/*")
		req.Header.Set("User-Agent", "stayhub/1.0")

		start := time.Now()
		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			return "", lastErr
		}
		observability.ObserveExternal("photofetch", "download", resp.StatusCode, time.Since(start))

		switch resp.StatusCode {
		case http.StatusOK:
			name, err := c.save(resp)
			resp.Body.Close()
			return name, err

		case http.StatusNotFound:
			resp.Body.Close()
			return "", ErrNotFound

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("photofetch: status %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			return "", lastErr

		default:
			resp.Body.Close()
			return "", fmt.Errorf("photofetch: status %d", resp.StatusCode)
		}
	}
	return "", lastErr
}

func (c *Client) save(resp *http.Response) (string, error) {
	ct := resp.Header.Get("Content-Type")
	if i := strings.IndexByte(ct, ';'); i >= 0 {
		ct = ct[:i]
	}
	ct = strings.TrimSpace(strings.ToLower(ct))
	ext, ok := extByType[ct]
	if !ok {
		return "", ErrNotImage
	}

	name := "photo-" + uuid.NewString() + ext
	f, err := os.Create(filepath.Join(c.dir, name))
	if err != nil {
		return "", err
	}

	n, err := io.Copy(f, io.LimitReader(resp.Body, c.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > c.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(filepath.Join(c.dir, name))
		return "", err
	}
	return name, nil
}

func backoff(attempt int) time.Duration {
	return time.Duration(1<<attempt) * 500 * time.Millisecond
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return 0
}

// sleepCtx sleeps for d unless ctx finishes first; reports whether the caller
// should retry.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}
