package resources

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"
	"github.com/hashicorp/go-cleanhttp"
	"github.com/opencontainers/go-digest"
)

// Fetches a download resource into its destination, going through the
// cache when one is configured.
func (p *Preparer) download(ctx context.Context, r Resource) error {
	cached := p.cachePath(r.URL)

	if cached != "" && !p.Refresh {
		data, err := os.ReadFile(cached)
		if err == nil {
			slog.Debug("using cached download", "url", r.URL, "cache", cached)
			return writeFileAtomic(p.destPath(r), data)
		}
		if !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("ignoring unreadable cache entry", "cache", cached, "error", err)
		}
	}

	data, err := p.fetch(ctx, r.URL)
	if err != nil {
		return err
	}

	slog.Info("downloaded resource", "url", r.URL, "size", humanize.Bytes(uint64(len(data))))

	if cached != "" {
		if err := writeFileAtomic(cached, data); err != nil {
			slog.Warn("failed to cache download", "cache", cached, "error", err)
		}
	}

	return writeFileAtomic(p.destPath(r), data)
}

// Returns the cache file for url, or "" when caching is disabled.
func (p *Preparer) cachePath(url string) string {
	if p.CacheDir == "" {
		return ""
	}
	return filepath.Join(p.CacheDir, digest.FromString(url).Encoded())
}

// Performs a GET with retries.
//
// Transport errors and 5xx responses are retried with exponential backoff.
// Any other non-200 response fails immediately.
func (p *Preparer) fetch(ctx context.Context, url string) ([]byte, error) {
	client := p.Client
	if client == nil {
		client = cleanhttp.DefaultClient()
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = p.InitialInterval
	if bo.InitialInterval <= 0 {
		bo.InitialInterval = DefaultInitialInterval
	}
	bo.MaxElapsedTime = p.MaxElapsedTime
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = DefaultMaxElapsedTime
	}

	attempt := 0
	return backoff.RetryWithData(func() ([]byte, error) {
		attempt++

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return nil, backoff.Permanent(err)
		}

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			slog.Debug("download attempt failed", "url", url, "attempt", attempt, "error", err)
			return nil, err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusOK:
			return io.ReadAll(resp.Body)
		case resp.StatusCode >= 500:
			err := fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
			slog.Debug("download attempt failed", "url", url, "attempt", attempt, "error", err)
			return nil, err
		default:
			return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status))
		}
	}, backoff.WithContext(bo, ctx))
}
