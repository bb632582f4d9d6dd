// Package fetch downloads the raw NSE published files. It is a thin I/O
// collaborator: one attempt per file, no retry, a missing file on the
// server is reported as ErrNotFound for the caller to degrade on.
package fetch

import (
	"compress/gzip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"time"

	"golang.org/x/time/rate"

	"nsecli/internal/config"
)

// ErrNotFound indicates the server has no file at the requested URL,
// which for this application usually means a market holiday.
var ErrNotFound = errors.New("remote file not found")

// ErrOffline indicates the client is in offline mode and made no attempt
// to reach the network.
var ErrOffline = errors.New("offline mode, download skipped")

// Client downloads files over HTTP with a politeness rate limit and
// browser-like request headers (the NSE archive rejects bare clients).
type Client struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
	offline   bool
}

// NewClient creates a download client from configuration. Offline mode is
// carried on the client itself rather than any process-wide flag.
func NewClient(cfg config.FetchConfig) *Client {
	return &Client{
		http:      &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		userAgent: cfg.UserAgent,
		offline:   cfg.Offline,
	}
}

// Download fetches url and saves it under destDir keeping the URL's base
// name. It returns the saved file path. The file's modification time is
// set from the Last-Modified response header when the server provides
// one, so re-downloads can be detected by timestamp.
func (c *Client) Download(ctx context.Context, url, destDir string) (string, error) {
	if url == "" {
		return "", nil
	}
	filename := path.Base(url)

	if c.offline {
		slog.InfoContext(ctx, "offline mode: would download",
			slog.String("file", filename),
			slog.String("url", url))
		return "", ErrOffline
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return "", err
	}

	slog.InfoContext(ctx, "downloading", slog.String("url", url))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download %s: %w", filename, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", filename, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%s: unexpected status %d", filename, resp.StatusCode)
	}

	body := resp.Body
	// We advertise Accept-Encoding: gzip ourselves, so transparent
	// decompression is disabled and the response may arrive compressed.
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return "", fmt.Errorf("%s: failed to open gzip response: %w", filename, err)
		}
		defer gz.Close()
		body = gz
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	outPath := filepath.Join(destDir, filename)
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}
	if _, err := io.Copy(out, body); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("failed to save %s: %w", filename, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", outPath, err)
	}

	applyServerTimestamp(outPath, resp.Header.Get("Last-Modified"))

	slog.InfoContext(ctx, "downloaded successfully", slog.String("file", filename))
	return outPath, nil
}

// setHeaders applies the browser-like request headers the NSE archive
// expects.
func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, deflate")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", c.userAgent)
}

// applyServerTimestamp sets the file's atime/mtime from a Last-Modified
// header value. A missing or malformed header leaves the local time.
func applyServerTimestamp(path, lastModified string) {
	if lastModified == "" {
		return
	}
	t, err := time.Parse(http.TimeFormat, lastModified)
	if err != nil {
		slog.Debug("unparseable Last-Modified header",
			slog.String("value", lastModified),
			slog.String("file", path))
		return
	}
	if err := os.Chtimes(path, t, t); err != nil {
		slog.Debug("failed to apply server timestamp",
			slog.String("file", path),
			slog.String("error", err.Error()))
	}
}
