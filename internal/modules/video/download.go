package video

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/tubelens/core/internal/config"
)

var browserHeaders = map[string]string{
	"User-Agent":      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36",
	"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language": "en-US,en;q=0.9",
	"Referer":         "https://www.youtube.com/",
}

// SubtitleDownloader fetches caption files over HTTP with browser-like
// headers and a linear retry backoff.
type SubtitleDownloader struct {
	client     *http.Client
	cookies    []*http.Cookie
	maxRetries int
	logger     *zap.Logger
}

func NewSubtitleDownloader(cfg config.DownloadConfig, logger *zap.Logger) *SubtitleDownloader {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &SubtitleDownloader{
		client:     &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second},
		maxRetries: cfg.MaxRetries,
		logger:     logger,
	}
	if cfg.CookiesPath != "" {
		cookies, err := LoadNetscapeCookies(cfg.CookiesPath)
		if err != nil {
			logger.Warn("cookie file not loaded", zap.String("path", cfg.CookiesPath), zap.Error(err))
		} else {
			d.cookies = cookies
		}
	}
	return d
}

// Download fetches url and returns the response body. Failed attempts
// are retried with a linear backoff of (attempt+1)*2 seconds.
func (d *SubtitleDownloader) Download(ctx context.Context, url string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := backoffDelay(attempt)
			d.logger.Debug("retrying download",
				zap.Int("attempt", attempt),
				zap.Duration("backoff", backoff))
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, err := d.fetch(ctx, url)
		if err == nil {
			return body, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
		d.logger.Warn("download attempt failed", zap.Int("attempt", attempt), zap.Error(err))
	}
	return nil, fmt.Errorf("download failed after %d attempts: %w", d.maxRetries+1, lastErr)
}

// backoffDelay grows linearly: 2s before the first retry, 4s before the
// second, and so on.
func backoffDelay(retry int) time.Duration {
	return time.Duration(retry) * 2 * time.Second
}

func (d *SubtitleDownloader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	for _, c := range d.cookies {
		req.AddCookie(c)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// LoadNetscapeCookies parses a cookies.txt file in the Netscape format
// used by yt-dlp and browser exporters.
func LoadNetscapeCookies(path string) ([]*http.Cookie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cookies []*http.Cookie
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 7 {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Domain: fields[0],
			Path:   fields[2],
			Secure: fields[3] == "TRUE",
			Name:   fields[5],
			Value:  fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return cookies, nil
}
