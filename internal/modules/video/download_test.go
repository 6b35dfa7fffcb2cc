package video

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubelens/core/internal/config"
)

func TestDownloadSendsBrowserHeaders(t *testing.T) {
	var gotUA, gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotCookie = r.Header.Get("Cookie")
		w.Write([]byte("WEBVTT"))
	}))
	defer srv.Close()

	cookieFile := filepath.Join(t.TempDir(), "cookies.txt")
	content := "# Netscape HTTP Cookie File\n" +
		".youtube.com\tTRUE\t/\tTRUE\t0\tPREF\tf6=40000000\n"
	require.NoError(t, os.WriteFile(cookieFile, []byte(content), 0o644))

	d := NewSubtitleDownloader(config.DownloadConfig{
		CookiesPath:    cookieFile,
		TimeoutSeconds: 5,
		MaxRetries:     0,
	}, nil)

	body, err := d.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "WEBVTT", string(body))
	assert.Contains(t, gotUA, "Chrome/123")
	assert.Contains(t, gotCookie, "PREF=f6=40000000")
}

func TestDownloadRetriesThenSucceeds(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	d := NewSubtitleDownloader(config.DownloadConfig{TimeoutSeconds: 5, MaxRetries: 2}, nil)

	body, err := d.Download(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestDownloadExhaustsRetries(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	d := NewSubtitleDownloader(config.DownloadConfig{TimeoutSeconds: 5, MaxRetries: 2}, nil)

	_, err := d.Download(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "after 3 attempts")
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestBackoffDelayIsLinearFromTwoSeconds(t *testing.T) {
	assert.Equal(t, 2*time.Second, backoffDelay(1))
	assert.Equal(t, 4*time.Second, backoffDelay(2))
	assert.Equal(t, 6*time.Second, backoffDelay(3))
}

func TestDownloadHonorsCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewSubtitleDownloader(config.DownloadConfig{TimeoutSeconds: 5, MaxRetries: 5}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := d.Download(ctx, srv.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoadNetscapeCookies(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cookies.txt")
	content := "# Netscape HTTP Cookie File\n" +
		"# This is a generated file! Do not edit.\n" +
		"\n" +
		".youtube.com\tTRUE\t/\tTRUE\t1893456000\tVISITOR_INFO1_LIVE\tabc123\n" +
		".youtube.com\tTRUE\t/\tFALSE\t0\tPREF\thl=en\n" +
		"malformed line without tabs\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cookies, err := LoadNetscapeCookies(path)
	require.NoError(t, err)
	require.Len(t, cookies, 2)

	assert.Equal(t, "VISITOR_INFO1_LIVE", cookies[0].Name)
	assert.Equal(t, "abc123", cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	assert.Equal(t, "PREF", cookies[1].Name)
	assert.False(t, cookies[1].Secure)
}

func TestLoadNetscapeCookiesMissingFile(t *testing.T) {
	_, err := LoadNetscapeCookies(filepath.Join(t.TempDir(), "nope.txt"))
	assert.Error(t, err)
}
