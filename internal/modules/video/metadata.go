package video

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// MetadataFetcher extracts video metadata, including the available
// caption tracks, without downloading media.
type MetadataFetcher interface {
	Fetch(ctx context.Context, videoURL string) (*VideoInfo, error)
}

// YtDlpFetcher shells out to yt-dlp for metadata extraction.
type YtDlpFetcher struct {
	CookiesPath string
}

func NewYtDlpFetcher(cookiesPath string) *YtDlpFetcher {
	return &YtDlpFetcher{CookiesPath: cookiesPath}
}

func (f *YtDlpFetcher) Fetch(ctx context.Context, videoURL string) (*VideoInfo, error) {
	if strings.TrimSpace(videoURL) == "" {
		return nil, &MetadataError{URL: videoURL, Err: fmt.Errorf("video URL is required")}
	}

	args := []string{"-J", "--skip-download"}
	if strings.TrimSpace(f.CookiesPath) != "" {
		args = append(args, "--cookies", f.CookiesPath)
	}
	args = append(args, videoURL)

	cmd := exec.CommandContext(ctx, "yt-dlp", args...)
	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, &MetadataError{URL: videoURL, Err: fmt.Errorf("yt-dlp failed: %w: %s", err, strings.TrimSpace(stderr.String()))}
	}
	if stdout.Len() == 0 {
		return nil, &MetadataError{URL: videoURL, Err: fmt.Errorf("yt-dlp returned empty output")}
	}

	info, err := ParseVideoInfo(stdout.Bytes())
	if err != nil {
		return nil, &MetadataError{URL: videoURL, Err: err}
	}
	return info, nil
}

// ParseVideoInfo decodes the extractor JSON into VideoInfo.
func ParseVideoInfo(raw []byte) (*VideoInfo, error) {
	var info VideoInfo
	if err := json.Unmarshal(raw, &info); err != nil {
		return nil, fmt.Errorf("decode extractor output: %w", err)
	}
	if info.ID == "" {
		return nil, fmt.Errorf("extractor output has no video id")
	}
	return &info, nil
}
