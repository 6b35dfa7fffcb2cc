package video

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tubelens/core/internal/config"
)

func testSubtitleConfig() config.SubtitleConfig {
	return config.SubtitleConfig{
		LanguagePatterns: map[string][]string{
			"en": {"en", "en-zh-Hans"},
			"cn": {"cn", "zh-Hans-zh-Hans", "zh-Hans"},
		},
		PreferredFormat: "vtt",
	}
}

func TestResolveSubtitleURLs(t *testing.T) {
	tests := []struct {
		name   string
		info   VideoInfo
		wantCN string
		wantEN string
	}{
		{
			name: "automatic captions matched by exact language key",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"en": {
						{Ext: "srv1", URL: "https://example.com/en.srv1"},
						{Ext: "vtt", URL: "https://example.com/en.vtt"},
					},
				},
			},
			wantEN: "https://example.com/en.vtt",
		},
		{
			name: "region variant matched by prefix",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"en-US": {{Ext: "vtt", URL: "https://example.com/en-us.vtt"}},
				},
			},
			wantEN: "https://example.com/en-us.vtt",
		},
		{
			name: "chinese translated track",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"zh-Hans": {{Ext: "vtt", URL: "https://example.com/zh.vtt"}},
				},
			},
			wantCN: "https://example.com/zh.vtt",
		},
		{
			name: "automatic captions win over uploader subtitles",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"en": {{Ext: "vtt", URL: "https://example.com/auto.vtt"}},
				},
				Subtitles: map[string][]CaptionTrack{
					"en": {{Ext: "vtt", URL: "https://example.com/manual.vtt"}},
				},
			},
			wantEN: "https://example.com/auto.vtt",
		},
		{
			name: "uploader subtitles used when no automatic track matches",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"ja": {{Ext: "vtt", URL: "https://example.com/ja.vtt"}},
				},
				Subtitles: map[string][]CaptionTrack{
					"en": {{Ext: "vtt", URL: "https://example.com/manual.vtt"}},
				},
			},
			wantEN: "https://example.com/manual.vtt",
		},
		{
			name: "non preferred format is skipped",
			info: VideoInfo{
				AutomaticCaptions: map[string][]CaptionTrack{
					"en": {{Ext: "srv3", URL: "https://example.com/en.srv3"}},
				},
			},
		},
		{
			name: "no caption data at all",
			info: VideoInfo{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := tt.info
			ResolveSubtitleURLs(&info, testSubtitleConfig())
			assert.Equal(t, tt.wantCN, info.CNSubtitleURL)
			assert.Equal(t, tt.wantEN, info.ENSubtitleURL)
		})
	}
}

func TestSubtitleURLPrefersChinese(t *testing.T) {
	info := VideoInfo{
		CNSubtitleURL: "https://example.com/cn.vtt",
		ENSubtitleURL: "https://example.com/en.vtt",
	}
	assert.Equal(t, "https://example.com/cn.vtt", info.SubtitleURL())

	info.CNSubtitleURL = ""
	assert.Equal(t, "https://example.com/en.vtt", info.SubtitleURL())

	info.ENSubtitleURL = ""
	assert.Equal(t, "", info.SubtitleURL())
}
