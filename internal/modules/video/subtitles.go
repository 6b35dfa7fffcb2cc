package video

import (
	"strings"

	"github.com/tubelens/core/internal/config"
)

// ResolveSubtitleURLs fills CNSubtitleURL and ENSubtitleURL on info by
// scanning the caption track maps against the configured language
// patterns. Automatically generated captions take precedence over
// uploader-provided subtitles because they are available for far more
// videos.
func ResolveSubtitleURLs(info *VideoInfo, cfg config.SubtitleConfig) {
	if info == nil {
		return
	}
	info.CNSubtitleURL = findTrackURL(info, cfg, "cn")
	info.ENSubtitleURL = findTrackURL(info, cfg, "en")
}

func findTrackURL(info *VideoInfo, cfg config.SubtitleConfig, group string) string {
	patterns := cfg.LanguagePatterns[group]
	if len(patterns) == 0 {
		return ""
	}
	if url := matchTracks(info.AutomaticCaptions, patterns, cfg.PreferredFormat); url != "" {
		return url
	}
	return matchTracks(info.Subtitles, patterns, cfg.PreferredFormat)
}

func matchTracks(tracks map[string][]CaptionTrack, patterns []string, format string) string {
	if len(tracks) == 0 {
		return ""
	}
	for _, pattern := range patterns {
		for lang, variants := range tracks {
			if !languageMatches(lang, pattern) {
				continue
			}
			for _, t := range variants {
				if t.Ext == format && t.URL != "" {
					return t.URL
				}
			}
		}
	}
	return ""
}

func languageMatches(lang, pattern string) bool {
	lang = strings.ToLower(lang)
	pattern = strings.ToLower(pattern)
	return lang == pattern || strings.HasPrefix(lang, pattern+"-")
}
