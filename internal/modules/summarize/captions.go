package summarize

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	reInlineTimestamp  = regexp.MustCompile(`<\d{2}:\d{2}:\d{2}\.\d{3}>`)
	reMarkupTag        = regexp.MustCompile(`</?[^>]+?>`)
	reAlignPosition    = regexp.MustCompile(`align:start position:\d+%`)
	reWhitespace       = regexp.MustCompile(`\s+`)
	reSpaceBeforePunct = regexp.MustCompile(`\s+([.,!?;:])`)
	reTimeRangeLine    = regexp.MustCompile(`\d{2}:\d{2}:\d{2}\.\d{3} --> \d{2}:\d{2}:\d{2}\.\d{3}`)
)

// ParseVTT converts raw timed-text into ordered (start time, text) units.
// Malformed blocks are skipped; only a fully unparseable input is an error.
func ParseVTT(raw string) ([]CaptionUnit, error) {
	content := strings.ReplaceAll(raw, "\r\n", "\n")

	if strings.HasPrefix(content, "WEBVTT") {
		idx := strings.Index(content, "\n\n")
		if idx < 0 {
			return nil, &ParsingError{Reason: "header present but no caption blocks follow"}
		}
		content = content[idx+2:]
	}

	blocks := strings.Split(strings.TrimSpace(content), "\n\n")
	units := make([]CaptionUnit, 0, len(blocks))

	for _, block := range blocks {
		lines := strings.Split(strings.TrimSpace(block), "\n")
		if len(lines) < 2 {
			continue
		}

		// The time-range line is first, or second behind a cue index.
		timeLine := lines[0]
		textStart := 1
		if !strings.Contains(timeLine, "-->") {
			timeLine = lines[1]
			textStart = 2
			if !strings.Contains(timeLine, "-->") {
				continue
			}
		}

		start := strings.TrimSpace(strings.SplitN(timeLine, "-->", 2)[0])
		if dot := strings.Index(start, "."); dot >= 0 {
			start = start[:dot]
		}

		text := CleanCaptionText(strings.Join(lines[textStart:], " "))
		if text == "" {
			continue
		}
		if len(units) > 0 && units[len(units)-1].Text == text {
			continue
		}
		units = append(units, CaptionUnit{StartTime: start, Text: text})
	}

	if len(units) == 0 {
		return nil, &ParsingError{Reason: fmt.Sprintf("no well-formed caption blocks in %d candidate blocks", len(blocks))}
	}
	return units, nil
}

// CleanCaptionText strips inline markup and normalizes whitespace and
// punctuation. The pass repeats until the text stops changing, so cleaning
// cleaned text is a no-op even when entity expansion uncovers new markup.
func CleanCaptionText(text string) string {
	for {
		next := cleanPass(text)
		if next == text {
			return next
		}
		text = next
	}
}

func cleanPass(text string) string {
	text = reInlineTimestamp.ReplaceAllString(text, "")
	text = reMarkupTag.ReplaceAllString(text, "")

	text = strings.ReplaceAll(text, "&nbsp;", " ")
	text = strings.ReplaceAll(text, "&gt;", ">")
	text = strings.ReplaceAll(text, "&lt;", "<")
	text = strings.ReplaceAll(text, "&amp;", "&")

	text = reAlignPosition.ReplaceAllString(text, "")
	text = reTimeRangeLine.ReplaceAllString(text, "")
	text = reWhitespace.ReplaceAllString(text, " ")
	text = collapseRepeatedPunct(text)
	text = reSpaceBeforePunct.ReplaceAllString(text, "$1")

	return strings.TrimSpace(text)
}

// collapseRepeatedPunct reduces runs of one punctuation mark to a single
// occurrence ("..." to ".", "??" to "?").
func collapseRepeatedPunct(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	var prev rune
	for _, r := range s {
		if r == prev && strings.ContainsRune(".,!?;:", r) {
			continue
		}
		b.WriteRune(r)
		prev = r
	}
	return b.String()
}

// FormatTimestamp normalizes a caption start time to HH:MM:SS, dropping
// sub-second precision and padding MM:SS inputs with a zero hour.
func FormatTimestamp(ts string) string {
	if dot := strings.Index(ts, "."); dot >= 0 {
		ts = ts[:dot]
	}
	if strings.Count(ts, ":") == 1 {
		return "00:" + ts
	}
	return ts
}

// RenderCaptions flattens units into "[HH:MM:SS] text" lines for the prompt.
func RenderCaptions(units []CaptionUnit) string {
	var b strings.Builder
	for i, u := range units {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "[%s] %s", FormatTimestamp(u.StartTime), u.Text)
	}
	return b.String()
}
