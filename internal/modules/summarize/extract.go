package summarize

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
)

var reFencedJSON = regexp.MustCompile("(?s)```(?:json|JSON)?\\s*\n(.*?)\n\\s*```")

const maxFragmentLen = 256

// Extract locates a structured summary object inside free-form model text.
// Retries append drafts to one transcript, so when several fenced blocks
// parse, the last one wins.
func Extract(modelText string) (*Candidate, error) {
	matches := reFencedJSON.FindAllStringSubmatch(modelText, -1)
	for i := len(matches) - 1; i >= 0; i-- {
		if c, err := parseCandidate(matches[i][1]); err == nil {
			return c, nil
		}
	}

	span := balancedObjectSpan(modelText)
	if span == "" {
		return nil, &ExtractionError{Fragment: fragment(modelText)}
	}
	if c, err := parseCandidate(span); err == nil {
		return c, nil
	}

	// Repair pass for escaping artifacts in the raw span.
	repaired := strings.ReplaceAll(span, `\n`, "\n")
	if c, err := parseCandidate(repaired); err == nil {
		return c, nil
	}
	repaired = strings.ReplaceAll(repaired, `\`, "")
	if c, err := parseCandidate(repaired); err == nil {
		return c, nil
	}

	return nil, &ExtractionError{Fragment: fragment(span)}
}

func parseCandidate(raw string) (*Candidate, error) {
	raw = strings.TrimSpace(raw)

	var fields map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		return nil, err
	}

	var result SummaryResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return &Candidate{Result: result, Keys: keys}, nil
}

// balancedObjectSpan returns the outermost {...} span, tracking strings and
// escapes so braces inside values do not confuse the scan. Falls back to a
// first-{ last-} slice when the object is left unterminated.
func balancedObjectSpan(text string) string {
	start := strings.Index(text, "{")
	if start < 0 {
		return ""
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if escaped {
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			if inString {
				escaped = true
			}
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return text[start : i+1]
				}
			}
		}
	}

	if end := strings.LastIndex(text, "}"); end > start {
		return text[start : end+1]
	}
	return ""
}

func fragment(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxFragmentLen {
		return s[:maxFragmentLen] + "..."
	}
	return s
}
