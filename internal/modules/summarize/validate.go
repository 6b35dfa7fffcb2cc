package summarize

import (
	"fmt"
	"strings"
	"unicode"
)

var requiredFields = []string{"outline", "summary", "keywords", "language"}

type script int

const (
	scriptUnknown script = iota
	scriptLatin
	scriptHan
)

// Validate checks a candidate against the language, structure, and content
// rules. All categories are collected; a single recorded issue invalidates
// the candidate.
func Validate(c *Candidate, targetLanguage string) ValidationOutcome {
	out := ValidationOutcome{}

	checkLanguage(c, targetLanguage, &out)
	checkStructure(c, &out)
	checkContent(c, &out)

	total := len(out.LanguageIssues) + len(out.StructureIssues) + len(out.ContentIssues)
	if total == 0 {
		out.IsValid = true
		out.Message = "Output is valid and meets all requirements"
	} else {
		out.Message = fmt.Sprintf("summary failed %d validation checks", total)
	}
	return out
}

func checkLanguage(c *Candidate, targetLanguage string, out *ValidationOutcome) {
	declared := strings.TrimSpace(c.Result.Language)
	if declared != "" && !languageNamesMatch(declared, targetLanguage) {
		out.LanguageIssues = append(out.LanguageIssues,
			fmt.Sprintf("language field declares %q, requested %q", declared, targetLanguage))
	}

	want := expectedScript(targetLanguage)
	if want == scriptUnknown {
		return
	}

	for i, item := range c.Result.Outline {
		if item.Topic != "" && !matchesScript(item.Topic, want) {
			out.LanguageIssues = append(out.LanguageIssues,
				fmt.Sprintf("outline[%d].topic is not written in %s", i, targetLanguage))
		}
	}
	if c.Result.Summary != "" && !matchesScript(c.Result.Summary, want) {
		out.LanguageIssues = append(out.LanguageIssues,
			fmt.Sprintf("summary is not written in %s", targetLanguage))
	}
	for i, kw := range c.Result.Keywords {
		if kw != "" && !matchesScript(kw, want) {
			out.LanguageIssues = append(out.LanguageIssues,
				fmt.Sprintf("keywords[%d] is not written in %s", i, targetLanguage))
		}
	}
}

func checkStructure(c *Candidate, out *ValidationOutcome) {
	seen := make(map[string]bool, len(c.Keys))
	for _, k := range c.Keys {
		seen[k] = true
	}

	for _, f := range requiredFields {
		if !seen[f] {
			out.StructureIssues = append(out.StructureIssues, fmt.Sprintf("missing required field %q", f))
			out.Errors = append(out.Errors, FieldError{
				Field:   f,
				Issue:   "missing",
				Details: fmt.Sprintf("the %q field must be present at the top level", f),
			})
		}
		delete(seen, f)
	}
	for k := range seen {
		out.StructureIssues = append(out.StructureIssues, fmt.Sprintf("unexpected field %q", k))
		out.Errors = append(out.Errors, FieldError{
			Field:   k,
			Issue:   "unexpected",
			Details: "only outline, summary, keywords and language are allowed",
		})
	}
}

func checkContent(c *Candidate, out *ValidationOutcome) {
	n := len(c.Result.Outline)
	switch {
	case n == 0:
		out.ContentIssues = append(out.ContentIssues, "outline is empty")
	case n < 5:
		out.ContentIssues = append(out.ContentIssues, fmt.Sprintf("outline has %d items, target is 5 to 20", n))
	case n > 20:
		out.ContentIssues = append(out.ContentIssues, fmt.Sprintf("outline has %d items, limit is 20", n))
	}

	seen := make(map[string]int, n)
	for _, item := range c.Result.Outline {
		seen[item.Timestamp]++
	}
	for ts, count := range seen {
		if count > 1 {
			out.ContentIssues = append(out.ContentIssues, fmt.Sprintf("duplicate outline timestamp %s", ts))
		}
	}

	for i := 1; i < n; i++ {
		if c.Result.Outline[i].Timestamp < c.Result.Outline[i-1].Timestamp {
			out.ContentIssues = append(out.ContentIssues, "outline timestamps are not in ascending order")
			break
		}
	}

	for i, item := range c.Result.Outline {
		if len([]rune(item.Topic)) > 100 {
			out.ContentIssues = append(out.ContentIssues, fmt.Sprintf("outline[%d].topic exceeds 100 characters", i))
		}
	}

	if k := len(c.Result.Keywords); k < 1 || k > 3 {
		out.ContentIssues = append(out.ContentIssues, fmt.Sprintf("keyword count %d is outside 1 to 3", k))
	}
}

// Report renders the outcome the way a reviewer would read it, grouped by
// category. Used verbatim in retry prompts.
func (o ValidationOutcome) Report() string {
	var parts []string
	if len(o.LanguageIssues) > 0 {
		parts = append(parts, "Language Issues:\n"+bulleted(o.LanguageIssues))
	}
	if len(o.StructureIssues) > 0 {
		parts = append(parts, "Structure Issues:\n"+bulleted(o.StructureIssues))
	}
	if len(o.ContentIssues) > 0 {
		parts = append(parts, "Content Issues:\n"+bulleted(o.ContentIssues))
	}
	if len(o.Errors) > 0 {
		lines := make([]string, 0, len(o.Errors))
		for _, e := range o.Errors {
			lines = append(lines, fmt.Sprintf("- %s: %s\n  %s", e.Field, e.Issue, e.Details))
		}
		parts = append(parts, "Detailed Errors:\n"+strings.Join(lines, "\n"))
	}
	if len(parts) == 0 {
		return o.Message
	}
	return strings.Join(parts, "\n\n")
}

func bulleted(items []string) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, "- "+it)
	}
	return strings.Join(lines, "\n")
}

func languageNamesMatch(declared, target string) bool {
	d := strings.ToLower(strings.TrimSpace(declared))
	t := strings.ToLower(strings.TrimSpace(target))
	if d == t {
		return true
	}
	return strings.Contains(d, t) || strings.Contains(t, d)
}

func expectedScript(targetLanguage string) script {
	t := strings.ToLower(targetLanguage)
	switch {
	case strings.Contains(t, "chinese"), strings.Contains(t, "zh"), t == "cn":
		return scriptHan
	case strings.Contains(t, "english"), t == "en":
		return scriptLatin
	default:
		return scriptUnknown
	}
}

// matchesScript is a coarse check: Chinese text must contain Han runes,
// English text must contain none. Proper nouns and loan words keep it from
// being stricter than that.
func matchesScript(text string, want script) bool {
	var han, latin int
	for _, r := range text {
		switch {
		case unicode.Is(unicode.Han, r):
			han++
		case r < 128 && unicode.IsLetter(r):
			latin++
		}
	}
	if han == 0 && latin == 0 {
		return true
	}
	switch want {
	case scriptHan:
		return han > 0
	case scriptLatin:
		return han == 0
	}
	return true
}
