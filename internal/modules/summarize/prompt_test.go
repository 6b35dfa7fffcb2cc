package summarize

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCaptions() []CaptionUnit {
	return []CaptionUnit{
		{StartTime: "00:00:01", Text: "Hello and welcome to our guide."},
		{StartTime: "00:01:00", Text: "Unlike classical bits, qubits can exist in multiple states."},
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt, err := BuildPrompt(SummaryRequest{
		Title:          "Quantum Computing Explained",
		Description:    "A gentle introduction.",
		Captions:       testCaptions(),
		TargetLanguage: "English",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "Quantum Computing Explained")
	assert.Contains(t, prompt, "[00:00:01] Hello and welcome to our guide.")
	assert.Contains(t, prompt, "[00:01:00] Unlike classical bits, qubits can exist in multiple states.")
	assert.Contains(t, prompt, "English")
}

func TestBuildPromptDefaults(t *testing.T) {
	prompt, err := BuildPrompt(SummaryRequest{
		Captions:       testCaptions(),
		TargetLanguage: "English",
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, defaultTitle)
	assert.Contains(t, prompt, defaultDescription)
}

func TestBuildPromptMissingInputs(t *testing.T) {
	var ierr *InvalidRequestError

	_, err := BuildPrompt(SummaryRequest{TargetLanguage: "English"})
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "captions", ierr.Field)

	_, err = BuildPrompt(SummaryRequest{Captions: testCaptions()})
	require.ErrorAs(t, err, &ierr)
	assert.Equal(t, "target language", ierr.Field)
}

func TestBuildPromptTruncation(t *testing.T) {
	prompt, err := BuildPrompt(SummaryRequest{
		Title:          strings.Repeat("t", maxTitleLen+50),
		Description:    strings.Repeat("d", maxDescriptionLen+50),
		Captions:       testCaptions(),
		TargetLanguage: "English",
	})
	require.NoError(t, err)
	assert.NotContains(t, prompt, strings.Repeat("t", maxTitleLen+1))
	assert.NotContains(t, prompt, strings.Repeat("d", maxDescriptionLen+1))
	assert.Contains(t, prompt, strings.Repeat("t", maxTitleLen))
}

func TestBuildPromptTruncatesByRunes(t *testing.T) {
	prompt, err := BuildPrompt(SummaryRequest{
		Title:          strings.Repeat("中", maxTitleLen+100),
		Captions:       testCaptions(),
		TargetLanguage: "Simplified Chinese",
	})
	require.NoError(t, err)
	assert.True(t, utf8.ValidString(prompt))
	assert.Contains(t, prompt, strings.Repeat("中", maxTitleLen))
	assert.NotContains(t, prompt, strings.Repeat("中", maxTitleLen+1))
}

func TestSystemPromptMentionsLanguage(t *testing.T) {
	sp := SystemPrompt("Simplified Chinese")
	assert.Contains(t, sp, "Simplified Chinese")
	assert.Contains(t, sp, `"outline"`)
}

func TestBuildRetryPromptEmbedsReport(t *testing.T) {
	outcome := ValidationOutcome{
		Message:        "summary failed 1 validation checks",
		LanguageIssues: []string{"summary is not written in Simplified Chinese"},
	}
	prompt := BuildRetryPrompt(outcome, "Simplified Chinese")
	assert.Contains(t, prompt, "Language Issues:")
	assert.Contains(t, prompt, "summary is not written in Simplified Chinese")
	assert.Contains(t, prompt, "Simplified Chinese")
}
