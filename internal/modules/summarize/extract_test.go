package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractFencedBlock(t *testing.T) {
	text := "Here is the result:\n```json\n{\"outline\":[],\"summary\":\"x\",\"keywords\":[\"a\"],\"language\":\"English\"}\n```\nThanks!"
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Equal(t, "x", c.Result.Summary)
	assert.Equal(t, []string{"a"}, c.Result.Keywords)
	assert.Equal(t, "English", c.Result.Language)
	assert.Empty(t, c.Result.Outline)
	assert.Equal(t, []string{"keywords", "language", "outline", "summary"}, c.Keys)
}

func TestExtractLastFencedBlockWins(t *testing.T) {
	text := "First try:\n```json\n{\"outline\":[],\"summary\":\"old\",\"keywords\":[\"a\"],\"language\":\"English\"}\n```\n" +
		"Corrected:\n```json\n{\"outline\":[],\"summary\":\"new\",\"keywords\":[\"a\"],\"language\":\"English\"}\n```\n"
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Equal(t, "new", c.Result.Summary)
}

func TestExtractBareObject(t *testing.T) {
	text := "Sure, here you go: {\"outline\":[{\"timestamp\":\"00:00:01\",\"topic\":\"intro\"}],\"summary\":\"s\",\"keywords\":[\"k\"],\"language\":\"English\"} hope that helps"
	c, err := Extract(text)
	require.NoError(t, err)
	require.Len(t, c.Result.Outline, 1)
	assert.Equal(t, "intro", c.Result.Outline[0].Topic)
}

func TestExtractBracesInsideStrings(t *testing.T) {
	text := "{\"outline\":[],\"summary\":\"uses {braces} inside\",\"keywords\":[\"a\"],\"language\":\"English\"} trailing }"
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Equal(t, "uses {braces} inside", c.Result.Summary)
}

func TestExtractRepairsEscapedNewlines(t *testing.T) {
	text := `{"outline":[],"summary":"line one\nline two","keywords":["a"],"language":"English"}`
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Contains(t, c.Result.Summary, "line one")
}

func TestExtractRepairsStrayBackslashes(t *testing.T) {
	text := `{"outline":[],"summary":"it\'s fine","keywords":["a"],"language":"English"}`
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Equal(t, "it's fine", c.Result.Summary)
}

func TestExtractNoPayload(t *testing.T) {
	_, err := Extract("I could not produce a summary, sorry.")
	var eerr *ExtractionError
	require.ErrorAs(t, err, &eerr)
	assert.NotEmpty(t, eerr.Fragment)
}

func TestExtractUnparseableObject(t *testing.T) {
	_, err := Extract("{this is not json at all")
	var eerr *ExtractionError
	require.ErrorAs(t, err, &eerr)
}

func TestExtractKeepsExtraKeys(t *testing.T) {
	text := `{"outline":[],"summary":"s","keywords":["k"],"language":"English","confidence":0.9}`
	c, err := Extract(text)
	require.NoError(t, err)
	assert.Contains(t, c.Keys, "confidence")
}
