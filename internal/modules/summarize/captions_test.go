package summarize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:01.000 --> 00:00:05.000
Hello and welcome to our guide.

00:01:00.000 --> 00:01:10.000
Unlike classical bits, qubits can exist in multiple states.
`

func TestParseVTT(t *testing.T) {
	units, err := ParseVTT(sampleVTT)
	require.NoError(t, err)
	require.Equal(t, []CaptionUnit{
		{StartTime: "00:00:01", Text: "Hello and welcome to our guide."},
		{StartTime: "00:01:00", Text: "Unlike classical bits, qubits can exist in multiple states."},
	}, units)
}

func TestParseVTTCueIndex(t *testing.T) {
	raw := "WEBVTT\n\n1\n00:00:01.000 --> 00:00:05.000\nfirst line\nsecond line\n\n2\n00:00:05.000 --> 00:00:09.000\nthird line\n"
	units, err := ParseVTT(raw)
	require.NoError(t, err)
	require.Len(t, units, 2)
	assert.Equal(t, "first line second line", units[0].Text)
	assert.Equal(t, "00:00:05", units[1].StartTime)
}

func TestParseVTTAdjacentDuplicates(t *testing.T) {
	raw := "WEBVTT\n\n" +
		"00:00:01.000 --> 00:00:03.000\nsame text\n\n" +
		"00:00:03.000 --> 00:00:05.000\nsame text\n\n" +
		"00:00:05.000 --> 00:00:07.000\nother text\n\n" +
		"00:00:07.000 --> 00:00:09.000\nsame text\n"
	units, err := ParseVTT(raw)
	require.NoError(t, err)
	// Adjacent duplicate dropped, non-adjacent repeat kept.
	require.Len(t, units, 3)
	assert.Equal(t, "same text", units[0].Text)
	assert.Equal(t, "other text", units[1].Text)
	assert.Equal(t, "same text", units[2].Text)
}

func TestParseVTTSkipsMalformedBlocks(t *testing.T) {
	raw := "WEBVTT\n\nnot a caption block\n\n00:00:01.000 --> 00:00:05.000\nstill parsed\n"
	units, err := ParseVTT(raw)
	require.NoError(t, err)
	require.Len(t, units, 1)
	assert.Equal(t, "still parsed", units[0].Text)
}

func TestParseVTTNoBlocks(t *testing.T) {
	_, err := ParseVTT("garbage without any cue")
	var perr *ParsingError
	require.ErrorAs(t, err, &perr)
}

func TestCleanCaptionText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"inline timestamps", "Hello<00:00:01.000> world", "Hello world"},
		{"markup tags", "<c.colorCCCCCC>Hello</c> <b>there</b>", "Hello there"},
		{"entities", "a &amp; b&nbsp;c", "a & b c"},
		{"entity-escaped markup", "&lt;b&gt;bold&lt;/b&gt;", "bold"},
		{"align position", "Hello align:start position:0% world", "Hello world"},
		{"whitespace runs", "too   many\n\nspaces", "too many spaces"},
		{"repeated punctuation", "wait... what??", "wait. what?"},
		{"mixed punctuation run kept", "really?!", "really?!"},
		{"space before punctuation", "hello , world !", "hello, world!"},
		{"time range line", "00:00:01.000 --> 00:00:05.000 text", "text"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CleanCaptionText(tt.in))
		})
	}
}

func TestCleanCaptionTextIdempotent(t *testing.T) {
	inputs := []string{
		"<c>Hello</c><00:00:01.000> world...  how are you ?",
		"plain text already clean",
		"a &amp; b align:start position:10%",
		"&lt;b&gt;bold&lt;/b&gt; and &amp;lt;i&amp;gt;deep&amp;lt;/i&amp;gt;",
	}
	for _, in := range inputs {
		once := CleanCaptionText(in)
		assert.Equal(t, once, CleanCaptionText(once))
	}
}

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"01:02.500", "00:01:02"},
		{"00:01:02", "00:01:02"},
		{"00:01:02.999", "00:01:02"},
		{"12:34", "00:12:34"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatTimestamp(tt.in))
	}
}

func TestRenderCaptions(t *testing.T) {
	got := RenderCaptions([]CaptionUnit{
		{StartTime: "00:00:01", Text: "first"},
		{StartTime: "01:02", Text: "second"},
	})
	assert.Equal(t, "[00:00:01] first\n[00:01:02] second", got)
}
