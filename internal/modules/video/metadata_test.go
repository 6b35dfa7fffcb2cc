package video

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseVideoInfo(t *testing.T) {
	raw := `{
		"id": "dQw4w9WgXcQ",
		"title": "Test Video",
		"description": "A video about testing.",
		"tags": ["testing", "go"],
		"duration": 212,
		"automatic_captions": {
			"en": [
				{"ext": "vtt", "url": "https://example.com/en.vtt", "name": "English"}
			]
		},
		"subtitles": {}
	}`

	info, err := ParseVideoInfo([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, "dQw4w9WgXcQ", info.ID)
	assert.Equal(t, "Test Video", info.Title)
	assert.Equal(t, []string{"testing", "go"}, info.Tags)
	assert.Equal(t, 212, info.Duration)
	require.Len(t, info.AutomaticCaptions["en"], 1)
	assert.Equal(t, "vtt", info.AutomaticCaptions["en"][0].Ext)
}

func TestParseVideoInfoRejectsMissingID(t *testing.T) {
	_, err := ParseVideoInfo([]byte(`{"title": "no id"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no video id")
}

func TestParseVideoInfoRejectsBadJSON(t *testing.T) {
	_, err := ParseVideoInfo([]byte("not json"))
	assert.Error(t, err)
}
