package video

// CaptionTrack is a single caption rendition offered by the extractor.
type CaptionTrack struct {
	Ext  string `json:"ext"`
	URL  string `json:"url"`
	Name string `json:"name,omitempty"`
}

// VideoInfo carries the extractor metadata plus the caption URLs we
// resolved for each language group.
type VideoInfo struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags,omitempty"`
	Duration       int      `json:"duration,omitempty"`
	DurationString string   `json:"duration_string,omitempty"`
	Thumbnail      string   `json:"thumbnail,omitempty"`
	WebpageURL     string   `json:"webpage_url,omitempty"`
	Channel        string   `json:"channel,omitempty"`
	ChannelID      string   `json:"channel_id,omitempty"`
	UploadDate     string   `json:"upload_date,omitempty"`
	ViewCount      int64    `json:"view_count,omitempty"`

	AutomaticCaptions map[string][]CaptionTrack `json:"automatic_captions,omitempty"`
	Subtitles         map[string][]CaptionTrack `json:"subtitles,omitempty"`

	CNSubtitleURL string `json:"cn_subtitle_url,omitempty"`
	ENSubtitleURL string `json:"en_subtitle_url,omitempty"`
}

// SubtitleURL returns the preferred caption URL, Chinese first.
func (v *VideoInfo) SubtitleURL() string {
	if v.CNSubtitleURL != "" {
		return v.CNSubtitleURL
	}
	return v.ENSubtitleURL
}

// TranscriptStatus tracks a pending caption acquisition task.
type TranscriptStatus string

const (
	TranscriptCreated    TranscriptStatus = "101"
	TranscriptProcessing TranscriptStatus = "102"
	TranscriptSuccess    TranscriptStatus = "103"
	TranscriptRead       TranscriptStatus = "105"
	TranscriptError      TranscriptStatus = "110"
	TranscriptUnknown    TranscriptStatus = "199"
)

// TranscriptTask is stored in Redis while captions for a video are
// being produced out of band.
type TranscriptTask struct {
	VideoID    string           `json:"video_id"`
	Status     TranscriptStatus `json:"status"`
	Msg        string           `json:"msg,omitempty"`
	CreateTime int64            `json:"create_time"`
	UpdateTime int64            `json:"update_time"`
}

// TaskState is returned to the caller while a summary is not ready yet.
type TaskState struct {
	Code TranscriptStatus `json:"code"`
	Msg  string           `json:"msg"`
}

// SummaryRecord is the cached summary payload returned to clients.
type SummaryRecord struct {
	VideoID   string `json:"video_id"`
	Title     string `json:"title"`
	Summary   string `json:"summary"`
	Outline   string `json:"outline,omitempty"`
	Keywords  string `json:"keywords,omitempty"`
	Language  string `json:"language,omitempty"`
	Validated bool   `json:"validated"`
}

type videoInfoDTO struct {
	VideoURL string `json:"video_url" binding:"required"`
}

type summaryDTO struct {
	VideoID string `json:"video_id" binding:"required"`
}

// Response codes of the public API envelope.
const (
	CodeSuccess         = "000"
	CodeSubtitleError   = "001"
	CodeProcessingError = "002"
	CodeNoData          = "003"
)
