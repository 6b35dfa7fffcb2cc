package video

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tubelens/core/internal/modules/summarize"
)

func newTestRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewHandler(svc, nil)
	h.RegisterRoutes(r.Group("/api/v2/youtube"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

func TestGetVideoInfoEndpoint(t *testing.T) {
	cache := newFakeCache()
	fetcher := &fakeFetcher{infos: []*VideoInfo{captionedInfo()}}
	r := newTestRouter(newTestService(cache, fetcher, &fakeDownloader{}, &fakeSummarizer{}))

	w, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/videoinfo",
		map[string]string{"video_url": "https://youtube.com/watch?v=vid123"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeSuccess, body["code"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "vid123", data["id"])
	assert.Equal(t, "https://example.com/en.vtt", data["en_subtitle_url"])
}

func TestGetVideoInfoEndpointRejectsMissingURL(t *testing.T) {
	r := newTestRouter(newTestService(newFakeCache(), &fakeFetcher{}, &fakeDownloader{}, &fakeSummarizer{}))

	w, _ := doJSON(t, r, http.MethodPost, "/api/v2/youtube/videoinfo", map[string]string{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetVideoInfoEndpointExtractionFailure(t *testing.T) {
	fetcher := &fakeFetcher{err: &MetadataError{URL: "x", Err: errors.New("unresolvable")}}
	r := newTestRouter(newTestService(newFakeCache(), fetcher, &fakeDownloader{}, &fakeSummarizer{}))

	w, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/videoinfo",
		map[string]string{"video_url": "x"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeProcessingError, body["code"])
}

func TestGetSummaryEndpointSuccess(t *testing.T) {
	cache := newFakeCache()
	seedVideoInfo(t, cache, captionedInfo())
	dl := &fakeDownloader{body: []byte("WEBVTT\n\ncaptions")}
	sum := &fakeSummarizer{result: sampleResult(), validated: true}
	r := newTestRouter(newTestService(cache, &fakeFetcher{}, dl, sum))

	w, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/summary",
		map[string]string{"video_id": "vid123"})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, CodeSuccess, body["code"])
	records := body["data"].([]interface{})
	require.Len(t, records, 1)
	rec := records[0].(map[string]interface{})
	assert.Equal(t, "A talk about goroutines and channels.", rec["summary"])
}

func TestGetSummaryEndpointSubtitleError(t *testing.T) {
	cache := newFakeCache()
	seedVideoInfo(t, cache, captionedInfo())
	dl := &fakeDownloader{err: errors.New("blocked")}
	r := newTestRouter(newTestService(cache, &fakeFetcher{}, dl, &fakeSummarizer{}))

	_, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/summary",
		map[string]string{"video_id": "vid123"})

	assert.Equal(t, CodeSubtitleError, body["code"])
}

func TestGetSummaryEndpointProcessingError(t *testing.T) {
	r := newTestRouter(newTestService(newFakeCache(), &fakeFetcher{}, &fakeDownloader{}, &fakeSummarizer{}))

	_, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/summary",
		map[string]string{"video_id": "missing"})

	assert.Equal(t, CodeProcessingError, body["code"])
}

func TestGetSummaryEndpointPendingTranscript(t *testing.T) {
	cache := newFakeCache()
	seedVideoInfo(t, cache, &VideoInfo{ID: "vid123"})
	seedTranscriptTask(t, cache, TranscriptTask{VideoID: "vid123", Status: TranscriptProcessing})
	r := newTestRouter(newTestService(cache, &fakeFetcher{}, &fakeDownloader{}, &fakeSummarizer{}))

	_, body := doJSON(t, r, http.MethodPost, "/api/v2/youtube/summary",
		map[string]string{"video_id": "vid123"})

	assert.Equal(t, CodeSuccess, body["code"])
	data := body["data"].(map[string]interface{})
	assert.Equal(t, string(TranscriptProcessing), data["code"])
}

// Guards against the summarizer interface drifting away from the
// pipeline implementation.
var _ Summarizer = (*summarize.Pipeline)(nil)
