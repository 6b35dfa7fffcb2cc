package video

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tubelens/core/internal/config"
	"github.com/tubelens/core/internal/database"
	"github.com/tubelens/core/internal/models"
	"github.com/tubelens/core/internal/modules/summarize"
)

const (
	keyVideoInfo      = "tl:video_info"
	keyVideoSummary   = "tl:video_summary"
	keyTranscriptTask = "tl:video_transcript_task"
)

// cacheStore is the slice of the Redis client the service needs.
type cacheStore interface {
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field string, value interface{}) error
	HDel(ctx context.Context, key string, fields ...string) error
}

// Downloader fetches a caption file by URL.
type Downloader interface {
	Download(ctx context.Context, url string) ([]byte, error)
}

// Summarizer produces a structured summary from raw captions.
type Summarizer interface {
	Summarize(ctx context.Context, in summarize.Input) (*summarize.SummaryResult, bool, error)
}

// SummaryOutcome is the result of a summary request. Exactly one of
// Records and Task is set: Records when a summary is available, Task
// while captions are still being produced out of band.
type SummaryOutcome struct {
	Records []SummaryRecord
	Task    *TaskState
}

type Service struct {
	cache          cacheStore
	db             *gorm.DB
	fetcher        MetadataFetcher
	downloader     Downloader
	summarizer     Summarizer
	subtitleCfg    config.SubtitleConfig
	targetLanguage string
	logger         *zap.Logger
}

func NewService(cache cacheStore, db *gorm.DB, fetcher MetadataFetcher, downloader Downloader, summarizer Summarizer, subtitleCfg config.SubtitleConfig, targetLanguage string, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		cache:          cache,
		db:             db,
		fetcher:        fetcher,
		downloader:     downloader,
		summarizer:     summarizer,
		subtitleCfg:    subtitleCfg,
		targetLanguage: targetLanguage,
		logger:         logger,
	}
}

// GetVideoInfo extracts metadata for videoURL, resolves the caption
// URLs, and caches the result keyed by video id.
func (s *Service) GetVideoInfo(ctx context.Context, videoURL string) (*VideoInfo, error) {
	info, err := s.fetcher.Fetch(ctx, videoURL)
	if err != nil {
		return nil, err
	}
	ResolveSubtitleURLs(info, s.subtitleCfg)

	// Caption listings are sometimes missing on the first extraction.
	if info.SubtitleURL() == "" {
		retried, err := s.fetcher.Fetch(ctx, videoURL)
		if err == nil {
			ResolveSubtitleURLs(retried, s.subtitleCfg)
			if retried.SubtitleURL() != "" {
				info = retried
			}
		}
	}

	raw, err := json.Marshal(info)
	if err != nil {
		return nil, &ProcessingError{VideoID: info.ID, Reason: "encode video info", Err: err}
	}
	if err := s.cache.HSet(ctx, keyVideoInfo, info.ID, string(raw)); err != nil {
		return nil, &ProcessingError{VideoID: info.ID, Reason: "cache video info", Err: err}
	}
	s.logger.Info("video info cached",
		zap.String("video_id", info.ID),
		zap.Bool("has_subtitle", info.SubtitleURL() != ""))
	return info, nil
}

// GetSummary returns the summary for videoID, generating and caching
// it on first request. Video info must have been fetched beforehand.
func (s *Service) GetSummary(ctx context.Context, videoID string) (*SummaryOutcome, error) {
	if cached, err := s.cachedSummary(ctx, videoID); err != nil {
		return nil, err
	} else if cached != nil {
		return &SummaryOutcome{Records: cached}, nil
	}

	info, err := s.loadVideoInfo(ctx, videoID)
	if err != nil {
		return nil, err
	}

	var captions string
	if url := info.SubtitleURL(); url != "" {
		body, err := s.downloader.Download(ctx, url)
		if err != nil {
			return nil, &SubtitleError{VideoID: videoID, Reason: fmt.Sprintf("caption download failed: %v", err)}
		}
		captions = string(body)
	} else {
		state, text, err := s.resolveTranscriptTask(ctx, videoID)
		if err != nil {
			return nil, err
		}
		if state != nil {
			return &SummaryOutcome{Task: state}, nil
		}
		captions = text
	}

	records, err := s.generateSummary(ctx, info, captions)
	if err != nil {
		return nil, err
	}
	return &SummaryOutcome{Records: records}, nil
}

func (s *Service) cachedSummary(ctx context.Context, videoID string) ([]SummaryRecord, error) {
	raw, err := s.cache.HGet(ctx, keyVideoSummary, videoID)
	if err != nil {
		return nil, &ProcessingError{VideoID: videoID, Reason: "read summary cache", Err: err}
	}
	if raw == "" {
		return nil, nil
	}
	var records []SummaryRecord
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		// A corrupt cache entry should not wedge the video forever.
		s.logger.Warn("dropping corrupt summary cache entry",
			zap.String("video_id", videoID), zap.Error(err))
		s.cache.HDel(ctx, keyVideoSummary, videoID)
		return nil, nil
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records, nil
}

func (s *Service) loadVideoInfo(ctx context.Context, videoID string) (*VideoInfo, error) {
	raw, err := s.cache.HGet(ctx, keyVideoInfo, videoID)
	if err != nil {
		return nil, &ProcessingError{VideoID: videoID, Reason: "read video info cache", Err: err}
	}
	if raw == "" {
		return nil, &ProcessingError{VideoID: videoID, Reason: "video info not found, fetch video info first"}
	}
	var info VideoInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return nil, &ProcessingError{VideoID: videoID, Reason: "decode cached video info", Err: err}
	}
	return &info, nil
}

// resolveTranscriptTask drives the out-of-band transcription state
// machine for videos without a caption track. It returns a TaskState
// while the transcript is pending, or the caption text once a
// completed transcript is available.
func (s *Service) resolveTranscriptTask(ctx context.Context, videoID string) (*TaskState, string, error) {
	raw, err := s.cache.HGet(ctx, keyTranscriptTask, videoID)
	if err != nil {
		return nil, "", &ProcessingError{VideoID: videoID, Reason: "read transcript task", Err: err}
	}

	now := time.Now().Unix()
	if raw == "" {
		task := TranscriptTask{
			VideoID:    videoID,
			Status:     TranscriptCreated,
			CreateTime: now,
			UpdateTime: now,
		}
		if err := s.storeTranscriptTask(ctx, task); err != nil {
			return nil, "", err
		}
		s.logger.Info("transcript task created", zap.String("video_id", videoID))
		return &TaskState{Code: TranscriptCreated, Msg: "transcript task created, check back later"}, "", nil
	}

	var task TranscriptTask
	if err := json.Unmarshal([]byte(raw), &task); err != nil {
		return nil, "", &ProcessingError{VideoID: videoID, Reason: "decode transcript task", Err: err}
	}

	switch task.Status {
	case TranscriptCreated:
		return &TaskState{Code: TranscriptCreated, Msg: "transcript task is waiting to be picked up"}, "", nil
	case TranscriptProcessing:
		return &TaskState{Code: TranscriptProcessing, Msg: "transcript is being generated"}, "", nil
	case TranscriptSuccess:
		text := task.Msg
		task.Status = TranscriptRead
		task.Msg = ""
		task.UpdateTime = now
		if err := s.storeTranscriptTask(ctx, task); err != nil {
			return nil, "", err
		}
		return nil, text, nil
	case TranscriptError:
		return nil, "", &SubtitleError{VideoID: videoID, Reason: task.Msg}
	default:
		return &TaskState{Code: TranscriptUnknown, Msg: "transcript task is in an unknown state"}, "", nil
	}
}

func (s *Service) storeTranscriptTask(ctx context.Context, task TranscriptTask) error {
	raw, err := json.Marshal(task)
	if err != nil {
		return &ProcessingError{VideoID: task.VideoID, Reason: "encode transcript task", Err: err}
	}
	if err := s.cache.HSet(ctx, keyTranscriptTask, task.VideoID, string(raw)); err != nil {
		return &ProcessingError{VideoID: task.VideoID, Reason: "store transcript task", Err: err}
	}
	return nil
}

func (s *Service) generateSummary(ctx context.Context, info *VideoInfo, captions string) ([]SummaryRecord, error) {
	result, validated, err := s.summarizer.Summarize(ctx, summarize.Input{
		Title:          info.Title,
		Description:    info.Description,
		Tags:           info.Tags,
		RawCaptions:    captions,
		TargetLanguage: s.targetLanguage,
	})
	if err != nil {
		return nil, &ProcessingError{VideoID: info.ID, Reason: "summary generation failed", Err: err}
	}

	record := SummaryRecord{
		VideoID:   info.ID,
		Title:     info.Title,
		Summary:   result.Summary,
		Keywords:  strings.Join(result.Keywords, ", "),
		Language:  result.Language,
		Validated: validated,
	}
	if outline, err := json.Marshal(result.Outline); err == nil {
		record.Outline = string(outline)
	}

	records := []SummaryRecord{record}
	raw, err := json.Marshal(records)
	if err != nil {
		return nil, &ProcessingError{VideoID: info.ID, Reason: "encode summary", Err: err}
	}
	if err := s.cache.HSet(ctx, keyVideoSummary, info.ID, string(raw)); err != nil {
		return nil, &ProcessingError{VideoID: info.ID, Reason: "cache summary", Err: err}
	}

	s.persistSummary(ctx, info, result, validated)

	s.logger.Info("summary generated",
		zap.String("video_id", info.ID),
		zap.Bool("validated", validated),
		zap.Int("outline_items", len(result.Outline)))
	return records, nil
}

// persistSummary writes the durable copy. Failures are logged rather
// than surfaced because the cache already holds the answer.
func (s *Service) persistSummary(ctx context.Context, info *VideoInfo, result *summarize.SummaryResult, validated bool) {
	if s.db == nil {
		return
	}
	outline, _ := json.Marshal(result.Outline)
	row := models.VideoSummaryModel{
		Hash:      summaryHash(info.ID, result.Language),
		VideoID:   info.ID,
		Lang:      result.Language,
		Title:     info.Title,
		Outline:   string(outline),
		Summary:   result.Summary,
		Keywords:  models.Keywords(result.Keywords),
		Validated: validated,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "hash"}},
		UpdateAll: true,
	}).Create(&row).Error
	if err != nil {
		if database.IsDuplicateEntry(err) {
			s.logger.Debug("summary row already exists",
				zap.String("video_id", info.ID))
			return
		}
		s.logger.Warn("summary persistence failed",
			zap.String("video_id", info.ID), zap.Error(err))
	}
}

func summaryHash(videoID, lang string) string {
	if lang == "" {
		lang = "default"
	}
	sum := sha256.Sum256([]byte(videoID + ":" + lang))
	return hex.EncodeToString(sum[:])
}
