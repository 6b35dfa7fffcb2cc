package video

import "fmt"

// SubtitleError means the video has no usable caption track or the
// track could not be fetched.
type SubtitleError struct {
	VideoID string
	Reason  string
}

func (e *SubtitleError) Error() string {
	return fmt.Sprintf("subtitle unavailable for %s: %s", e.VideoID, e.Reason)
}

// MetadataError wraps a failure to extract video metadata.
type MetadataError struct {
	URL string
	Err error
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("metadata extraction failed for %s: %v", e.URL, e.Err)
}

func (e *MetadataError) Unwrap() error { return e.Err }

// ProcessingError covers failures after captions were obtained, such
// as summary generation or cache access.
type ProcessingError struct {
	VideoID string
	Reason  string
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("processing failed for %s: %s: %v", e.VideoID, e.Reason, e.Err)
	}
	return fmt.Sprintf("processing failed for %s: %s", e.VideoID, e.Reason)
}

func (e *ProcessingError) Unwrap() error { return e.Err }
