package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tubelens/core/internal/modules/video"
	"github.com/tubelens/core/internal/pkg/taskqueue"
)

// summaryTaskHandler processes queued summary requests. A pending
// transcript is not a failure; the task completes with the transcript
// state so clients can re-enqueue later.
func summaryTaskHandler(svc *video.Service) taskqueue.HandlerFunc {
	return func(ctx context.Context, task *taskqueue.Task) (interface{}, error) {
		var payload struct {
			VideoID string `json:"video_id"`
		}
		if err := json.Unmarshal(task.Payload, &payload); err != nil {
			return nil, fmt.Errorf("decode payload: %w", err)
		}
		if payload.VideoID == "" {
			return nil, fmt.Errorf("payload has no video_id")
		}

		outcome, err := svc.GetSummary(ctx, payload.VideoID)
		if err != nil {
			return nil, err
		}
		if outcome.Task != nil {
			return outcome.Task, nil
		}
		return outcome.Records, nil
	}
}
