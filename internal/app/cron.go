package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	pkgcron "github.com/tubelens/core/internal/pkg/cron"
	"github.com/tubelens/core/internal/pkg/taskqueue"
)

// registerCronJobs registers all scheduled background jobs.
func registerCronJobs(sched *pkgcron.Scheduler, queue *taskqueue.Service, logger *zap.Logger) {
	cronLogger := logger.Named("cron")

	sched.Register(pkgcron.Job{
		Name:        "cleanup_finished_tasks",
		Description: "drop queue tasks finished more than a day ago",
		Interval:    time.Hour,
		Fn: func(ctx context.Context) error {
			cutoff := time.Now().Add(-24 * time.Hour).UnixMilli()
			if err := queue.DeleteCompleted(ctx, cutoff); err != nil {
				cronLogger.Warn("task cleanup failed", zap.Error(err))
				return err
			}
			cronLogger.Info("task cleanup finished")
			return nil
		},
	})
}
