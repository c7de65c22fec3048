package cron

import (
	"context"
	"fmt"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type retentionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

// VideoRetentionJobParams configure the retention sweep job.
type VideoRetentionJobParams struct {
	Logger  *logger.Logger
	Sweeper retentionSweeper
}

// NewVideoRetentionJob wraps the retention sweeper as a scheduled job.
func NewVideoRetentionJob(params VideoRetentionJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Sweeper == nil {
		return nil, fmt.Errorf("sweeper required")
	}
	return &videoRetentionJob{
		logg:    params.Logger,
		sweeper: params.Sweeper,
	}, nil
}

type videoRetentionJob struct {
	logg    *logger.Logger
	sweeper retentionSweeper
}

func (j *videoRetentionJob) Name() string { return "video-retention-sweep" }

func (j *videoRetentionJob) Run(ctx context.Context) error {
	deleted, err := j.sweeper.Sweep(ctx)
	logCtx := j.logg.WithField(ctx, "deleted", deleted)
	if err != nil {
		// partial progress still counts; the next cycle retries the rest
		j.logg.Warn(logCtx, "retention sweep finished with item failures")
		return fmt.Errorf("video retention sweep: %w", err)
	}
	j.logg.Info(logCtx, "retention sweep finished")
	return nil
}
