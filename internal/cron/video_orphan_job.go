package cron

import (
	"context"
	"fmt"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type orphanReconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// VideoOrphanJobParams configure the orphan blob reconcile job.
type VideoOrphanJobParams struct {
	Logger     *logger.Logger
	Reconciler orphanReconciler
}

// NewVideoOrphanJob wraps the orphan reconciler as a scheduled job.
func NewVideoOrphanJob(params VideoOrphanJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reconciler == nil {
		return nil, fmt.Errorf("reconciler required")
	}
	return &videoOrphanJob{
		logg:       params.Logger,
		reconciler: params.Reconciler,
	}, nil
}

type videoOrphanJob struct {
	logg       *logger.Logger
	reconciler orphanReconciler
}

func (j *videoOrphanJob) Name() string { return "video-orphan-reconcile" }

func (j *videoOrphanJob) Run(ctx context.Context) error {
	removed, err := j.reconciler.Reconcile(ctx)
	logCtx := j.logg.WithField(ctx, "removed", removed)
	if err != nil {
		j.logg.Warn(logCtx, "orphan reconcile finished with item failures")
		return fmt.Errorf("video orphan reconcile: %w", err)
	}
	j.logg.Info(logCtx, "orphan reconcile finished")
	return nil
}
