package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type fakeSweeper struct {
	deleted int
	err     error
	calls   int
}

func (f *fakeSweeper) Sweep(context.Context) (int, error) {
	f.calls++
	return f.deleted, f.err
}

type fakeReconciler struct {
	removed int
	err     error
}

func (f *fakeReconciler) Reconcile(context.Context) (int, error) {
	return f.removed, f.err
}

func TestVideoRetentionJobRunsSweep(t *testing.T) {
	t.Parallel()

	sweeper := &fakeSweeper{deleted: 4}
	job, err := NewVideoRetentionJob(VideoRetentionJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Sweeper: sweeper,
	})
	if err != nil {
		t.Fatalf("NewVideoRetentionJob: %v", err)
	}
	if job.Name() != "video-retention-sweep" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if sweeper.calls != 1 {
		t.Fatalf("expected one sweep, got %d", sweeper.calls)
	}
}

func TestVideoRetentionJobReportsItemFailures(t *testing.T) {
	t.Parallel()

	sweeper := &fakeSweeper{deleted: 2, err: errors.New("blob delete failed")}
	job, err := NewVideoRetentionJob(VideoRetentionJobParams{
		Logger:  logger.New(logger.Options{ServiceName: "test"}),
		Sweeper: sweeper,
	})
	if err != nil {
		t.Fatalf("NewVideoRetentionJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected sweep failure to propagate")
	}
}

func TestVideoOrphanJobRunsReconcile(t *testing.T) {
	t.Parallel()

	job, err := NewVideoOrphanJob(VideoOrphanJobParams{
		Logger:     logger.New(logger.Options{ServiceName: "test"}),
		Reconciler: &fakeReconciler{removed: 1},
	})
	if err != nil {
		t.Fatalf("NewVideoOrphanJob: %v", err)
	}
	if job.Name() != "video-orphan-reconcile" {
		t.Fatalf("unexpected job name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
