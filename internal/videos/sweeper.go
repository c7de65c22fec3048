package videos

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/metrics"
)

const defaultSweepBatch = 500

type sweeperRepo interface {
	ListExpired(ctx context.Context, now time.Time, limit int) ([]models.VideoRecord, error)
	Tombstone(ctx context.Context, id uuid.UUID, at time.Time) (bool, error)
}

type blobDeleter interface {
	Delete(ctx context.Context, name string) error
}

// SweeperParams bundles the dependencies for the retention sweeper.
type SweeperParams struct {
	Logger    *logger.Logger
	Repo      sweeperRepo
	Blobs     blobDeleter
	Metrics   *metrics.VerificationMetrics
	BatchSize int
}

// Sweeper purges clips whose retention window has lapsed. Rows are claimed
// with a conditional update before any blob work, so concurrent sweeps never
// double-count and a re-run over already-swept rows is a no-op.
type Sweeper struct {
	logg    *logger.Logger
	repo    sweeperRepo
	blobs   blobDeleter
	metrics *metrics.VerificationMetrics
	batch   int
	now     func() time.Time
}

// NewSweeper constructs a retention sweeper.
func NewSweeper(params SweeperParams) (*Sweeper, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if params.Blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	batch := params.BatchSize
	if batch <= 0 {
		batch = defaultSweepBatch
	}
	return &Sweeper{
		logg:    params.Logger,
		repo:    params.Repo,
		blobs:   params.Blobs,
		metrics: params.Metrics,
		batch:   batch,
		now:     time.Now,
	}, nil
}

// Sweep tombstones every expired clip and removes its blob. One failing item
// does not stop the batch; all per-item errors come back combined alongside
// the count of clips actually claimed by this run.
func (s *Sweeper) Sweep(ctx context.Context) (int, error) {
	now := s.now().UTC()
	rows, err := s.repo.ListExpired(ctx, now, s.batch)
	if err != nil {
		return 0, fmt.Errorf("list expired clips: %w", err)
	}

	var (
		deleted int
		errs    error
	)
	for _, row := range rows {
		claimed, err := s.repo.Tombstone(ctx, row.ID, now)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("tombstone %s: %w", row.ID, err))
			continue
		}
		if !claimed {
			// another sweep got here first
			continue
		}
		deleted++

		if err := s.blobs.Delete(ctx, row.StoragePath); err != nil {
			// row is already tombstoned; the orphan reconciler retries the blob
			errs = multierr.Append(errs, fmt.Errorf("delete blob %s: %w", row.StoragePath, err))
		}
	}

	s.metrics.AddSwept(deleted)

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"candidates": len(rows),
		"deleted":    deleted,
		"failed":     len(multierr.Errors(errs)),
	})
	s.logg.Info(logCtx, "retention sweep complete")
	return deleted, errs
}
