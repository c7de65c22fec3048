package videos

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"go.uber.org/multierr"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

const defaultOrphanGrace = time.Hour

type reconcilerRepo interface {
	ListLivePaths(ctx context.Context) ([]string, error)
}

type blobLister interface {
	List(ctx context.Context) ([]string, error)
	Stat(ctx context.Context, name string) (fs.FileInfo, error)
	Delete(ctx context.Context, name string) error
}

// ReconcilerParams bundles the dependencies for the orphan reconciler.
type ReconcilerParams struct {
	Logger *logger.Logger
	Repo   reconcilerRepo
	Blobs  blobLister
	Grace  time.Duration
}

// Reconciler removes blobs that no live row references. Blobs can be left
// behind when a submission crashes between the blob write and the metadata
// insert, or when a sweep tombstones a row but its blob delete fails.
type Reconciler struct {
	logg  *logger.Logger
	repo  reconcilerRepo
	blobs blobLister
	grace time.Duration
	now   func() time.Time
}

// NewReconciler constructs an orphan blob reconciler.
func NewReconciler(params ReconcilerParams) (*Reconciler, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Repo == nil {
		return nil, fmt.Errorf("video repository required")
	}
	if params.Blobs == nil {
		return nil, fmt.Errorf("blob store required")
	}
	grace := params.Grace
	if grace <= 0 {
		grace = defaultOrphanGrace
	}
	return &Reconciler{
		logg:  params.Logger,
		repo:  params.Repo,
		blobs: params.Blobs,
		grace: grace,
		now:   time.Now,
	}, nil
}

// Reconcile deletes unreferenced blobs older than the grace window. Young
// blobs are skipped because their metadata insert may still be in flight.
func (r *Reconciler) Reconcile(ctx context.Context) (int, error) {
	livePaths, err := r.repo.ListLivePaths(ctx)
	if err != nil {
		return 0, fmt.Errorf("list live paths: %w", err)
	}
	referenced := make(map[string]struct{}, len(livePaths))
	for _, p := range livePaths {
		referenced[p] = struct{}{}
	}

	names, err := r.blobs.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list blobs: %w", err)
	}

	cutoff := r.now().Add(-r.grace)
	var (
		removed int
		errs    error
	)
	for _, name := range names {
		if _, ok := referenced[name]; ok {
			continue
		}
		info, err := r.blobs.Stat(ctx, name)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			errs = multierr.Append(errs, fmt.Errorf("stat orphan %s: %w", name, err))
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := r.blobs.Delete(ctx, name); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("delete orphan %s: %w", name, err))
			continue
		}
		removed++
	}

	logCtx := r.logg.WithFields(ctx, map[string]any{
		"blobs":   len(names),
		"removed": removed,
		"failed":  len(multierr.Errors(errs)),
	})
	r.logg.Info(logCtx, "orphan reconcile complete")
	return removed, errs
}
