package controllers

import (
	"context"
	"net/http"

	"go.uber.org/multierr"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type retentionSweeper interface {
	Sweep(ctx context.Context) (int, error)
}

type orphanReconciler interface {
	Reconcile(ctx context.Context) (int, error)
}

// VideosCleanup purges expired clips. It backs the internal cron
// endpoint and reports how many records were removed.
//
// A sweep can tombstone rows and still fail on individual blob deletes.
// Those runs did real work, so the response carries the count alongside
// the number of per-item failures; only a run that could not start at
// all answers with an error.
func VideosCleanup(sweeper retentionSweeper, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		deleted, err := sweeper.Sweep(r.Context())
		failed := len(multierr.Errors(err))
		if err != nil && deleted == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "retention sweep failed"))
			return
		}

		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"deleted_count": deleted,
				"failed_count":  failed,
			})
			if err != nil {
				logg.Warn(ctx, "retention sweep completed with failures")
			} else {
				logg.Info(ctx, "retention sweep completed")
			}
		}

		responses.WriteSuccess(w, map[string]int{
			"deletedCount": deleted,
			"failedCount":  failed,
		})
	}
}

// VideosReconcile removes orphaned blobs that no live record references.
// Partial runs report like the sweep above.
func VideosReconcile(reconciler orphanReconciler, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		removed, err := reconciler.Reconcile(r.Context())
		failed := len(multierr.Errors(err))
		if err != nil && removed == 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.Wrap(pkgerrors.CodeInternal, err, "orphan reconcile failed"))
			return
		}

		responses.WriteSuccess(w, map[string]int{
			"removedCount": removed,
			"failedCount":  failed,
		})
	}
}
