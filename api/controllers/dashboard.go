package controllers

import (
	"net/http"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/internal/dashboard"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// Dashboard aggregates tasks, habits, workouts, clips and rewards into
// one overview payload.
func Dashboard(svc *dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Overview(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
