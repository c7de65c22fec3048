package controllers

import (
	"errors"
	"net/http"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/internal/guardian"
	"github.com/cognitia-web/Cognitia-Scratch/internal/users"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"gorm.io/gorm"
)

// GuardianReport builds the per-student summary for the authenticated
// guardian. The guardian row is reloaded so role changes take effect
// without waiting for token expiry.
func GuardianReport(svc *guardian.Service, userRepo *users.Repository, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor, err := userRepo.FindByID(r.Context(), userID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "unknown account"))
				return
			}
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load guardian"))
			return
		}

		report, err := svc.BuildReport(r.Context(), actor)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
