package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cognitia-web/Cognitia-Scratch/api/middleware"
	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/internal/account"
	"github.com/cognitia-web/Cognitia-Scratch/internal/auth"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// DataExport serves the caller's full data dump as a download.
func DataExport(svc *account.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		export, err := svc.Export(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("cognitia-data-%d.json", time.Now().Unix())))
		responses.WriteSuccess(w, export)
	}
}

// DataDelete erases the caller's account. Their current session is revoked
// afterwards so the now-dead token stops working immediately.
func DataDelete(svc *account.Service, authSvc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if authSvc != nil {
			if accessID := middleware.AccessIDFromContext(r.Context()); accessID != "" {
				if err := authSvc.Logout(r.Context(), accessID); err != nil && logg != nil {
					logg.Warn(r.Context(), "revoke session after account deletion")
				}
			}
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
