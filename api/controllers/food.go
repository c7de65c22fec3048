package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/api/validators"
	"github.com/cognitia-web/Cognitia-Scratch/internal/nutrition"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

func FoodCreate(svc *nutrition.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body nutrition.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), userID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// FoodDay returns the entries and macro totals for one calendar day.
// The day defaults to today (UTC) and accepts ?date=YYYY-MM-DD.
func FoodDay(svc *nutrition.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		day := time.Now().UTC()
		if raw := strings.TrimSpace(r.URL.Query().Get("date")); raw != "" {
			parsed, err := time.Parse("2006-01-02", raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "date must be YYYY-MM-DD"))
				return
			}
			day = parsed
		}

		view, err := svc.Day(r.Context(), userID, day)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func FoodDelete(svc *nutrition.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "entryID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), userID, id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}
