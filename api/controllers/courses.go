package controllers

import (
	"net/http"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/api/validators"
	"github.com/cognitia-web/Cognitia-Scratch/internal/courses"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

func CoursesCreate(svc *courses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body courses.CreateRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Create(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, view)
	}
}

// CoursesList returns the catalog annotated with the caller's progress.
func CoursesList(svc *courses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		views, err := svc.List(r.Context(), userID, pagination.FromRequest(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, views)
	}
}

func CoursesGet(svc *courses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		courseID, err := validators.ParseUUIDParam(r, "courseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), userID, courseID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func CoursesProgress(svc *courses.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		courseID, err := validators.ParseUUIDParam(r, "courseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body courses.ProgressRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.SetProgress(r.Context(), userID, courseID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}
