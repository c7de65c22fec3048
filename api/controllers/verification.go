package controllers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	"github.com/cognitia-web/Cognitia-Scratch/api/validators"
	"github.com/cognitia-web/Cognitia-Scratch/internal/verification"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// multipart framing overhead on top of the clip size limit.
const uploadSlackBytes = 1 << 20

// VerificationPrompt issues a fresh liveness challenge for the caller.
func VerificationPrompt(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		challenge, err := svc.IssuePrompt(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, challenge)
	}
}

// VerificationSubmit accepts a multipart clip upload and runs it through
// the verification pipeline. Expected fields: "video" (file) and
// "durationSeconds", plus optional "challengeId", "digest", "taskId"
// and "poseData".
func VerificationSubmit(svc verification.Service, videoCfg config.VideoConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit := videoCfg.MaxUploadBytes() + uploadSlackBytes
		r.Body = http.MaxBytesReader(w, r.Body, limit)

		if err := r.ParseMultipartForm(limit); err != nil {
			responses.WriteError(r.Context(), logg, w, payloadError(err))
			return
		}

		file, _, err := r.FormFile("video")
		if err != nil {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "video file is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, payloadError(err))
			return
		}

		duration, err := strconv.Atoi(strings.TrimSpace(r.FormValue("durationSeconds")))
		if err != nil || duration <= 0 {
			responses.WriteError(r.Context(), logg, w,
				pkgerrors.New(pkgerrors.CodeValidation, "durationSeconds must be a positive integer"))
			return
		}

		req := verification.SubmitRequest{
			UserID:          userID,
			ChallengeID:     strings.TrimSpace(r.FormValue("challengeId")),
			ClientDigest:    strings.TrimSpace(r.FormValue("digest")),
			Data:            data,
			DurationSeconds: duration,
		}

		if raw := strings.TrimSpace(r.FormValue("taskId")); raw != "" {
			taskID, err := uuid.Parse(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w,
					pkgerrors.New(pkgerrors.CodeValidation, "taskId must be a UUID"))
				return
			}
			req.TaskID = &taskID
		}

		if raw := strings.TrimSpace(r.FormValue("poseData")); raw != "" {
			req.PoseData = &raw
		}

		result, err := svc.Submit(r.Context(), req)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func VerificationGet(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := validators.ParseUUIDParam(r, "verificationID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		view, err := svc.Get(r.Context(), userID, id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, view)
	}
}

func VerificationList(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
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

// VideoDownload streams the decrypted clip back to its owner.
func VideoDownload(svc verification.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := currentUserID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		videoID, err := validators.ParseUUIDParam(r, "videoID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, err := svc.Download(r.Context(), userID, videoID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		w.Header().Set("Content-Type", "video/mp4")
		w.Header().Set("Content-Length", strconv.Itoa(len(data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

func payloadError(err error) error {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		return pkgerrors.New(pkgerrors.CodePayloadTooLarge, "upload exceeds the size limit")
	}
	return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "malformed upload")
}
