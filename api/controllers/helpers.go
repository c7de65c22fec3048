package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/api/middleware"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
)

// currentUserID extracts the authenticated user from the request context.
// The auth middleware guarantees it is present on protected routes.
func currentUserID(r *http.Request) (uuid.UUID, error) {
	raw := middleware.UserIDFromContext(r.Context())
	if raw == "" {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "invalid user identity")
	}
	return id, nil
}
