package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/cognitia-web/Cognitia-Scratch/api/responses"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// CronSecret gates internal maintenance endpoints behind a shared bearer
// secret. With no secret configured the surface is disabled outright.
func CronSecret(secret string, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if strings.TrimSpace(secret) == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "resource not found"))
				return
			}

			raw := strings.TrimSpace(r.Header.Get("Authorization"))
			token := raw
			if strings.HasPrefix(strings.ToLower(token), "bearer ") {
				token = strings.TrimSpace(token[7:])
			}
			if token == "" || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid cron credentials"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
