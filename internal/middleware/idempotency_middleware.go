package middleware

import (
	"context"
	"net/http"
	"strings"

	"inotebook-server/pkg/response"

	log "github.com/sirupsen/logrus"
)

const IdempotencyKeyHeader = "Idempotency-Key"

const maxIdempotencyKeyLength = 255

type Deduper interface {
	Add(ctx context.Context, userID, key string) (bool, error)
	Remove(ctx context.Context, userID, key string) error
}

// IdempotencyMiddleware rejects a repeated Idempotency-Key from the same
// caller. Keys of failed requests are released so the client can retry. It
// must run after AuthMiddleware. A nil deduper disables the check.
func IdempotencyMiddleware(deduper Deduper) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if deduper == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := strings.TrimSpace(r.Header.Get(IdempotencyKeyHeader))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			if len(key) > maxIdempotencyKeyLength {
				response.BadRequest(w, "Idempotency-Key is too long")
				return
			}

			userID := GetUserID(r)
			logger := log.WithFields(log.Fields{"user_id": userID, "idempotency_key": key})

			added, err := deduper.Add(r.Context(), userID, key)
			if err != nil {
				// an unavailable deduper must not block note creation
				logger.WithError(err).Warn("idempotency check skipped")
				next.ServeHTTP(w, r)
				return
			}
			if !added {
				response.Conflict(w, "duplicate request")
				return
			}

			rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(rw, r)

			if rw.statusCode >= http.StatusBadRequest {
				if err := deduper.Remove(context.WithoutCancel(r.Context()), userID, key); err != nil {
					logger.WithError(err).Warn("failed to release idempotency key")
				}
			}
		})
	}
}
