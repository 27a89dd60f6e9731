package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"go.uber.org/zap"
)

var now = time.Now

// ThrottleKey is the per user, per route, per minute counter key.
func ThrottleKey(method, path string, userID int64, at time.Time) string {
	return fmt.Sprintf("%s_%s_%d_%d", method, path, userID, at.Minute())
}

// Throttle allows an authenticated user limit successful requests per minute
// on the wrapped route. Anonymous requests are not counted.
func Throttle(c cache.Cache, limit int, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "throttle"))

	return func(next http.Handler) http.Handler {
		if limit <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, ok := utils.GetUserIDFromContext(r.Context())
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			key := ThrottleKey(r.Method, r.URL.Path, userID, now())

			count, err := currentCount(r, c, key)
			if err != nil {
				logger.Error("Failed to read throttle counter", zap.Error(err), zap.String("key", key))
				utils.ResponseInternalError(w, "Internal server error")
				return
			}
			if count >= int64(limit) {
				logger.Warn("Request limit exceeded",
					zap.Int64("user_id", userID),
					zap.String("path", r.URL.Path),
					zap.Int64("count", count),
				)
				utils.ResponseForbidden(w, "request limit exceeded")
				return
			}

			rw := wrapResponseWriter(w)
			next.ServeHTTP(rw, r)

			if rw.statusCode < http.StatusBadRequest {
				if _, err := c.Incr(r.Context(), key, time.Minute); err != nil {
					logger.Warn("Failed to increment throttle counter", zap.Error(err), zap.String("key", key))
				}
			}
		})
	}
}

func currentCount(r *http.Request, c cache.Cache, key string) (int64, error) {
	raw, err := c.Get(r.Context(), key)
	if errors.Is(err, cache.ErrMiss) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(string(raw), 10, 64)
}
