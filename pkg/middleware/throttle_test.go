package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"movie-catalog/pkg/cache"
	"movie-catalog/pkg/utils"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestThrottleKey(t *testing.T) {
	at := time.Date(2024, 1, 1, 10, 42, 0, 0, time.UTC)
	assert.Equal(t, "GET_/movie_7_42", ThrottleKey(http.MethodGet, "/movie", 7, at))
}

func TestThrottle(t *testing.T) {
	fixed := time.Date(2024, 1, 1, 10, 42, 0, 0, time.UTC)
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = time.Now })

	status := http.StatusOK
	h := Throttle(cache.NewMemoryCache(), 2, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))

	do := func(claims *utils.TokenClaims) int {
		req := httptest.NewRequest(http.MethodGet, "/movie", nil)
		if claims != nil {
			req = withClaims(req, claims)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	user := &utils.TokenClaims{Type: utils.TokenTypeAccess}
	user.Subject = "7"

	// failed responses are not counted
	status = http.StatusBadRequest
	assert.Equal(t, http.StatusBadRequest, do(user))

	status = http.StatusOK
	assert.Equal(t, http.StatusOK, do(user))
	assert.Equal(t, http.StatusOK, do(user))
	assert.Equal(t, http.StatusForbidden, do(user))

	// anonymous callers are never throttled
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(nil))
	}

	other := &utils.TokenClaims{Type: utils.TokenTypeAccess}
	other.Subject = "8"
	assert.Equal(t, http.StatusOK, do(other))
}
