package utils

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestResponseEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	ResponseBadRequest(rec, "Validation failed", map[string]string{"title": "This field is required"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body Response
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.False(t, body.Status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Nil(t, body.Data)
	assert.Equal(t, map[string]any{"title": "This field is required"}, body.Errors)
}

func TestResponseJSONLogsEncodeFailure(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	rec := httptest.NewRecorder()
	ResponseSuccess(rec, "broken", math.Inf(1))

	assert.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 1, logs.FilterMessage("Failed to encode response").Len())
}
