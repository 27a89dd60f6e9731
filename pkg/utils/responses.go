package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// Response is the envelope of every JSON body the API writes.
type Response struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

// ResponseJSON writes the envelope with the given status code. Headers are
// already sent when encoding fails, so the failure is only logged.
func ResponseJSON(w http.ResponseWriter, code int, status bool, message string, data, errors any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	err := json.NewEncoder(w).Encode(Response{
		Status:  status,
		Message: message,
		Data:    data,
		Errors:  errors,
	})
	if err != nil {
		zap.L().Error("Failed to encode response",
			zap.Error(err),
			zap.Int("status", code),
			zap.String("message", message),
		)
	}
}

func ResponseSuccess(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusOK, true, message, data, nil)
}

func ResponseCreated(w http.ResponseWriter, message string, data any) {
	ResponseJSON(w, http.StatusCreated, true, message, data, nil)
}

// ResponseBadRequest carries field errors, e.g. validation output, in "errors".
func ResponseBadRequest(w http.ResponseWriter, message string, errors any) {
	ResponseJSON(w, http.StatusBadRequest, false, message, nil, errors)
}

func ResponseUnauthorized(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusUnauthorized, message)
}

func ResponseForbidden(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusForbidden, message)
}

func ResponseNotFound(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusNotFound, message)
}

func ResponseInternalError(w http.ResponseWriter, message string) {
	ResponseError(w, http.StatusInternalServerError, message)
}

// ResponseError writes a failed envelope without field errors.
func ResponseError(w http.ResponseWriter, code int, message string) {
	ResponseJSON(w, code, false, message, nil, nil)
}
