package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"fintrack/internal/core"
	"fintrack/internal/log"
)

// apiError is the error half of the response envelope.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the JSON shape of every API response.
type envelope struct {
	OK    bool      `json:"ok"`
	Data  any       `json:"data,omitempty"`
	Error *apiError `json:"error,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// respondData writes a successful envelope with the given payload.
func respondData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{OK: true, Data: data})
}

// respondError maps domain errors onto the error envelope and status code.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code, status := classifyError(err)

	if status == http.StatusInternalServerError {
		log.FromContext(r.Context()).ErrorContext(r.Context(), "Request failed",
			log.FieldError, err.Error(),
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path)
	}

	writeJSON(w, status, envelope{OK: false, Error: &apiError{Code: code, Message: err.Error()}})
}

func classifyError(err error) (code string, status int) {
	switch {
	case errors.Is(err, core.ErrInvalidInput):
		return "InvalidInput", http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrInvalidPayload):
		return "InvalidPayload", http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrDuplicateUser):
		return "DuplicateUser", http.StatusConflict
	case errors.Is(err, core.ErrUserNotFound):
		return "UserNotFound", http.StatusNotFound
	case errors.Is(err, core.ErrInvalidCredentials):
		return "InvalidCredentials", http.StatusUnauthorized
	case errors.Is(err, core.ErrNoSession):
		return "NoSession", http.StatusUnauthorized
	default:
		return "Internal", http.StatusInternalServerError
	}
}
