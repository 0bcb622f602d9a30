package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/core"
)

// okResult is the success envelope for mutations: {"status":"ok","id":N}.
type okResult struct {
	Status string `json:"status"`
	ID     int64  `json:"id"`
}

// errResult is the failure envelope: {"status":"error","message":...}.
type errResult struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

func writeOK(w http.ResponseWriter, statusCode int, id int64) {
	writeJSON(w, statusCode, okResult{Status: "ok", ID: id})
}

func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, errResult{Status: "error", Message: message})
}

// writeDomainError maps the error taxonomy onto HTTP status codes. Errors
// are values all the way to this boundary; nothing panics past it.
func writeDomainError(w http.ResponseWriter, err error) {
	var verr *core.ValidationError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusUnprocessableEntity, verr.Error())
	case errors.Is(err, core.ErrNoFields):
		writeError(w, http.StatusBadRequest, core.ErrNoFields.Error())
	case errors.Is(err, core.ErrNotFound):
		writeError(w, http.StatusNotFound, core.ErrNotFound.Error())
	default:
		writeError(w, http.StatusInternalServerError, "storage failure")
	}
}
