package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"
)

type errorResponse struct {
	Error string `json:"error"`
}

// formErrorResponse mirrors the shape the admin UI expects: a map keyed by
// the offending field, or "form" for errors not tied to a single field.
type formErrorResponse struct {
	Errors map[string]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeFieldError(w http.ResponseWriter, status int, field, message string) {
	writeJSON(w, status, formErrorResponse{Errors: map[string]string{field: message}})
}

func writeMethodNotAllowed(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

// writeInvalidMethod is the collection-route variant of 405, keeping the
// form-error response shape those callers parse.
func writeInvalidMethod(w http.ResponseWriter, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeFieldError(w, http.StatusMethodNotAllowed, "form", "Invalid request method")
}
