package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/geocoding"
)

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a machine-readable code, a human-readable message and,
// for validation failures, the per-field messages.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// writeJSON writes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErrorBody(w http.ResponseWriter, status int, code, msg string, fields map[string]string) {
	writeJSON(w, status, ErrorResponse{Error: ErrorDetail{Code: code, Message: msg, Fields: fields}})
}

// notFound answers 404. The caller supplies the message because the handler is
// the layer that knows what was being looked up.
func notFound(w http.ResponseWriter, msg string) {
	writeErrorBody(w, http.StatusNotFound, "not_found", msg, nil)
}

// badRequest answers 422 for input rejected before reaching the service
// layer (malformed JSON, unparsable parameters).
func badRequest(w http.ResponseWriter, msg string) {
	writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", msg, nil)
}

// writeError maps a service error onto the HTTP error envelope.
//   - domain.FieldErrors / domain.ErrValidation → 422
//   - domain.ErrNotFound                       → 404
//   - geocoding.ErrUpstream                    → 502
//   - *http.MaxBytesError                      → 413
//   - anything else                            → 500, logged
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, what string) {
	var (
		fe      domain.FieldErrors
		tooLong *http.MaxBytesError
	)
	switch {
	case errors.As(err, &fe):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", "invalid "+what, map[string]string(fe))
	case errors.Is(err, domain.ErrValidation):
		writeErrorBody(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err), nil)
	case errors.Is(err, domain.ErrNotFound):
		notFound(w, what+" not found")
	case errors.Is(err, geocoding.ErrUpstream):
		writeErrorBody(w, http.StatusBadGateway, "upstream_error", "geocoding service unavailable", nil)
	case errors.As(err, &tooLong):
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", nil)
	default:
		s.log.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeErrorBody(w, http.StatusInternalServerError, "store_error", "internal server error", nil)
	}
}

// unwrapMessage extracts the human-readable part after the last
// "validation error: " marker of a wrapped sentinel error.
// e.g. "repo.AdventureRepo.Create: validation error: start_date: bad" → "start_date: bad"
func unwrapMessage(err error) string {
	msg := err.Error()
	const marker = "validation error: "
	for i := len(msg) - len(marker); i >= 0; i-- {
		if msg[i:i+len(marker)] == marker {
			return msg[i+len(marker):]
		}
	}
	return msg
}
