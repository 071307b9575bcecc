package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/oapi-codegen/runtime"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/middleware"
)

// currentUser returns the caller placed in the context by the identity
// middleware, answering 401 when there is none.
func currentUser(w http.ResponseWriter, r *http.Request) (domain.User, bool) {
	u, ok := middleware.CurrentUser(r.Context())
	if !ok {
		writeErrorBody(w, http.StatusUnauthorized, "unauthenticated", "no authenticated user", nil)
		return domain.User{}, false
	}
	return u, true
}

// pathID binds the {id} path parameter, answering 422 when it is not a UUID.
func pathID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", "id", chi.URLParam(r, "id"), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		badRequest(w, fmt.Sprintf("invalid format for parameter id: %v", err))
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes a JSON request body into dst. A body over the size
// limit answers 413, anything else unreadable answers 422.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil {
		return true
	}

	var tooLong *http.MaxBytesError
	switch {
	case errors.As(err, &tooLong):
		writeErrorBody(w, http.StatusRequestEntityTooLarge, "body_too_large", "request body too large", nil)
	case errors.Is(err, io.EOF):
		badRequest(w, "request body is required")
	default:
		badRequest(w, "malformed JSON body: "+err.Error())
	}
	return false
}
