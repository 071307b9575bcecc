package handler

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// mountCollection registers the four CRUD routes of one collection:
//
//	GET    /{collection}       list the caller's records
//	POST   /{collection}       create
//	PUT    /{collection}/{id}  update
//	DELETE /{collection}/{id}  delete
//
// setID copies the path id into a decoded body so clients cannot retarget
// an update by sending a different id.
func mountCollection[T any](r chi.Router, s *Server, c domain.Collection, svc Collection[T], setID func(*T, uuid.UUID)) {
	if svc == nil {
		return
	}
	what := singular(c)
	base := "/" + string(c)

	r.Get(base, func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		records, err := svc.List(r.Context(), user.ID)
		if err != nil {
			s.writeError(w, r, err, what)
			return
		}
		if records == nil {
			records = []T{}
		}
		writeJSON(w, http.StatusOK, records)
	})

	r.Post(base, func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		var record T
		if !decodeBody(w, r, &record) {
			return
		}
		setID(&record, uuid.Nil)

		created, err := svc.Create(r.Context(), user.ID, record)
		if err != nil {
			s.writeError(w, r, err, what)
			return
		}
		writeJSON(w, http.StatusCreated, created)
	})

	r.Put(base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		var record T
		if !decodeBody(w, r, &record) {
			return
		}
		setID(&record, id)

		updated, err := svc.Update(r.Context(), user.ID, record)
		if err != nil {
			s.writeError(w, r, err, what)
			return
		}
		writeJSON(w, http.StatusOK, updated)
	})

	r.Delete(base+"/{id}", func(w http.ResponseWriter, r *http.Request) {
		user, ok := currentUser(w, r)
		if !ok {
			return
		}
		id, ok := pathID(w, r)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), user.ID, id); err != nil {
			s.writeError(w, r, err, what)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

// singular names one record of c for error messages: "visits" → "visit".
func singular(c domain.Collection) string {
	name := string(c)
	if strings.HasSuffix(name, "ies") {
		return strings.TrimSuffix(name, "ies") + "y"
	}
	return strings.TrimSuffix(name, "s")
}
