package handler

import (
	"net/http"
	"strings"

	"github.com/oapi-codegen/runtime"
)

// ReverseGeocode handles GET /api/geocoding/reverse?lat=&lng=.
func (s *Server) ReverseGeocode(w http.ResponseWriter, r *http.Request) {
	var lat, lng float64
	if err := runtime.BindQueryParameter("form", true, true, "lat", r.URL.Query(), &lat); err != nil {
		badRequest(w, "invalid format for parameter lat: "+err.Error())
		return
	}
	if err := runtime.BindQueryParameter("form", true, true, "lng", r.URL.Query(), &lng); err != nil {
		badRequest(w, "invalid format for parameter lng: "+err.Error())
		return
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		badRequest(w, "lat must be within ±90 and lng within ±180")
		return
	}

	addr, err := s.deps.Geocoder.Reverse(r.Context(), lat, lng)
	if err != nil {
		s.writeError(w, r, err, "address")
		return
	}
	writeJSON(w, http.StatusOK, addr)
}

// SearchGeocode handles GET /api/geocoding/search?q=.
func (s *Server) SearchGeocode(w http.ResponseWriter, r *http.Request) {
	var q string
	if err := runtime.BindQueryParameter("form", true, true, "q", r.URL.Query(), &q); err != nil {
		badRequest(w, "invalid format for parameter q: "+err.Error())
		return
	}
	q = strings.TrimSpace(q)
	if q == "" {
		badRequest(w, "q must not be empty")
		return
	}

	addr, err := s.deps.Geocoder.Search(r.Context(), q)
	if err != nil {
		s.writeError(w, r, err, "place")
		return
	}
	writeJSON(w, http.StatusOK, addr)
}
