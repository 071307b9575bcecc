// Package handler implements the HTTP handlers for the travel journal API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, journal.go, collections.go, ...) but all share the same
// Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/realtime"
)

// Collection defines the CRUD operations every record service offers.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type Collection[T any] interface {
	Create(ctx context.Context, userID uuid.UUID, record T) (T, error)
	List(ctx context.Context, userID uuid.UUID) ([]T, error)
	Update(ctx context.Context, userID uuid.UUID, record T) (T, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Journal yields the resolved read-model of a user.
type Journal interface {
	Load(ctx context.Context, userID uuid.UUID) domain.ReadModel
}

// Exporter flattens a user's itinerary.
type Exporter interface {
	Export(ctx context.Context, userID uuid.UUID) []domain.ExportRow
}

// Geocoder resolves coordinates and place names.
type Geocoder interface {
	Reverse(ctx context.Context, lat, lng float64) (domain.Address, error)
	Search(ctx context.Context, query string) (domain.Address, error)
}

// Deps lists everything the Server needs. Nil collaborators disable the
// routes that depend on them, which keeps focused handler tests small.
type Deps struct {
	Adventures      Collection[domain.Adventure]
	Categories      Collection[domain.Category]
	Visits          Collection[domain.Visit]
	Activities      Collection[domain.Activity]
	Lodgings        Collection[domain.Lodging]
	Transportations Collection[domain.Transportation]

	Journal  Journal
	Export   Exporter
	Geocoder Geocoder
	Hub      *realtime.Hub

	// Authenticate resolves the caller; mounted in front of every /api route
	// except geocoding.
	Authenticate func(http.Handler) http.Handler

	// AllowedOrigins is consulted for websocket upgrades.
	AllowedOrigins []string

	Log *slog.Logger
}

// Server serves the API.
type Server struct {
	deps Deps
	log  *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(deps Deps) *Server {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Server{deps: deps, log: log}
}

// Routes returns the API router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/api", func(r chi.Router) {
		if s.deps.Geocoder != nil {
			r.Get("/geocoding/reverse", s.ReverseGeocode)
			r.Get("/geocoding/search", s.SearchGeocode)
		}

		r.Group(func(r chi.Router) {
			if s.deps.Authenticate != nil {
				r.Use(s.deps.Authenticate)
			}
			r.Get("/self", s.GetSelf)

			if s.deps.Journal != nil {
				r.Get("/journal", s.GetJournal)
				r.Get("/journal/adventures/{id}", s.GetResolvedAdventure)
			}
			if s.deps.Export != nil {
				r.Get("/journal/export", s.GetExport)
			}
			if s.deps.Hub != nil && s.deps.Journal != nil {
				r.Get("/journal/ws", s.JournalSocket)
			}

			mountCollection(r, s, domain.CollectionAdventures, s.deps.Adventures, func(a *domain.Adventure, id uuid.UUID) { a.ID = id })
			mountCollection(r, s, domain.CollectionCategories, s.deps.Categories, func(c *domain.Category, id uuid.UUID) { c.ID = id })
			mountCollection(r, s, domain.CollectionVisits, s.deps.Visits, func(v *domain.Visit, id uuid.UUID) { v.ID = id })
			mountCollection(r, s, domain.CollectionActivities, s.deps.Activities, func(a *domain.Activity, id uuid.UUID) { a.ID = id })
			mountCollection(r, s, domain.CollectionLodgings, s.deps.Lodgings, func(l *domain.Lodging, id uuid.UUID) { l.ID = id })
			mountCollection(r, s, domain.CollectionTransportations, s.deps.Transportations, func(t *domain.Transportation, id uuid.UUID) { t.ID = id })
		})
	})
	return r
}
