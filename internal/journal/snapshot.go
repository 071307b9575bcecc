// Package journal assembles a user's travel journal read-model.
//
// An Aggregator fetches the six record collections into an immutable
// Snapshot; Build indexes the snapshot and runs the timeline resolver for
// every adventure; Journal keeps the latest snapshot per user so a single
// collection can be reloaded after a mutation and the whole read-model
// recomputed and published.
package journal

import (
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Snapshot is one fetch of every collection a user owns. It is treated as
// immutable: reloading a collection produces a new Snapshot.
type Snapshot struct {
	Adventures      []domain.Adventure      `yaml:"adventures"`
	Categories      []domain.Category       `yaml:"categories"`
	Visits          []domain.Visit          `yaml:"visits"`
	Activities      []domain.Activity       `yaml:"activities"`
	Lodgings        []domain.Lodging        `yaml:"lodgings"`
	Transportations []domain.Transportation `yaml:"transportations"`
}

// Index holds the lookups Build needs. Grouped slices keep fetch order.
type Index struct {
	CategoryByID               map[uuid.UUID]domain.Category
	VisitsByAdventure          map[uuid.UUID][]domain.Visit
	ActivitiesByAdventure      map[uuid.UUID][]domain.Activity
	LodgingsByAdventure        map[uuid.UUID][]domain.Lodging
	TransportationsByAdventure map[uuid.UUID][]domain.Transportation
}

// BuildIndex groups the snapshot's records by id and by adventure.
func BuildIndex(s Snapshot) Index {
	idx := Index{
		CategoryByID: make(map[uuid.UUID]domain.Category, len(s.Categories)),
	}
	for _, c := range s.Categories {
		idx.CategoryByID[c.ID] = c
	}
	idx.VisitsByAdventure = groupBy(s.Visits, func(v domain.Visit) uuid.UUID { return v.AdventureID })
	idx.ActivitiesByAdventure = groupBy(s.Activities, func(a domain.Activity) uuid.UUID { return a.AdventureID })
	idx.LodgingsByAdventure = groupBy(s.Lodgings, func(l domain.Lodging) uuid.UUID { return l.AdventureID })
	idx.TransportationsByAdventure = groupBy(s.Transportations, func(t domain.Transportation) uuid.UUID { return t.AdventureID })
	return idx
}

// category looks up id, returning nil for a nil id or an unknown category.
func (idx Index) category(id *uuid.UUID) *domain.Category {
	if id == nil {
		return nil
	}
	c, ok := idx.CategoryByID[*id]
	if !ok {
		return nil
	}
	return &c
}

// with returns a copy of s with collection c replaced by records.
// records must be the slice type matching c.
func (s Snapshot) with(c domain.Collection, records any) Snapshot {
	out := s
	switch c {
	case domain.CollectionAdventures:
		out.Adventures = slices.Clone(records.([]domain.Adventure))
	case domain.CollectionCategories:
		out.Categories = slices.Clone(records.([]domain.Category))
	case domain.CollectionVisits:
		out.Visits = slices.Clone(records.([]domain.Visit))
	case domain.CollectionActivities:
		out.Activities = slices.Clone(records.([]domain.Activity))
	case domain.CollectionLodgings:
		out.Lodgings = slices.Clone(records.([]domain.Lodging))
	case domain.CollectionTransportations:
		out.Transportations = slices.Clone(records.([]domain.Transportation))
	}
	return out
}

func groupBy[T any](items []T, key func(T) uuid.UUID) map[uuid.UUID][]T {
	out := make(map[uuid.UUID][]T)
	for _, it := range items {
		k := key(it)
		out[k] = append(out[k], it)
	}
	return out
}
