package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Lister returns the complete, unpaginated list of one collection scoped to
// a user. Every repo in internal/repo satisfies it for its record type.
type Lister[T any] interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]T, error)
}

// Sources are the six collections an Aggregator reads.
type Sources struct {
	Adventures      Lister[domain.Adventure]
	Categories      Lister[domain.Category]
	Visits          Lister[domain.Visit]
	Activities      Lister[domain.Activity]
	Lodgings        Lister[domain.Lodging]
	Transportations Lister[domain.Transportation]
}

// Aggregator fetches a user's collections into a Snapshot.
type Aggregator struct {
	src Sources
	log *slog.Logger
}

// NewAggregator constructs an Aggregator reading from src.
func NewAggregator(src Sources, log *slog.Logger) *Aggregator {
	return &Aggregator{src: src, log: log}
}

// Fetch reads all six collections concurrently.
//
// The fetch is all-or-nothing: if any collection fails, the result is an
// empty snapshot and the failure is only logged. Callers cannot tell a
// failed fetch from a user with no records.
func (a *Aggregator) Fetch(ctx context.Context, userID uuid.UUID) Snapshot {
	var s Snapshot

	g, gctx := errgroup.WithContext(ctx)
	g.Go(fetchInto(gctx, a.src.Adventures, userID, &s.Adventures))
	g.Go(fetchInto(gctx, a.src.Categories, userID, &s.Categories))
	g.Go(fetchInto(gctx, a.src.Visits, userID, &s.Visits))
	g.Go(fetchInto(gctx, a.src.Activities, userID, &s.Activities))
	g.Go(fetchInto(gctx, a.src.Lodgings, userID, &s.Lodgings))
	g.Go(fetchInto(gctx, a.src.Transportations, userID, &s.Transportations))

	if err := g.Wait(); err != nil {
		a.log.WarnContext(ctx, "journal fetch failed, serving empty journal",
			"user_id", userID,
			"error", err,
		)
		return emptySnapshot()
	}
	return nonNil(s)
}

// FetchCollection re-reads collection c and returns a copy of base with that
// collection replaced. base itself is left untouched.
func (a *Aggregator) FetchCollection(ctx context.Context, userID uuid.UUID, c domain.Collection, base Snapshot) (Snapshot, error) {
	records, err := a.fetchOne(ctx, userID, c)
	if err != nil {
		return base, err
	}
	return base.with(c, records), nil
}

// fetchOne reads a single collection. The returned value is the typed slice
// for c, never nil.
func (a *Aggregator) fetchOne(ctx context.Context, userID uuid.UUID, c domain.Collection) (any, error) {
	var (
		records any
		err     error
	)
	switch c {
	case domain.CollectionAdventures:
		records, err = list(ctx, a.src.Adventures, userID)
	case domain.CollectionCategories:
		records, err = list(ctx, a.src.Categories, userID)
	case domain.CollectionVisits:
		records, err = list(ctx, a.src.Visits, userID)
	case domain.CollectionActivities:
		records, err = list(ctx, a.src.Activities, userID)
	case domain.CollectionLodgings:
		records, err = list(ctx, a.src.Lodgings, userID)
	case domain.CollectionTransportations:
		records, err = list(ctx, a.src.Transportations, userID)
	default:
		return nil, fmt.Errorf("journal.Aggregator.fetchOne: unknown collection %q", c)
	}
	if err != nil {
		return nil, fmt.Errorf("journal.Aggregator.fetchOne: %s: %w", c, err)
	}
	return records, nil
}

func fetchInto[T any](ctx context.Context, l Lister[T], userID uuid.UUID, dst *[]T) func() error {
	return func() error {
		items, err := l.ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		*dst = items
		return nil
	}
}

func list[T any](ctx context.Context, l Lister[T], userID uuid.UUID) ([]T, error) {
	items, err := l.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func emptySnapshot() Snapshot {
	return nonNil(Snapshot{})
}

// nonNil replaces nil collections with empty ones so the read-model always
// renders lists as [] rather than null.
func nonNil(s Snapshot) Snapshot {
	if s.Adventures == nil {
		s.Adventures = []domain.Adventure{}
	}
	if s.Categories == nil {
		s.Categories = []domain.Category{}
	}
	if s.Visits == nil {
		s.Visits = []domain.Visit{}
	}
	if s.Activities == nil {
		s.Activities = []domain.Activity{}
	}
	if s.Lodgings == nil {
		s.Lodgings = []domain.Lodging{}
	}
	if s.Transportations == nil {
		s.Transportations = []domain.Transportation{}
	}
	return s
}
