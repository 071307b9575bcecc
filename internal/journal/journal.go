package journal

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Publisher receives every recomputed read-model. The websocket hub in
// internal/realtime implements it.
type Publisher interface {
	Publish(userID uuid.UUID, rm domain.ReadModel)
}

// Journal holds the latest snapshot per user and recomputes the read-model
// whenever a snapshot changes. Snapshots are replaced, never modified.
type Journal struct {
	agg *Aggregator
	pub Publisher
	now func() time.Time
	log *slog.Logger

	mu        sync.RWMutex
	snapshots map[uuid.UUID]Snapshot
}

// New constructs a Journal. pub may be nil when nothing consumes pushes;
// now is the clock used to decide visit statuses.
func New(agg *Aggregator, pub Publisher, now func() time.Time, log *slog.Logger) *Journal {
	return &Journal{
		agg:       agg,
		pub:       pub,
		now:       now,
		log:       log,
		snapshots: make(map[uuid.UUID]Snapshot),
	}
}

// Load fetches every collection for userID, replaces the held snapshot and
// returns the freshly computed read-model.
func (j *Journal) Load(ctx context.Context, userID uuid.UUID) domain.ReadModel {
	s := j.agg.Fetch(ctx, userID)

	j.mu.Lock()
	j.snapshots[userID] = s
	j.mu.Unlock()

	return j.publish(userID, s)
}

// Reload re-fetches one collection after a mutation and recomputes the
// whole read-model from every collection currently held. If the user has no
// snapshot yet, all collections are loaded. A failed re-fetch keeps the
// previously held records for that collection.
func (j *Journal) Reload(ctx context.Context, userID uuid.UUID, c domain.Collection) domain.ReadModel {
	if _, ok := j.Snapshot(userID); !ok {
		return j.Load(ctx, userID)
	}

	records, err := j.agg.fetchOne(ctx, userID, c)

	j.mu.Lock()
	next := j.snapshots[userID]
	if err == nil {
		next = next.with(c, records)
		j.snapshots[userID] = next
	}
	j.mu.Unlock()

	if err != nil {
		j.log.WarnContext(ctx, "journal reload failed, keeping previous records",
			"user_id", userID,
			"collection", c,
			"error", err,
		)
	}
	return j.publish(userID, next)
}

// Republish recomputes and publishes every held snapshot against the
// current date. Run it when the date changes so statuses roll over.
// Returns the number of read-models published.
func (j *Journal) Republish(ctx context.Context) int {
	j.mu.RLock()
	held := make(map[uuid.UUID]Snapshot, len(j.snapshots))
	for id, s := range j.snapshots {
		held[id] = s
	}
	j.mu.RUnlock()

	for id, s := range held {
		j.publish(id, s)
	}
	j.log.InfoContext(ctx, "journal republished", "users", len(held))
	return len(held)
}

// Snapshot returns the snapshot currently held for userID.
func (j *Journal) Snapshot(userID uuid.UUID) (Snapshot, bool) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	s, ok := j.snapshots[userID]
	return s, ok
}

func (j *Journal) publish(userID uuid.UUID, s Snapshot) domain.ReadModel {
	rm := Build(s, j.now())
	if j.pub != nil {
		j.pub.Publish(userID, rm)
	}
	return rm
}
