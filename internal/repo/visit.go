package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// VisitRepo defines the persistence operations for Visits.
// Visits have no user column; ownership is checked through the parent adventure.
type VisitRepo interface {
	// Create inserts a new visit and returns the persisted record.
	// The caller must have verified that v.AdventureID belongs to the user.
	Create(ctx context.Context, v domain.Visit) (domain.Visit, error)

	// GetByID retrieves a single visit whose adventure belongs to userID.
	// Returns domain.ErrNotFound if no such visit exists for that user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Visit, error)

	// ListByUser returns every visit across userID's adventures in creation order.
	// The order column is not applied here: sequencing is the resolver's job.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Visit, error)

	// Update overwrites the mutable fields of a visit owned by userID.
	// Returns domain.ErrNotFound if no such visit exists for that user.
	Update(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error)

	// Delete removes a visit owned by userID.
	// Returns domain.ErrNotFound if no such visit exists for that user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgVisitRepo is the Postgres implementation of VisitRepo.
type pgVisitRepo struct {
	db db
}

// NewVisitRepo constructs a VisitRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVisitRepo(db db) VisitRepo {
	return &pgVisitRepo{db: db}
}

const visitColumns = `id, adventure_id, category_id, day_duration, location, latitude, longitude, rating, sort_order, notes, created_at, updated_at`

func (r *pgVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	const q = `
		INSERT INTO visits (adventure_id, category_id, day_duration, location, latitude, longitude, rating, sort_order, notes)
		VALUES (@adventure_id, @category_id, @day_duration, @location, @latitude, @longitude, @rating, @sort_order, @notes)
		RETURNING ` + visitColumns

	result, err := scanVisit(r.db.QueryRow(ctx, q, visitArgs(v)))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgVisitRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Visit, error) {
	const q = `
		SELECT ` + visitColumns + `
		FROM visits
		WHERE id = @id AND ` + ownedAdventure

	result, err := scanVisit(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgVisitRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Visit, error) {
	b := ownedByUser(psql.Select(prefixed("r", visitColumns)).From("visits r"), userID).
		OrderBy("r.created_at", "r.id")

	return queryAll(ctx, r.db, "repo.VisitRepo.ListByUser", b, scanVisit)
}

// Update may move a visit to another adventure; both the current and the
// target adventure must belong to userID.
func (r *pgVisitRepo) Update(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error) {
	const q = `
		UPDATE visits
		SET adventure_id = @adventure_id,
		    category_id  = @category_id,
		    day_duration = @day_duration,
		    location     = @location,
		    latitude     = @latitude,
		    longitude    = @longitude,
		    rating       = @rating,
		    sort_order   = @sort_order,
		    notes        = @notes,
		    updated_at   = now()
		WHERE id = @id
		  AND ` + ownedAdventure + `
		  AND @adventure_id IN (SELECT id FROM adventures WHERE user_id = @user_id)
		RETURNING ` + visitColumns

	args := visitArgs(v)
	args["id"] = v.ID
	args["user_id"] = userID

	result, err := scanVisit(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgVisitRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM visits WHERE id = @id AND ` + ownedAdventure
	return execOne(ctx, r.db, "repo.VisitRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

func visitArgs(v domain.Visit) pgx.NamedArgs {
	return pgx.NamedArgs{
		"adventure_id": v.AdventureID,
		"category_id":  v.CategoryID,
		"day_duration": v.DayDuration,
		"location":     v.Location,
		"latitude":     v.Latitude,
		"longitude":    v.Longitude,
		"rating":       v.Rating,
		"sort_order":   v.Order,
		"notes":        v.Notes,
	}
}

// scanVisit maps a single database row into a domain.Visit.
func scanVisit(s scanner) (domain.Visit, error) {
	var (
		v               domain.Visit
		id, adventureID pgtype.UUID
		categoryID      pgtype.UUID
	)

	err := s.Scan(&id, &adventureID, &categoryID, &v.DayDuration, &v.Location, &v.Latitude, &v.Longitude,
		&v.Rating, &v.Order, &v.Notes, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return domain.Visit{}, noRows(err)
	}

	v.ID = uuid.UUID(id.Bytes)
	v.AdventureID = uuid.UUID(adventureID.Bytes)
	v.CategoryID = optionalUUID(categoryID)
	return v, nil
}
