package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
// Like visits, activities are owned through their adventure.
type ActivityRepo interface {
	Create(ctx context.Context, a domain.Activity) (domain.Activity, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error)
	Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, adventure_id, name, location, cost, at`

func (r *pgActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (adventure_id, name, location, cost, at)
		VALUES (@adventure_id, @name, @location, @cost, @at)
		RETURNING ` + activityColumns

	result, err := scanActivity(r.db.QueryRow(ctx, q, activityArgs(a)))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	b := ownedByUser(psql.Select(prefixed("r", activityColumns)).From("activities r"), userID).
		OrderBy("r.created_at", "r.id")

	return queryAll(ctx, r.db, "repo.ActivityRepo.ListByUser", b, scanActivity)
}

func (r *pgActivityRepo) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET adventure_id = @adventure_id,
		    name         = @name,
		    location     = @location,
		    cost         = @cost,
		    at           = @at
		WHERE id = @id
		  AND ` + ownedAdventure + `
		  AND @adventure_id IN (SELECT id FROM adventures WHERE user_id = @user_id)
		RETURNING ` + activityColumns

	args := activityArgs(a)
	args["id"] = a.ID
	args["user_id"] = userID

	result, err := scanActivity(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Activity{}, fmt.Errorf("repo.ActivityRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM activities WHERE id = @id AND ` + ownedAdventure
	return execOne(ctx, r.db, "repo.ActivityRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"adventure_id": a.AdventureID,
		"name":         a.Name,
		"location":     a.Location,
		"cost":         a.Cost,
		"at":           a.At,
	}
}

func scanActivity(s scanner) (domain.Activity, error) {
	var (
		a               domain.Activity
		id, adventureID pgtype.UUID
	)
	if err := s.Scan(&id, &adventureID, &a.Name, &a.Location, &a.Cost, &a.At); err != nil {
		return domain.Activity{}, noRows(err)
	}
	a.ID = uuid.UUID(id.Bytes)
	a.AdventureID = uuid.UUID(adventureID.Bytes)
	return a, nil
}
