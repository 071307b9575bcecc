package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// LodgingRepo defines the persistence operations for Lodgings.
type LodgingRepo interface {
	Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Lodging, error)
	Update(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgLodgingRepo struct {
	db db
}

// NewLodgingRepo constructs a LodgingRepo backed by the provided db connection.
func NewLodgingRepo(db db) LodgingRepo {
	return &pgLodgingRepo{db: db}
}

const lodgingColumns = `id, adventure_id, location, company, reservation, cost, from_at, to_at`

func (r *pgLodgingRepo) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	const q = `
		INSERT INTO lodgings (adventure_id, location, company, reservation, cost, from_at, to_at)
		VALUES (@adventure_id, @location, @company, @reservation, @cost, @from_at, @to_at)
		RETURNING ` + lodgingColumns

	result, err := scanLodging(r.db.QueryRow(ctx, q, lodgingArgs(l)))
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("repo.LodgingRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgLodgingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Lodging, error) {
	b := ownedByUser(psql.Select(prefixed("r", lodgingColumns)).From("lodgings r"), userID).
		OrderBy("r.created_at", "r.id")

	return queryAll(ctx, r.db, "repo.LodgingRepo.ListByUser", b, scanLodging)
}

func (r *pgLodgingRepo) Update(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error) {
	const q = `
		UPDATE lodgings
		SET adventure_id = @adventure_id,
		    location     = @location,
		    company      = @company,
		    reservation  = @reservation,
		    cost         = @cost,
		    from_at      = @from_at,
		    to_at        = @to_at
		WHERE id = @id
		  AND ` + ownedAdventure + `
		  AND @adventure_id IN (SELECT id FROM adventures WHERE user_id = @user_id)
		RETURNING ` + lodgingColumns

	args := lodgingArgs(l)
	args["id"] = l.ID
	args["user_id"] = userID

	result, err := scanLodging(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("repo.LodgingRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgLodgingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM lodgings WHERE id = @id AND ` + ownedAdventure
	return execOne(ctx, r.db, "repo.LodgingRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

func lodgingArgs(l domain.Lodging) pgx.NamedArgs {
	return pgx.NamedArgs{
		"adventure_id": l.AdventureID,
		"location":     l.Location,
		"company":      l.Company,
		"reservation":  l.Reservation,
		"cost":         l.Cost,
		"from_at":      l.FromAt,
		"to_at":        l.ToAt,
	}
}

func scanLodging(s scanner) (domain.Lodging, error) {
	var (
		l               domain.Lodging
		id, adventureID pgtype.UUID
	)
	err := s.Scan(&id, &adventureID, &l.Location, &l.Company, &l.Reservation, &l.Cost, &l.FromAt, &l.ToAt)
	if err != nil {
		return domain.Lodging{}, noRows(err)
	}
	l.ID = uuid.UUID(id.Bytes)
	l.AdventureID = uuid.UUID(adventureID.Bytes)
	return l, nil
}
