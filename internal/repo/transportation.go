package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// TransportationRepo defines the persistence operations for Transportations.
type TransportationRepo interface {
	Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transportation, error)
	Update(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pgTransportationRepo struct {
	db db
}

// NewTransportationRepo constructs a TransportationRepo backed by the provided db connection.
func NewTransportationRepo(db db) TransportationRepo {
	return &pgTransportationRepo{db: db}
}

// from and to are reserved words, hence from_place / to_place.
const transportationColumns = `id, adventure_id, type, company, reservation, cost, from_place, from_at, to_place, to_at`

func (r *pgTransportationRepo) Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error) {
	const q = `
		INSERT INTO transportations (adventure_id, type, company, reservation, cost, from_place, from_at, to_place, to_at)
		VALUES (@adventure_id, @type, @company, @reservation, @cost, @from_place, @from_at, @to_place, @to_at)
		RETURNING ` + transportationColumns

	result, err := scanTransportation(r.db.QueryRow(ctx, q, transportationArgs(t)))
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("repo.TransportationRepo.Create: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transportation, error) {
	b := ownedByUser(psql.Select(prefixed("r", transportationColumns)).From("transportations r"), userID).
		OrderBy("r.created_at", "r.id")

	return queryAll(ctx, r.db, "repo.TransportationRepo.ListByUser", b, scanTransportation)
}

func (r *pgTransportationRepo) Update(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error) {
	const q = `
		UPDATE transportations
		SET adventure_id = @adventure_id,
		    type         = @type,
		    company      = @company,
		    reservation  = @reservation,
		    cost         = @cost,
		    from_place   = @from_place,
		    from_at      = @from_at,
		    to_place     = @to_place,
		    to_at        = @to_at
		WHERE id = @id
		  AND ` + ownedAdventure + `
		  AND @adventure_id IN (SELECT id FROM adventures WHERE user_id = @user_id)
		RETURNING ` + transportationColumns

	args := transportationArgs(t)
	args["id"] = t.ID
	args["user_id"] = userID

	result, err := scanTransportation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("repo.TransportationRepo.Update: %w", err)
	}
	return result, nil
}

func (r *pgTransportationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM transportations WHERE id = @id AND ` + ownedAdventure
	return execOne(ctx, r.db, "repo.TransportationRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

func transportationArgs(t domain.Transportation) pgx.NamedArgs {
	return pgx.NamedArgs{
		"adventure_id": t.AdventureID,
		"type":         t.Type,
		"company":      t.Company,
		"reservation":  t.Reservation,
		"cost":         t.Cost,
		"from_place":   t.From,
		"from_at":      t.FromAt,
		"to_place":     t.To,
		"to_at":        t.ToAt,
	}
}

func scanTransportation(s scanner) (domain.Transportation, error) {
	var (
		t               domain.Transportation
		id, adventureID pgtype.UUID
	)
	err := s.Scan(&id, &adventureID, &t.Type, &t.Company, &t.Reservation, &t.Cost, &t.From, &t.FromAt, &t.To, &t.ToAt)
	if err != nil {
		return domain.Transportation{}, noRows(err)
	}
	t.ID = uuid.UUID(id.Bytes)
	t.AdventureID = uuid.UUID(adventureID.Bytes)
	return t, nil
}
