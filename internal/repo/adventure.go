package repo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// AdventureRepo defines the persistence operations for Adventures.
// The service layer depends on this interface, not the concrete Postgres implementation,
// which allows the service to be unit-tested with a mock.
type AdventureRepo interface {
	// Create inserts a new adventure and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, a domain.Adventure) (domain.Adventure, error)

	// GetByID retrieves a single adventure owned by userID.
	// Returns domain.ErrNotFound if no such adventure exists for that user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Adventure, error)

	// ListByUser returns every adventure owned by userID in creation order.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Adventure, error)

	// Update overwrites the mutable fields of an adventure owned by a.UserID.
	// Returns domain.ErrNotFound if no such adventure exists for that user.
	Update(ctx context.Context, a domain.Adventure) (domain.Adventure, error)

	// Delete removes an adventure and, by cascade, its visits and records.
	// Returns domain.ErrNotFound if no such adventure exists for that user.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgAdventureRepo is the Postgres implementation of AdventureRepo.
type pgAdventureRepo struct {
	db db
}

// NewAdventureRepo constructs an AdventureRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewAdventureRepo(db db) AdventureRepo {
	return &pgAdventureRepo{db: db}
}

const adventureColumns = `id, user_id, name, description, rating, category_id, start_date, created_at, updated_at`

// Create inserts a new adventure row and returns the full persisted record.
func (r *pgAdventureRepo) Create(ctx context.Context, a domain.Adventure) (domain.Adventure, error) {
	const q = `
		INSERT INTO adventures (user_id, name, description, rating, category_id, start_date)
		VALUES (@user_id, @name, @description, @rating, @category_id, @start_date)
		RETURNING ` + adventureColumns

	args, err := adventureArgs(a)
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("repo.AdventureRepo.Create: %w", err)
	}

	result, err := scanAdventure(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("repo.AdventureRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves an adventure by primary key, scoped to its owner.
func (r *pgAdventureRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Adventure, error) {
	const q = `
		SELECT ` + adventureColumns + `
		FROM adventures
		WHERE id = @id AND user_id = @user_id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID})
	result, err := scanAdventure(row)
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("repo.AdventureRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByUser returns all adventures of userID, oldest first.
func (r *pgAdventureRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Adventure, error) {
	b := psql.Select(adventureColumns).
		From("adventures").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at", "id")

	return queryAll(ctx, r.db, "repo.AdventureRepo.ListByUser", b, scanAdventure)
}

// Update overwrites the mutable fields of an adventure and returns the updated record.
func (r *pgAdventureRepo) Update(ctx context.Context, a domain.Adventure) (domain.Adventure, error) {
	const q = `
		UPDATE adventures
		SET name        = @name,
		    description = @description,
		    rating      = @rating,
		    category_id = @category_id,
		    start_date  = @start_date,
		    updated_at  = now()
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + adventureColumns

	args, err := adventureArgs(a)
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("repo.AdventureRepo.Update: %w", err)
	}
	args["id"] = a.ID

	result, err := scanAdventure(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("repo.AdventureRepo.Update: %w", err)
	}
	return result, nil
}

// Delete removes an adventure by primary key, scoped to its owner.
func (r *pgAdventureRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM adventures WHERE id = @id AND user_id = @user_id`
	return execOne(ctx, r.db, "repo.AdventureRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

func adventureArgs(a domain.Adventure) (pgx.NamedArgs, error) {
	start, err := dateArg(a.StartDate)
	if err != nil {
		return nil, err
	}
	return pgx.NamedArgs{
		"user_id":     a.UserID,
		"name":        a.Name,
		"description": a.Description, // nil becomes NULL
		"rating":      a.Rating,
		"category_id": a.CategoryID,
		"start_date":  start,
	}, nil
}

// scanAdventure maps a single database row into a domain.Adventure.
// It handles the UUID, nullable category, and nullable start_date conversions.
func scanAdventure(s scanner) (domain.Adventure, error) {
	var (
		a          domain.Adventure
		id, userID pgtype.UUID
		categoryID pgtype.UUID
		startDate  pgtype.Date
	)

	err := s.Scan(&id, &userID, &a.Name, &a.Description, &a.Rating, &categoryID, &startDate, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return domain.Adventure{}, noRows(err)
	}

	a.ID = uuid.UUID(id.Bytes)
	a.UserID = uuid.UUID(userID.Bytes)
	a.CategoryID = optionalUUID(categoryID)
	a.StartDate = optionalDate(startDate)
	return a, nil
}
