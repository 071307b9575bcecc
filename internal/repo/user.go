package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// UserRepo defines the persistence operations for Users.
type UserRepo interface {
	// Provision inserts a user by username, or returns the existing user if
	// the username is taken. A non-empty email replaces the stored one.
	Provision(ctx context.Context, username, email string) (domain.User, error)

	// GetByID retrieves a user by primary key.
	// Returns domain.ErrNotFound if no user with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.User, error)
}

// pgUserRepo is the Postgres implementation of UserRepo.
type pgUserRepo struct {
	db db
}

// NewUserRepo constructs a UserRepo backed by the provided db connection.
func NewUserRepo(db db) UserRepo {
	return &pgUserRepo{db: db}
}

// Provision upserts by username. The DO UPDATE SET clause forces RETURNING to
// fire on conflict too. With DO NOTHING, RETURNING yields no row.
func (r *pgUserRepo) Provision(ctx context.Context, username, email string) (domain.User, error) {
	const q = `
		INSERT INTO users (username, email)
		VALUES (@username, @email)
		ON CONFLICT (username) DO UPDATE
		SET email = COALESCE(NULLIF(EXCLUDED.email, ''), users.email)
		RETURNING id, username, email, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"username": username, "email": email})
	result, err := scanUser(row)
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.Provision: %w", err)
	}
	return result, nil
}

func (r *pgUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	const q = `SELECT id, username, email, created_at FROM users WHERE id = @id`

	result, err := scanUser(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.User{}, fmt.Errorf("repo.UserRepo.GetByID: %w", err)
	}
	return result, nil
}

func scanUser(s scanner) (domain.User, error) {
	var (
		u  domain.User
		id pgtype.UUID
	)
	if err := s.Scan(&id, &u.Username, &u.Email, &u.CreatedAt); err != nil {
		return domain.User{}, noRows(err)
	}
	u.ID = uuid.UUID(id.Bytes)
	return u, nil
}
