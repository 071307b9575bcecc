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

// CategoryRepo defines the persistence operations for Categories.
type CategoryRepo interface {
	// Create inserts a category. A second category with the same slug for the
	// same user is rejected with domain.ErrValidation.
	Create(ctx context.Context, c domain.Category) (domain.Category, error)

	// GetByID retrieves a category owned by userID.
	// Returns domain.ErrNotFound if no such category exists for that user.
	GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Category, error)

	// ListByUser returns every category of userID ordered by slug.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Category, error)

	// Update overwrites name, display name and icon of a category owned by c.UserID.
	Update(ctx context.Context, c domain.Category) (domain.Category, error)

	// Delete removes a category. Adventures and visits referencing it keep
	// existing with a NULL category.
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// pgCategoryRepo is the Postgres implementation of CategoryRepo.
type pgCategoryRepo struct {
	db db
}

// NewCategoryRepo constructs a CategoryRepo backed by the provided db connection.
func NewCategoryRepo(db db) CategoryRepo {
	return &pgCategoryRepo{db: db}
}

const categoryColumns = `id, user_id, name, display_name, icon, created_at`

func (r *pgCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	const q = `
		INSERT INTO categories (user_id, name, display_name, icon)
		VALUES (@user_id, @name, @display_name, @icon)
		RETURNING ` + categoryColumns

	args := pgx.NamedArgs{
		"user_id":      c.UserID,
		"name":         c.Name,
		"display_name": c.DisplayName,
		"icon":         c.Icon,
	}
	result, err := scanCategory(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Create: %w", uniqueViolation(err, "name", "a category with this name already exists"))
	}
	return result, nil
}

func (r *pgCategoryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Category, error) {
	const q = `
		SELECT ` + categoryColumns + `
		FROM categories
		WHERE id = @id AND user_id = @user_id`

	result, err := scanCategory(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id, "user_id": userID}))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *pgCategoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	b := psql.Select(categoryColumns).
		From("categories").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("name")

	return queryAll(ctx, r.db, "repo.CategoryRepo.ListByUser", b, scanCategory)
}

func (r *pgCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	const q = `
		UPDATE categories
		SET name         = @name,
		    display_name = @display_name,
		    icon         = @icon
		WHERE id = @id AND user_id = @user_id
		RETURNING ` + categoryColumns

	args := pgx.NamedArgs{
		"id":           c.ID,
		"user_id":      c.UserID,
		"name":         c.Name,
		"display_name": c.DisplayName,
		"icon":         c.Icon,
	}
	result, err := scanCategory(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Category{}, fmt.Errorf("repo.CategoryRepo.Update: %w", uniqueViolation(err, "name", "a category with this name already exists"))
	}
	return result, nil
}

func (r *pgCategoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	const q = `DELETE FROM categories WHERE id = @id AND user_id = @user_id`
	return execOne(ctx, r.db, "repo.CategoryRepo.Delete", q, pgx.NamedArgs{"id": id, "user_id": userID})
}

// scanCategory maps a single database row into a domain.Category.
func scanCategory(s scanner) (domain.Category, error) {
	var (
		c          domain.Category
		id, userID pgtype.UUID
	)
	err := s.Scan(&id, &userID, &c.Name, &c.DisplayName, &c.Icon, &c.CreatedAt)
	if err != nil {
		return domain.Category{}, noRows(err)
	}
	c.ID = uuid.UUID(id.Bytes)
	c.UserID = uuid.UUID(userID.Bytes)
	return c, nil
}
