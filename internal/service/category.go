package service

import (
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// CategoryService implements business logic for Category operations.
// Category identity is its slug, derived from the display name on every write.
type CategoryService struct {
	categories repo.CategoryRepo
	reload     Reloader
}

// NewCategoryService constructs a CategoryService backed by the provided repo.
func NewCategoryService(categories repo.CategoryRepo, reload Reloader) *CategoryService {
	return &CategoryService{categories: categories, reload: orNop(reload)}
}

// Slugify derives a category name from a display name: accents are stripped,
// the result is lowercased, anything outside [a-z0-9 ] is dropped and runs of
// spaces become a single hyphen.
//
//	"Côte d'Azur" → "cote-dazur"
func Slugify(displayName string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, displayName)
	if err != nil {
		stripped = displayName
	}

	var b strings.Builder
	for _, r := range strings.ToLower(stripped) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "-")
}

// Create validates and persists a new category for userID.
func (s *CategoryService) Create(ctx context.Context, userID uuid.UUID, c domain.Category) (domain.Category, error) {
	c.UserID = userID
	c = normalizeCategory(c)
	if err := validateCategory(c); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Create(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionCategories)
	return result, nil
}

// List returns the categories of userID ordered by slug.
func (s *CategoryService) List(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	result, err := s.categories.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.CategoryService.List: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to a category owned by userID.
func (s *CategoryService) Update(ctx context.Context, userID uuid.UUID, c domain.Category) (domain.Category, error) {
	c.UserID = userID
	c = normalizeCategory(c)
	if err := validateCategory(c); err != nil {
		return domain.Category{}, err
	}
	result, err := s.categories.Update(ctx, c)
	if err != nil {
		return domain.Category{}, fmt.Errorf("service.CategoryService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionCategories)
	return result, nil
}

// Delete removes a category. Adventures and visits that referenced it lose
// their category, so every collection is reloaded.
func (s *CategoryService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.CategoryService.Delete: %w", err)
	}
	s.reload.Load(ctx, userID)
	return nil
}

func normalizeCategory(c domain.Category) domain.Category {
	c.DisplayName = strings.TrimSpace(c.DisplayName)
	c.Icon = strings.TrimSpace(c.Icon)
	c.Name = Slugify(c.DisplayName)
	return c
}

// validateCategory enforces:
//   - display_name between 3 and 200 characters, with a non-empty slug
//   - icon between 1 and 4 characters (usually a single emoji)
func validateCategory(c domain.Category) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "display_name", c.DisplayName, 3, 200)
	if c.Name == "" {
		fe.Add("display_name", "must contain at least one letter or digit")
	}
	checkLength(fe, "icon", c.Icon, 1, 4)
	return fe.Err()
}
