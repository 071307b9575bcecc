package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// AdventureService implements business logic for Adventure operations.
type AdventureService struct {
	adventures repo.AdventureRepo
	categories repo.CategoryRepo
	reload     Reloader
}

// NewAdventureService constructs an AdventureService backed by the provided repos.
func NewAdventureService(adventures repo.AdventureRepo, categories repo.CategoryRepo, reload Reloader) *AdventureService {
	return &AdventureService{adventures: adventures, categories: categories, reload: orNop(reload)}
}

// Create validates and persists a new adventure for userID.
// Returns domain.ErrValidation if input violates business rules.
func (s *AdventureService) Create(ctx context.Context, userID uuid.UUID, a domain.Adventure) (domain.Adventure, error) {
	a.UserID = userID
	if err := s.validate(ctx, a); err != nil {
		return domain.Adventure{}, err
	}
	result, err := s.adventures.Create(ctx, normalizeAdventure(a))
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("service.AdventureService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionAdventures)
	return result, nil
}

// List returns the adventures of userID.
func (s *AdventureService) List(ctx context.Context, userID uuid.UUID) ([]domain.Adventure, error) {
	result, err := s.adventures.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.AdventureService.List: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to an adventure owned by userID.
// Returns domain.ErrNotFound if the adventure does not belong to userID.
func (s *AdventureService) Update(ctx context.Context, userID uuid.UUID, a domain.Adventure) (domain.Adventure, error) {
	a.UserID = userID
	if err := s.validate(ctx, a); err != nil {
		return domain.Adventure{}, err
	}
	result, err := s.adventures.Update(ctx, normalizeAdventure(a))
	if err != nil {
		return domain.Adventure{}, fmt.Errorf("service.AdventureService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionAdventures)
	return result, nil
}

// Delete removes an adventure. Its visits, activities, lodgings and
// transportations are deleted with it, so every collection is reloaded.
func (s *AdventureService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.adventures.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.AdventureService.Delete: %w", err)
	}
	s.reload.Load(ctx, userID)
	return nil
}

func normalizeAdventure(a domain.Adventure) domain.Adventure {
	a.Name = strings.TrimSpace(a.Name)
	a.Description = trimPtr(a.Description)
	return a
}

// validate enforces:
//   - name between 3 and 200 characters
//   - rating, if set, between 0 and 5
//   - start_date, if set, a YYYY-MM-DD calendar date
//   - category_id, if set, one of the user's categories
func (s *AdventureService) validate(ctx context.Context, a domain.Adventure) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "name", a.Name, 3, 200)
	checkRange(fe, "rating", a.Rating, 0, 5)
	checkDate(fe, "start_date", a.StartDate)
	if err := checkCategory(ctx, s.categories, fe, a.UserID, a.CategoryID); err != nil {
		return fmt.Errorf("service.AdventureService.validate: %w", err)
	}
	return fe.Err()
}
