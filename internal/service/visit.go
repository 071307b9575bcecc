package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// VisitService implements business logic for Visit operations.
// It holds the adventures and categories repos because a visit must point at
// an adventure and, optionally, a category owned by the same user.
type VisitService struct {
	adventures repo.AdventureRepo
	categories repo.CategoryRepo
	visits     repo.VisitRepo
	reload     Reloader
}

// NewVisitService constructs a VisitService backed by the provided repos.
func NewVisitService(adventures repo.AdventureRepo, categories repo.CategoryRepo, visits repo.VisitRepo, reload Reloader) *VisitService {
	return &VisitService{adventures: adventures, categories: categories, visits: visits, reload: orNop(reload)}
}

// Create verifies the parent adventure belongs to userID, validates the
// visit, then persists it.
// Returns domain.ErrNotFound if the adventure is missing or foreign.
// Returns domain.ErrValidation if input violates business rules.
func (s *VisitService) Create(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error) {
	if err := checkAdventure(ctx, s.adventures, userID, v.AdventureID); err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", err)
	}
	if err := s.validate(ctx, userID, v); err != nil {
		return domain.Visit{}, err
	}
	result, err := s.visits.Create(ctx, normalizeVisit(v))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionVisits)
	return result, nil
}

// List returns every visit of every adventure owned by userID, in creation order.
func (s *VisitService) List(ctx context.Context, userID uuid.UUID) ([]domain.Visit, error) {
	result, err := s.visits.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.VisitService.List: %w", err)
	}
	return result, nil
}

// Update validates and persists changes to a visit. Both the visit's current
// adventure and its target adventure must belong to userID.
func (s *VisitService) Update(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error) {
	if err := checkAdventure(ctx, s.adventures, userID, v.AdventureID); err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Update: %w", err)
	}
	if err := s.validate(ctx, userID, v); err != nil {
		return domain.Visit{}, err
	}
	result, err := s.visits.Update(ctx, userID, normalizeVisit(v))
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionVisits)
	return result, nil
}

// Delete removes a visit owned, through its adventure, by userID.
func (s *VisitService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.visits.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.VisitService.Delete: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionVisits)
	return nil
}

func normalizeVisit(v domain.Visit) domain.Visit {
	v.Location = strings.TrimSpace(v.Location)
	v.Notes = trimPtr(v.Notes)
	return v
}

// validate enforces:
//   - location between 3 and 200 characters
//   - latitude within ±90, longitude within ±180
//   - order between 0 and 100
//   - day_duration, if set, not negative
//   - rating, if set, between 0 and 5
//   - notes, if set, at least 3 characters
//   - category_id, if set, one of the user's categories
func (s *VisitService) validate(ctx context.Context, userID uuid.UUID, v domain.Visit) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "location", v.Location, 3, 200)
	if v.Latitude < -90 || v.Latitude > 90 {
		fe.Add("latitude", "must be between -90 and 90")
	}
	if v.Longitude < -180 || v.Longitude > 180 {
		fe.Add("longitude", "must be between -180 and 180")
	}
	if v.Order < 0 || v.Order > 100 {
		fe.Add("order", "must be between 0 and 100")
	}
	if v.DayDuration != nil && *v.DayDuration < 0 {
		fe.Add("day_duration", "must not be negative")
	}
	checkRange(fe, "rating", v.Rating, 0, 5)
	checkOptionalLength(fe, "notes", v.Notes, 3)
	if err := checkCategory(ctx, s.categories, fe, userID, v.CategoryID); err != nil {
		return fmt.Errorf("service.VisitService.validate: %w", err)
	}
	return fe.Err()
}
