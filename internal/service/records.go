package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
type ActivityService struct {
	adventures repo.AdventureRepo
	activities repo.ActivityRepo
	reload     Reloader
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(adventures repo.AdventureRepo, activities repo.ActivityRepo, reload Reloader) *ActivityService {
	return &ActivityService{adventures: adventures, activities: activities, reload: orNop(reload)}
}

func (s *ActivityService) Create(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	if err := checkAdventure(ctx, s.adventures, userID, a.AdventureID); err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Create(ctx, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionActivities)
	return result, nil
}

func (s *ActivityService) List(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	result, err := s.activities.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.List: %w", err)
	}
	return result, nil
}

func (s *ActivityService) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	a.Name = strings.TrimSpace(a.Name)
	a.Location = strings.TrimSpace(a.Location)
	if err := validateActivity(a); err != nil {
		return domain.Activity{}, err
	}
	result, err := s.activities.Update(ctx, userID, a)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionActivities)
	return result, nil
}

func (s *ActivityService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.activities.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionActivities)
	return nil
}

func validateActivity(a domain.Activity) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "name", a.Name, 3, 200)
	checkCost(fe, a.Cost)
	return fe.Err()
}

// LodgingService implements business logic for Lodging operations.
type LodgingService struct {
	adventures repo.AdventureRepo
	lodgings   repo.LodgingRepo
	reload     Reloader
}

// NewLodgingService constructs a LodgingService backed by the provided repos.
func NewLodgingService(adventures repo.AdventureRepo, lodgings repo.LodgingRepo, reload Reloader) *LodgingService {
	return &LodgingService{adventures: adventures, lodgings: lodgings, reload: orNop(reload)}
}

func (s *LodgingService) Create(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error) {
	if err := checkAdventure(ctx, s.adventures, userID, l.AdventureID); err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Create: %w", err)
	}
	l.Location = strings.TrimSpace(l.Location)
	if err := validateLodging(l); err != nil {
		return domain.Lodging{}, err
	}
	result, err := s.lodgings.Create(ctx, l)
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionLodgings)
	return result, nil
}

func (s *LodgingService) List(ctx context.Context, userID uuid.UUID) ([]domain.Lodging, error) {
	result, err := s.lodgings.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.LodgingService.List: %w", err)
	}
	return result, nil
}

func (s *LodgingService) Update(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error) {
	l.Location = strings.TrimSpace(l.Location)
	if err := validateLodging(l); err != nil {
		return domain.Lodging{}, err
	}
	result, err := s.lodgings.Update(ctx, userID, l)
	if err != nil {
		return domain.Lodging{}, fmt.Errorf("service.LodgingService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionLodgings)
	return result, nil
}

func (s *LodgingService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.lodgings.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.LodgingService.Delete: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionLodgings)
	return nil
}

func validateLodging(l domain.Lodging) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "location", l.Location, 3, 200)
	checkCost(fe, l.Cost)
	checkSpan(fe, "to_at", l.FromAt, l.ToAt)
	return fe.Err()
}

// TransportationService implements business logic for Transportation operations.
type TransportationService struct {
	adventures      repo.AdventureRepo
	transportations repo.TransportationRepo
	reload          Reloader
}

// NewTransportationService constructs a TransportationService backed by the provided repos.
func NewTransportationService(adventures repo.AdventureRepo, transportations repo.TransportationRepo, reload Reloader) *TransportationService {
	return &TransportationService{adventures: adventures, transportations: transportations, reload: orNop(reload)}
}

func (s *TransportationService) Create(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error) {
	if err := checkAdventure(ctx, s.adventures, userID, t.AdventureID); err != nil {
		return domain.Transportation{}, fmt.Errorf("service.TransportationService.Create: %w", err)
	}
	t = normalizeTransportation(t)
	if err := validateTransportation(t); err != nil {
		return domain.Transportation{}, err
	}
	result, err := s.transportations.Create(ctx, t)
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("service.TransportationService.Create: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionTransportations)
	return result, nil
}

func (s *TransportationService) List(ctx context.Context, userID uuid.UUID) ([]domain.Transportation, error) {
	result, err := s.transportations.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TransportationService.List: %w", err)
	}
	return result, nil
}

func (s *TransportationService) Update(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error) {
	t = normalizeTransportation(t)
	if err := validateTransportation(t); err != nil {
		return domain.Transportation{}, err
	}
	result, err := s.transportations.Update(ctx, userID, t)
	if err != nil {
		return domain.Transportation{}, fmt.Errorf("service.TransportationService.Update: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionTransportations)
	return result, nil
}

func (s *TransportationService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.transportations.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("service.TransportationService.Delete: %w", err)
	}
	s.reload.Reload(ctx, userID, domain.CollectionTransportations)
	return nil
}

func normalizeTransportation(t domain.Transportation) domain.Transportation {
	t.Type = strings.TrimSpace(t.Type)
	t.From = strings.TrimSpace(t.From)
	t.To = strings.TrimSpace(t.To)
	return t
}

func validateTransportation(t domain.Transportation) error {
	fe := domain.FieldErrors{}
	checkLength(fe, "type", t.Type, 1, 100)
	checkLength(fe, "from", t.From, 1, 200)
	checkLength(fe, "to", t.To, 1, 200)
	checkCost(fe, t.Cost)
	checkSpan(fe, "to_at", t.FromAt, t.ToAt)
	return fe.Err()
}
