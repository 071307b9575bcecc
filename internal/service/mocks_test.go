package service_test

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/repo"
	"github.com/pkordes/travel-journal/backend/internal/service"
)

// Hand-written test doubles for the repo interfaces.
// Each method is a function field; set only the ones your test needs.

type mockAdventureRepo struct {
	create     func(ctx context.Context, a domain.Adventure) (domain.Adventure, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Adventure, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Adventure, error)
	update     func(ctx context.Context, a domain.Adventure) (domain.Adventure, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockAdventureRepo) Create(ctx context.Context, a domain.Adventure) (domain.Adventure, error) {
	return m.create(ctx, a)
}
func (m *mockAdventureRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Adventure, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockAdventureRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Adventure, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockAdventureRepo) Update(ctx context.Context, a domain.Adventure) (domain.Adventure, error) {
	return m.update(ctx, a)
}
func (m *mockAdventureRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockCategoryRepo struct {
	create     func(ctx context.Context, c domain.Category) (domain.Category, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Category, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Category, error)
	update     func(ctx context.Context, c domain.Category) (domain.Category, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockCategoryRepo) Create(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.create(ctx, c)
}
func (m *mockCategoryRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Category, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockCategoryRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Category, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockCategoryRepo) Update(ctx context.Context, c domain.Category) (domain.Category, error) {
	return m.update(ctx, c)
}
func (m *mockCategoryRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockVisitRepo struct {
	create     func(ctx context.Context, v domain.Visit) (domain.Visit, error)
	getByID    func(ctx context.Context, userID, id uuid.UUID) (domain.Visit, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Visit, error)
	update     func(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockVisitRepo) Create(ctx context.Context, v domain.Visit) (domain.Visit, error) {
	return m.create(ctx, v)
}
func (m *mockVisitRepo) GetByID(ctx context.Context, userID, id uuid.UUID) (domain.Visit, error) {
	return m.getByID(ctx, userID, id)
}
func (m *mockVisitRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Visit, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockVisitRepo) Update(ctx context.Context, userID uuid.UUID, v domain.Visit) (domain.Visit, error) {
	return m.update(ctx, userID, v)
}
func (m *mockVisitRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockActivityRepo struct {
	create     func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error)
	update     func(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockActivityRepo) Create(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.create(ctx, a)
}
func (m *mockActivityRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Activity, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockActivityRepo) Update(ctx context.Context, userID uuid.UUID, a domain.Activity) (domain.Activity, error) {
	return m.update(ctx, userID, a)
}
func (m *mockActivityRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockLodgingRepo struct {
	create     func(ctx context.Context, l domain.Lodging) (domain.Lodging, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Lodging, error)
	update     func(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockLodgingRepo) Create(ctx context.Context, l domain.Lodging) (domain.Lodging, error) {
	return m.create(ctx, l)
}
func (m *mockLodgingRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Lodging, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockLodgingRepo) Update(ctx context.Context, userID uuid.UUID, l domain.Lodging) (domain.Lodging, error) {
	return m.update(ctx, userID, l)
}
func (m *mockLodgingRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockTransportationRepo struct {
	create     func(ctx context.Context, t domain.Transportation) (domain.Transportation, error)
	listByUser func(ctx context.Context, userID uuid.UUID) ([]domain.Transportation, error)
	update     func(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error)
	delete     func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockTransportationRepo) Create(ctx context.Context, t domain.Transportation) (domain.Transportation, error) {
	return m.create(ctx, t)
}
func (m *mockTransportationRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transportation, error) {
	return m.listByUser(ctx, userID)
}
func (m *mockTransportationRepo) Update(ctx context.Context, userID uuid.UUID, t domain.Transportation) (domain.Transportation, error) {
	return m.update(ctx, userID, t)
}
func (m *mockTransportationRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

type mockUserRepo struct {
	provision func(ctx context.Context, username, email string) (domain.User, error)
	getByID   func(ctx context.Context, id uuid.UUID) (domain.User, error)
}

func (m *mockUserRepo) Provision(ctx context.Context, username, email string) (domain.User, error) {
	return m.provision(ctx, username, email)
}
func (m *mockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.User, error) {
	return m.getByID(ctx, id)
}

// recordingReloader remembers every reload request.
type recordingReloader struct {
	loads   int
	reloads []domain.Collection
	model   domain.ReadModel
}

func (r *recordingReloader) Load(context.Context, uuid.UUID) domain.ReadModel {
	r.loads++
	return r.model
}

func (r *recordingReloader) Reload(_ context.Context, _ uuid.UUID, c domain.Collection) domain.ReadModel {
	r.reloads = append(r.reloads, c)
	return r.model
}

// compile-time checks: mocks must satisfy the interfaces they stand in for.
var (
	_ repo.AdventureRepo      = (*mockAdventureRepo)(nil)
	_ repo.CategoryRepo       = (*mockCategoryRepo)(nil)
	_ repo.VisitRepo          = (*mockVisitRepo)(nil)
	_ repo.ActivityRepo       = (*mockActivityRepo)(nil)
	_ repo.LodgingRepo        = (*mockLodgingRepo)(nil)
	_ repo.TransportationRepo = (*mockTransportationRepo)(nil)
	_ repo.UserRepo           = (*mockUserRepo)(nil)
	_ service.Reloader        = (*recordingReloader)(nil)
)

// ownedAdventures answers GetByID with success for ids in owned and
// domain.ErrNotFound for anything else.
func ownedAdventures(owned ...uuid.UUID) *mockAdventureRepo {
	return &mockAdventureRepo{
		getByID: func(_ context.Context, userID, id uuid.UUID) (domain.Adventure, error) {
			for _, o := range owned {
				if o == id {
					return domain.Adventure{ID: id, UserID: userID}, nil
				}
			}
			return domain.Adventure{}, domain.ErrNotFound
		},
	}
}

// knownCategories behaves like ownedAdventures for categories.
func knownCategories(known ...uuid.UUID) *mockCategoryRepo {
	return &mockCategoryRepo{
		getByID: func(_ context.Context, userID, id uuid.UUID) (domain.Category, error) {
			for _, k := range known {
				if k == id {
					return domain.Category{ID: id, UserID: userID}, nil
				}
			}
			return domain.Category{}, domain.ErrNotFound
		},
	}
}

func ptr[T any](v T) *T { return &v }

// fieldErrors extracts the per-field messages from a validation error.
func fieldErrors(err error) domain.FieldErrors {
	var fe domain.FieldErrors
	errors.As(err, &fe)
	return fe
}
