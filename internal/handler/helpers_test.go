package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-journal/backend/internal/domain"
	"github.com/pkordes/travel-journal/backend/internal/handler"
	"github.com/pkordes/travel-journal/backend/internal/middleware"
)

// testUser is the caller every authenticated test request runs as.
var testUser = domain.User{ID: uuid.MustParse("7b0c6f7e-4a55-4d2c-9a3e-1f1d1c0e5a01"), Username: "alice"}

// asUser stands in for the trusted-header middleware: every request runs as testUser.
func asUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(middleware.WithUser(r.Context(), testUser)))
	})
}

// newRouter wires a Server the way main.go does, with an identity stub.
func newRouter(deps handler.Deps) http.Handler {
	if deps.Authenticate == nil {
		deps.Authenticate = asUser
	}
	deps.Log = discardLogger()
	return handler.NewServer(deps).Routes()
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorResponse {
	t.Helper()
	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// mockCollection is a test double for handler.Collection.
// Set only the method fields your test needs.
type mockCollection[T any] struct {
	create func(ctx context.Context, userID uuid.UUID, record T) (T, error)
	list   func(ctx context.Context, userID uuid.UUID) ([]T, error)
	update func(ctx context.Context, userID uuid.UUID, record T) (T, error)
	delete func(ctx context.Context, userID, id uuid.UUID) error
}

func (m *mockCollection[T]) Create(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	return m.create(ctx, userID, record)
}
func (m *mockCollection[T]) List(ctx context.Context, userID uuid.UUID) ([]T, error) {
	return m.list(ctx, userID)
}
func (m *mockCollection[T]) Update(ctx context.Context, userID uuid.UUID, record T) (T, error) {
	return m.update(ctx, userID, record)
}
func (m *mockCollection[T]) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return m.delete(ctx, userID, id)
}

// compile-time check: mockCollection must satisfy handler.Collection.
var _ handler.Collection[domain.Visit] = (*mockCollection[domain.Visit])(nil)

// journalFunc adapts a function to handler.Journal.
type journalFunc func(ctx context.Context, userID uuid.UUID) domain.ReadModel

func (f journalFunc) Load(ctx context.Context, userID uuid.UUID) domain.ReadModel {
	return f(ctx, userID)
}

func ptr[T any](v T) *T { return &v }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
