package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/pkordes/travel-journal/backend/internal/domain"
)

// Provisioner resolves a username asserted by the proxy into a stored user.
// *service.UserService implements it.
type Provisioner interface {
	Provision(ctx context.Context, username, email string) (domain.User, error)
}

type userKey struct{}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u domain.User) context.Context {
	return context.WithValue(ctx, userKey{}, u)
}

// CurrentUser returns the user placed in ctx by NewTrustedUserHandler.
func CurrentUser(ctx context.Context) (domain.User, bool) {
	u, ok := ctx.Value(userKey{}).(domain.User)
	return u, ok
}

// NewTrustedUserHandler returns a middleware that reads the username (and
// optionally the email) from headers set by an authenticating reverse proxy,
// provisions the user on first sight and stores it in the request context.
// Requests without the user header are rejected with 401.
func NewTrustedUserHandler(users Provisioner, userHeader, emailHeader string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username := strings.TrimSpace(r.Header.Get(userHeader))
			if username == "" {
				writeError(w, http.StatusUnauthorized, "unauthenticated", "missing "+userHeader+" header")
				return
			}

			u, err := users.Provision(r.Context(), username, r.Header.Get(emailHeader))
			if err != nil {
				log.ErrorContext(r.Context(), "provision user", "username", username, "error", err)
				writeError(w, http.StatusInternalServerError, "store_error", "internal server error")
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
		})
	}
}

// writeError writes the API error envelope. Kept local so middleware does not
// depend on the handler package.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": msg},
	})
}
