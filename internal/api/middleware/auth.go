package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/blazern/recipe-calculator-server-sub000/internal/api/response"
	"github.com/blazern/recipe-calculator-server-sub000/internal/domain"
)

type contextKey string

const userContextKey contextKey = "auth_user"

// Authenticator verifies a bearer client token and returns its owner.
type Authenticator interface {
	Authenticate(ctx context.Context, clientToken string) (*domain.AppUser, error)
}

// RequireClientToken extracts the bearer client token, authenticates it,
// and stores the resolved user on the request context.
func RequireClientToken(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				response.Unauthorized(w, "missing bearer client token")
				return
			}

			user, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				response.Unauthorized(w, "invalid client token")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext returns the user RequireClientToken resolved for this
// request.
func UserFromContext(ctx context.Context) (*domain.AppUser, bool) {
	user, ok := ctx.Value(userContextKey).(*domain.AppUser)
	return user, ok
}
