package middleware

import (
	"context"
	"net/http"
	"slices"
	"strings"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/handlers/authctx"
	"github.com/eniolaomotee/Bookly/internal/handlers/render"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
)

// Validates raw session tokens and answers revocation checks
type tokenService interface {
	ParseToken(token string) (*auth.SessionClaims, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// Resolves the current user for role checks
type userGetter interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// RequireAccessToken admits requests carrying a valid, unrevoked bearer
// access token and puts its claims into the request context
func RequireAccessToken(ts tokenService) func(http.Handler) http.Handler {
	return requireToken(ts, false)
}

// RequireRefreshToken is the same guard for refresh tokens
func RequireRefreshToken(ts tokenService) func(http.Handler) http.Handler {
	return requireToken(ts, true)
}

func requireToken(ts tokenService, wantRefresh bool) func(http.Handler) http.Handler {
	missingErr := apperrors.ErrAccessTokenRequired
	if wantRefresh {
		missingErr = apperrors.ErrRefreshTokenRequired
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				render.Error(w, missingErr)
				return
			}

			claims, err := ts.ParseToken(raw)
			if err != nil {
				render.Error(w, err)
				return
			}

			// A refresh token must not pass the access guard and vice versa
			if claims.Refresh != wantRefresh {
				render.Error(w, missingErr)
				return
			}

			revoked, err := ts.IsRevoked(r.Context(), claims.ID)
			if err != nil {
				// Unreachable blocklist is a server error, not a pass
				render.Error(w, err)
				return
			}
			if revoked {
				render.Error(w, apperrors.ErrRevokedToken)
				return
			}

			ctx := authctx.WithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole loads the current user by the email from the validated
// claims and admits only listed roles. Compose it after RequireAccessToken.
func RequireRole(users userGetter, roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := authctx.ClaimsFromContext(r.Context())
			if !ok {
				render.Error(w, apperrors.ErrAccessTokenRequired)
				return
			}

			user, err := users.GetUserByEmail(r.Context(), claims.User.Email)
			if err != nil {
				render.Error(w, err)
				return
			}

			if !slices.Contains(roles, user.Role) {
				render.Error(w, apperrors.ErrInsufficientPermissions)
				return
			}

			ctx := authctx.WithUser(r.Context(), user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")

	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}

	return token, true
}
