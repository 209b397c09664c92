package authctx

import (
	"context"

	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
)

type ctxKey string

const (
	claimsKey ctxKey = "claims"
	userKey   ctxKey = "user"
)

// Attach validated session claims to the context
func WithClaims(ctx context.Context, c *auth.SessionClaims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// Extract session claims from the context
func ClaimsFromContext(ctx context.Context) (*auth.SessionClaims, bool) {
	c, ok := ctx.Value(claimsKey).(*auth.SessionClaims)
	return c, ok
}

// Attach the resolved user record to the context
func WithUser(ctx context.Context, u models.User) context.Context {
	return context.WithValue(ctx, userKey, u)
}

// Extract the user from the context
func UserFromContext(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userKey).(models.User)
	return u, ok
}
