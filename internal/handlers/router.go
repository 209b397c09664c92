package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/handlers/middleware"
	"github.com/eniolaomotee/Bookly/internal/logger"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
)

// sessionAuthService is the full auth surface the router needs:
// the handler operations plus token validation for the guards
type sessionAuthService interface {
	authService

	ParseToken(token string) (*auth.SessionClaims, error)
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

type userGetter interface {
	GetUserByEmail(ctx context.Context, email string) (models.User, error)
}

// chain applies middlewares in the given order: m1(m2(...(h)))
func chain(h http.Handler, mds ...func(next http.Handler) http.Handler) http.Handler {
	for i := len(mds) - 1; i >= 0; i-- {
		h = mds[i](h)
	}
	return h
}

func NewRouter(
	authSvc sessionAuthService,
	bookSvc bookService,
	reviewSvc reviewService,
	tagSvc tagService,
	users userGetter,
	l logger.Logger,
) http.Handler {
	a := NewAuth(authSvc, bookSvc)
	b := NewBook(bookSvc)
	rv := NewReview(reviewSvc)
	tg := NewTag(tagSvc)

	requireAccess := middleware.RequireAccessToken(authSvc)
	requireRefresh := middleware.RequireRefreshToken(authSvc)
	requireRoles := middleware.RequireRole(users, models.RoleUser, models.RoleAdmin)

	// Access token only
	withAccess := func(h http.HandlerFunc) http.Handler {
		return requireAccess(h)
	}
	// Access token plus role check; puts the resolved user into the context
	withRoles := func(h http.HandlerFunc) http.Handler {
		return chain(h, requireAccess, requireRoles)
	}

	api := http.NewServeMux()

	api.HandleFunc("POST /auth/signup", a.Signup)
	api.HandleFunc("GET /auth/verify/{token}", a.Verify)
	api.HandleFunc("POST /auth/login", a.Login)
	api.Handle("GET /auth/refresh-token", requireRefresh(http.HandlerFunc(a.Refresh)))
	api.Handle("GET /auth/me", withRoles(a.Me))
	api.Handle("GET /auth/logout", withAccess(a.Logout))
	api.HandleFunc("POST /auth/password-reset-request", a.PasswordResetRequest)
	api.HandleFunc("GET /auth/password-reset-confirm/{token}", a.PasswordResetConfirm)
	api.HandleFunc("POST /auth/send-mail", a.SendMail)

	api.Handle("GET /books", withRoles(b.List))
	api.Handle("GET /books/user/{user_uid}", withRoles(b.ListUser))
	api.Handle("POST /books", withRoles(b.Create))
	api.Handle("GET /books/{book_uid}", withRoles(b.Get))
	api.Handle("PATCH /books/{book_uid}", withRoles(b.Update))
	api.Handle("DELETE /books/{book_uid}", withRoles(b.Delete))

	api.Handle("POST /reviews/book/{book_uid}", withRoles(rv.Create))
	api.Handle("GET /reviews", withAccess(rv.List))
	api.Handle("GET /reviews/{review_uid}", withAccess(rv.Get))
	api.Handle("PATCH /reviews/{review_uid}", withAccess(rv.Update))
	api.Handle("DELETE /reviews/{review_uid}", withAccess(rv.Delete))

	api.Handle("GET /tags", withAccess(tg.List))
	api.Handle("POST /tags", withAccess(tg.Create))
	api.Handle("POST /books/{book_uid}/tags", withRoles(tg.AddToBook))
	api.Handle("PUT /tags/{tag_uid}", withAccess(tg.Update))
	api.Handle("DELETE /tags/{tag_uid}", withAccess(tg.Delete))

	root := http.NewServeMux()
	root.Handle("/api/v1/", http.StripPrefix("/api/v1", api))

	return chain(root,
		middleware.LoggerMiddleware(l),
	)
}

// pathUUID parses the named path segment as a uuid
func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	return uuid.Parse(r.PathValue(name))
}
