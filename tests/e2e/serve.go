package e2e

import (
	"context"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/eniolaomotee/Bookly/internal/handlers"
	"github.com/eniolaomotee/Bookly/internal/logger"
	"github.com/eniolaomotee/Bookly/internal/mail"
	"github.com/eniolaomotee/Bookly/internal/repository/postgres"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
	"github.com/eniolaomotee/Bookly/internal/service/book"
	"github.com/eniolaomotee/Bookly/internal/service/review"
	"github.com/eniolaomotee/Bookly/internal/service/tag"
	"github.com/eniolaomotee/Bookly/internal/testutil"
)

type Services struct {
	Auth    *auth.AuthService
	Books   *book.BookService
	Reviews *review.ReviewService
	Tags    *tag.TagService
}

// In-memory stand-in for the Redis blocklist
type memBlocklist struct {
	mu      sync.Mutex
	revoked map[string]struct{}
}

func newMemBlocklist() *memBlocklist {
	return &memBlocklist{revoked: map[string]struct{}{}}
}

func (b *memBlocklist) Revoke(_ context.Context, jti string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.revoked[jti] = struct{}{}
	return nil
}

func (b *memBlocklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.revoked[jti]
	return ok, nil
}

// Create db transaction and run server with that connection (one connection cause one transaction)
// The created transaction passed to inner function: so, you can safely use testutil.WithTx with it
func ServeWithTx(dbpool *pgxpool.Pool, t *testing.T, fn func(tx pgx.Tx, srvURL string, s Services)) {
	testutil.WithTx(dbpool, t, func(tx pgx.Tx) {
		noop := logger.NewNoOpLogger()

		storage := postgres.NewStorage(tx)

		authService, err := auth.NewService(
			auth.Config{SecretKey: "test-secret", Domain: "localhost:8000"},
			storage.User(),
			newMemBlocklist(),
			mail.NewLogMailer(noop),
			noop,
		)
		require.NoError(t, err, "auth service starting error")

		bookService := book.NewService(storage)
		reviewService := review.NewService(storage)
		tagService := tag.NewService(storage)

		router := handlers.NewRouter(
			authService,
			bookService,
			reviewService,
			tagService,
			storage.User(),
			noop,
		)

		// Run http server with the router in transaction
		srv := httptest.NewServer(router)
		defer srv.Close()

		fn(tx, srv.URL, Services{
			Auth:    authService,
			Books:   bookService,
			Reviews: reviewService,
			Tags:    tagService,
		})
	})
}
