package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/eniolaomotee/Bookly/internal/db"
	"github.com/eniolaomotee/Bookly/internal/handlers"
	"github.com/eniolaomotee/Bookly/internal/logger"
	"github.com/eniolaomotee/Bookly/internal/mail"
	"github.com/eniolaomotee/Bookly/internal/repository/postgres"
	"github.com/eniolaomotee/Bookly/internal/repository/redisrepo"
	"github.com/eniolaomotee/Bookly/internal/service/auth"
	"github.com/eniolaomotee/Bookly/internal/service/book"
	"github.com/eniolaomotee/Bookly/internal/service/review"
	"github.com/eniolaomotee/Bookly/internal/service/tag"
)

type ServerApp struct {
	ListenAddr string
	Handler    http.Handler
}

func NewServerApp(ctx context.Context, c *Config) (*ServerApp, error) {
	// Initialize logger
	logger, err := logger.New(c.Environment, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("error while initializing logger: %w", err)
	}

	// Connect to the database and run migrations
	pool, err := db.ConnectAndMigrate(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("error while connecting to db. Err: %w", err)
	}

	// Connect to Redis for the token blocklist
	redisOpts, err := redis.ParseURL(c.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("error while parsing redis url. Err: %w", err)
	}
	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("error while connecting to redis. Err: %w", err)
	}

	// Initialize repositories
	storage := postgres.NewStorage(pool)
	blocklist := redisrepo.NewTokenBlocklist(redisClient, redisrepo.DefaultRetention)

	// Outgoing mail goes to the log unless an SMTP relay is configured
	var mailer mail.Mailer = mail.NewLogMailer(logger)
	if c.SMTPAddr != "" {
		mailer = mail.NewSMTPMailer(c.SMTPAddr, c.SMTPFrom)
	}

	// Initialize services
	authService, err := auth.NewService(auth.Config{
		SecretKey: c.SecretKey,
		Alg:       c.JWTAlgorithm,
		Domain:    c.Domain,
	}, storage.User(), blocklist, mailer, logger)
	if err != nil {
		return nil, fmt.Errorf("error while creating auth service. Err: %w", err)
	}
	bookService := book.NewService(storage)
	reviewService := review.NewService(storage)
	tagService := tag.NewService(storage)

	mux := handlers.NewRouter(
		authService,
		bookService,
		reviewService,
		tagService,
		storage.User(),
		logger,
	)

	return &ServerApp{
		ListenAddr: c.ListenAddr,
		Handler:    mux,
	}, nil
}

// Run starts http server and closes gracefully on context cancellation
func (s *ServerApp) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:    s.ListenAddr,
		Handler: s.Handler,
	}

	idleConnsClosed := make(chan struct{})
	srvCtx, srvCtxCancel := context.WithCancel(ctx)
	defer srvCtxCancel()

	go func() {
		<-srvCtx.Done()

		timeoutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(timeoutCtx); err == context.DeadlineExceeded {
			slog.Error("HTTP server shutdown timeout exceeded, forcing shutdown...")
		}
		slog.Info("HTTP server stopped")
		close(idleConnsClosed)
	}()

	// Listen and serve until context is cancelled; then close gracefully connections
	slog.Info("Starting server")
	err := httpServer.ListenAndServe()
	srvCtxCancel()
	<-idleConnsClosed

	return err
}
