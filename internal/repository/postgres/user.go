package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type UserRepo struct {
	DB DBTX
}

const createUser = `-- name: CreateUser
INSERT INTO users (id, username, email, first_name, last_name, password_hash)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at
`

func (r *UserRepo) CreateUser(ctx context.Context, arg repository.CreateUserParams) (models.User, error) {
	rows, _ := r.DB.Query(ctx, createUser, uuid.New(), arg.Username, arg.Email, arg.FirstName, arg.LastName, arg.PasswordHash)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return user, apperrors.ErrUserAlreadyExists
		}

		return user, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

const getUserByID = `-- name: GetUserByID
SELECT id, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at
FROM users
WHERE id = $1
`

func (r *UserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByID, id)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const getUserByEmail = `-- name: GetUserByEmail
SELECT id, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at
FROM users
WHERE email = $1
`

func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	rows, _ := r.DB.Query(ctx, getUserByEmail, email)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

const updateUser = `-- name: UpdateUser
UPDATE users
SET role          = COALESCE($2, role),
    is_verified   = COALESCE($3, is_verified),
    password_hash = COALESCE($4, password_hash),
    updated_at    = now()
WHERE id = $1
RETURNING id, username, email, first_name, last_name, role, is_verified, password_hash, created_at, updated_at
`

func (r *UserRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch repository.UserPatch) (models.User, error) {
	rows, _ := r.DB.Query(ctx, updateUser, id, patch.Role, patch.IsVerified, patch.PasswordHash)
	user, err := pgx.CollectOneRow(rows, rowToUser)

	switch {
	case err == nil:
		return user, nil
	case errors.Is(err, pgx.ErrNoRows):
		return user, apperrors.ErrUserNotFound
	default:
		return user, fmt.Errorf("db error: %w", err)
	}
}

func rowToUser(row pgx.CollectableRow) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FirstName, &u.LastName, &u.Role, &u.IsVerified, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	return u, err
}
