package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type ReviewRepo struct {
	DB DBTX
}

const reviewColumns = `id, rating, review_text, user_id, book_id, created_at, updated_at`

const createReview = `-- name: CreateReview
INSERT INTO reviews (id, rating, review_text, user_id, book_id)
VALUES ($1, $2, $3, $4, $5)
RETURNING ` + reviewColumns

func (r *ReviewRepo) CreateReview(ctx context.Context, arg repository.CreateReviewParams) (models.Review, error) {
	rows, _ := r.DB.Query(ctx, createReview, uuid.New(), arg.Rating, arg.ReviewText, arg.UserID, arg.BookID)
	review, err := pgx.CollectOneRow(rows, rowToReview)
	if err != nil {
		return review, fmt.Errorf("db error: %w", err)
	}

	return review, nil
}

const getReview = `-- name: GetReview
SELECT ` + reviewColumns + `
FROM reviews
WHERE id = $1
`

func (r *ReviewRepo) GetReview(ctx context.Context, id uuid.UUID) (models.Review, error) {
	rows, _ := r.DB.Query(ctx, getReview, id)
	review, err := pgx.CollectOneRow(rows, rowToReview)

	switch {
	case err == nil:
		return review, nil
	case errors.Is(err, pgx.ErrNoRows):
		return review, apperrors.ErrReviewNotFound
	default:
		return review, fmt.Errorf("db error: %w", err)
	}
}

const listReviews = `-- name: ListReviews
SELECT ` + reviewColumns + `
FROM reviews
ORDER BY created_at DESC
`

func (r *ReviewRepo) ListReviews(ctx context.Context) ([]models.Review, error) {
	rows, _ := r.DB.Query(ctx, listReviews)
	reviews, err := pgx.CollectRows(rows, rowToReview)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reviews, nil
}

const listBookReviews = `-- name: ListBookReviews
SELECT ` + reviewColumns + `
FROM reviews
WHERE book_id = $1
ORDER BY created_at DESC
`

func (r *ReviewRepo) ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]models.Review, error) {
	rows, _ := r.DB.Query(ctx, listBookReviews, bookID)
	reviews, err := pgx.CollectRows(rows, rowToReview)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return reviews, nil
}

const updateReview = `-- name: UpdateReview
UPDATE reviews
SET rating      = COALESCE($2, rating),
    review_text = COALESCE($3, review_text),
    updated_at  = now()
WHERE id = $1
RETURNING ` + reviewColumns

func (r *ReviewRepo) UpdateReview(ctx context.Context, id uuid.UUID, patch repository.ReviewPatch) (models.Review, error) {
	rows, _ := r.DB.Query(ctx, updateReview, id, patch.Rating, patch.ReviewText)
	review, err := pgx.CollectOneRow(rows, rowToReview)

	switch {
	case err == nil:
		return review, nil
	case errors.Is(err, pgx.ErrNoRows):
		return review, apperrors.ErrReviewNotFound
	default:
		return review, fmt.Errorf("db error: %w", err)
	}
}

const deleteReview = `-- name: DeleteReview
DELETE FROM reviews
WHERE id = $1
`

func (r *ReviewRepo) DeleteReview(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteReview, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrReviewNotFound
	}

	return nil
}

func rowToReview(row pgx.CollectableRow) (models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.Rating, &rv.ReviewText, &rv.UserID, &rv.BookID, &rv.CreatedAt, &rv.UpdatedAt)
	return rv, err
}
