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

type BookRepo struct {
	DB DBTX
}

const bookColumns = `id, title, author, publisher, published_date, page_count, language, user_id, created_at, updated_at`

const createBook = `-- name: CreateBook
INSERT INTO books (id, title, author, publisher, published_date, page_count, language, user_id)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING ` + bookColumns

func (r *BookRepo) CreateBook(ctx context.Context, arg repository.CreateBookParams) (models.Book, error) {
	rows, _ := r.DB.Query(ctx, createBook,
		uuid.New(), arg.Title, arg.Author, arg.Publisher, arg.PublishedDate, arg.PageCount, arg.Language, arg.UserID)
	book, err := pgx.CollectOneRow(rows, rowToBook)
	if err != nil {
		return book, fmt.Errorf("db error: %w", err)
	}

	return book, nil
}

const getBook = `-- name: GetBook
SELECT ` + bookColumns + `
FROM books
WHERE id = $1
`

func (r *BookRepo) GetBook(ctx context.Context, id uuid.UUID) (models.Book, error) {
	rows, _ := r.DB.Query(ctx, getBook, id)
	book, err := pgx.CollectOneRow(rows, rowToBook)

	switch {
	case err == nil:
		return book, nil
	case errors.Is(err, pgx.ErrNoRows):
		return book, apperrors.ErrBookNotFound
	default:
		return book, fmt.Errorf("db error: %w", err)
	}
}

const listBooks = `-- name: ListBooks
SELECT ` + bookColumns + `
FROM books
ORDER BY created_at DESC
`

func (r *BookRepo) ListBooks(ctx context.Context) ([]models.Book, error) {
	rows, _ := r.DB.Query(ctx, listBooks)
	books, err := pgx.CollectRows(rows, rowToBook)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return books, nil
}

const listUserBooks = `-- name: ListUserBooks
SELECT ` + bookColumns + `
FROM books
WHERE user_id = $1
ORDER BY created_at DESC
`

func (r *BookRepo) ListUserBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error) {
	rows, _ := r.DB.Query(ctx, listUserBooks, userID)
	books, err := pgx.CollectRows(rows, rowToBook)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return books, nil
}

const updateBook = `-- name: UpdateBook
UPDATE books
SET title      = COALESCE($2, title),
    author     = COALESCE($3, author),
    publisher  = COALESCE($4, publisher),
    page_count = COALESCE($5, page_count),
    language   = COALESCE($6, language),
    updated_at = now()
WHERE id = $1
RETURNING ` + bookColumns

func (r *BookRepo) UpdateBook(ctx context.Context, id uuid.UUID, patch repository.BookPatch) (models.Book, error) {
	rows, _ := r.DB.Query(ctx, updateBook, id, patch.Title, patch.Author, patch.Publisher, patch.PageCount, patch.Language)
	book, err := pgx.CollectOneRow(rows, rowToBook)

	switch {
	case err == nil:
		return book, nil
	case errors.Is(err, pgx.ErrNoRows):
		return book, apperrors.ErrBookNotFound
	default:
		return book, fmt.Errorf("db error: %w", err)
	}
}

const deleteBook = `-- name: DeleteBook
DELETE FROM books
WHERE id = $1
`

func (r *BookRepo) DeleteBook(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteBook, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrBookNotFound
	}

	return nil
}

func rowToBook(row pgx.CollectableRow) (models.Book, error) {
	var b models.Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Publisher, &b.PublishedDate, &b.PageCount, &b.Language, &b.UserID, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}
