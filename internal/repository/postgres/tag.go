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

type TagRepo struct {
	DB DBTX
}

const createTag = `-- name: CreateTag
INSERT INTO tags (id, name)
VALUES ($1, $2)
RETURNING id, name, created_at
`

func (r *TagRepo) CreateTag(ctx context.Context, name string) (models.Tag, error) {
	rows, _ := r.DB.Query(ctx, createTag, uuid.New(), name)
	tag, err := pgx.CollectOneRow(rows, rowToTag)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return tag, apperrors.ErrTagAlreadyExists
		}

		return tag, fmt.Errorf("db error: %w", err)
	}

	return tag, nil
}

const getTag = `-- name: GetTag
SELECT id, name, created_at
FROM tags
WHERE id = $1
`

func (r *TagRepo) GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error) {
	rows, _ := r.DB.Query(ctx, getTag, id)
	tag, err := pgx.CollectOneRow(rows, rowToTag)

	switch {
	case err == nil:
		return tag, nil
	case errors.Is(err, pgx.ErrNoRows):
		return tag, apperrors.ErrTagNotFound
	default:
		return tag, fmt.Errorf("db error: %w", err)
	}
}

const getTagByName = `-- name: GetTagByName
SELECT id, name, created_at
FROM tags
WHERE name = $1
`

func (r *TagRepo) GetTagByName(ctx context.Context, name string) (models.Tag, error) {
	rows, _ := r.DB.Query(ctx, getTagByName, name)
	tag, err := pgx.CollectOneRow(rows, rowToTag)

	switch {
	case err == nil:
		return tag, nil
	case errors.Is(err, pgx.ErrNoRows):
		return tag, apperrors.ErrTagNotFound
	default:
		return tag, fmt.Errorf("db error: %w", err)
	}
}

const listTags = `-- name: ListTags
SELECT id, name, created_at
FROM tags
ORDER BY created_at DESC
`

func (r *TagRepo) ListTags(ctx context.Context) ([]models.Tag, error) {
	rows, _ := r.DB.Query(ctx, listTags)
	tags, err := pgx.CollectRows(rows, rowToTag)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tags, nil
}

const updateTag = `-- name: UpdateTag
UPDATE tags
SET name = COALESCE($2, name)
WHERE id = $1
RETURNING id, name, created_at
`

func (r *TagRepo) UpdateTag(ctx context.Context, id uuid.UUID, patch repository.TagPatch) (models.Tag, error) {
	rows, _ := r.DB.Query(ctx, updateTag, id, patch.Name)
	tag, err := pgx.CollectOneRow(rows, rowToTag)

	switch {
	case err == nil:
		return tag, nil
	case errors.Is(err, pgx.ErrNoRows):
		return tag, apperrors.ErrTagNotFound
	default:
		return tag, fmt.Errorf("db error: %w", err)
	}
}

const deleteTag = `-- name: DeleteTag
DELETE FROM tags
WHERE id = $1
`

func (r *TagRepo) DeleteTag(ctx context.Context, id uuid.UUID) error {
	tag, err := r.DB.Exec(ctx, deleteTag, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperrors.ErrTagNotFound
	}

	return nil
}

const addTagToBook = `-- name: AddTagToBook
INSERT INTO book_tags (book_id, tag_id)
VALUES ($1, $2)
ON CONFLICT DO NOTHING
`

func (r *TagRepo) AddTagsToBook(ctx context.Context, bookID uuid.UUID, tagIDs []uuid.UUID) error {
	for _, tagID := range tagIDs {
		if _, err := r.DB.Exec(ctx, addTagToBook, bookID, tagID); err != nil {
			return fmt.Errorf("db error: %w", err)
		}
	}

	return nil
}

const listBookTags = `-- name: ListBookTags
SELECT t.id, t.name, t.created_at
FROM tags t
JOIN book_tags bt ON bt.tag_id = t.id
WHERE bt.book_id = $1
ORDER BY t.created_at DESC
`

func (r *TagRepo) ListBookTags(ctx context.Context, bookID uuid.UUID) ([]models.Tag, error) {
	rows, _ := r.DB.Query(ctx, listBookTags, bookID)
	tags, err := pgx.CollectRows(rows, rowToTag)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tags, nil
}

func rowToTag(row pgx.CollectableRow) (models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.Name, &t.CreatedAt)
	return t, err
}
