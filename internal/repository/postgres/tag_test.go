package postgres

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/repository"
	"github.com/eniolaomotee/Bookly/internal/testutil"
)

func Test_TagRepo(t *testing.T) {
	t.Parallel()

	pg := testutil.StartPostgresContainer(t)
	t.Cleanup(pg.Terminate)

	t.Run("create tag ok", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TagRepo{DB: tx}

			tag, err := r.CreateTag(t.Context(), "golang")

			require.NoError(t, err)
			assert.Equal(t, "golang", tag.Name)
			assert.NotEqual(t, uuid.Nil, tag.ID)
		})
	})

	t.Run("create duplicate tag fails", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TagRepo{DB: tx}

			_, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)

			_, err = r.CreateTag(t.Context(), "golang")

			assert.ErrorIs(t, err, apperrors.ErrTagAlreadyExists, "should return well known error")
		})
	})

	t.Run("get tag by id and name", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TagRepo{DB: tx}

			created, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)

			byID, err := r.GetTag(t.Context(), created.ID)
			require.NoError(t, err)
			assert.Equal(t, created, byID)

			byName, err := r.GetTagByName(t.Context(), "golang")
			require.NoError(t, err)
			assert.Equal(t, created, byName)

			_, err = r.GetTag(t.Context(), uuid.New())
			assert.ErrorIs(t, err, apperrors.ErrTagNotFound)

			_, err = r.GetTagByName(t.Context(), "ghost")
			assert.ErrorIs(t, err, apperrors.ErrTagNotFound)
		})
	})

	t.Run("update tag", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TagRepo{DB: tx}

			created, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)

			name := "go"
			got, err := r.UpdateTag(t.Context(), created.ID, repository.TagPatch{Name: &name})
			require.NoError(t, err)
			assert.Equal(t, "go", got.Name)

			_, err = r.UpdateTag(t.Context(), uuid.New(), repository.TagPatch{Name: &name})
			assert.ErrorIs(t, err, apperrors.ErrTagNotFound)
		})
	})

	t.Run("delete tag", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			r := TagRepo{DB: tx}

			created, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)

			require.NoError(t, r.DeleteTag(t.Context(), created.ID))

			err = r.DeleteTag(t.Context(), created.ID)
			assert.ErrorIs(t, err, apperrors.ErrTagNotFound, "double delete should report not found")
		})
	})

	t.Run("add tags to book", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx)
			book, err := (&BookRepo{DB: tx}).CreateBook(t.Context(), createParams(user.ID))
			require.NoError(t, err)

			r := TagRepo{DB: tx}
			golang, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)
			programming, err := r.CreateTag(t.Context(), "programming")
			require.NoError(t, err)

			// Every given tag has to be associated, not only the last one
			err = r.AddTagsToBook(t.Context(), book.ID, []uuid.UUID{golang.ID, programming.ID})
			require.NoError(t, err)

			tags, err := r.ListBookTags(t.Context(), book.ID)
			require.NoError(t, err)
			require.Len(t, tags, 2)

			names := []string{tags[0].Name, tags[1].Name}
			assert.ElementsMatch(t, []string{"golang", "programming"}, names)

			// Re-adding the same tag is a no-op
			err = r.AddTagsToBook(t.Context(), book.ID, []uuid.UUID{golang.ID})
			require.NoError(t, err)

			tags, err = r.ListBookTags(t.Context(), book.ID)
			require.NoError(t, err)
			assert.Len(t, tags, 2)
		})
	})

	t.Run("deleting book drops its tag links", func(t *testing.T) {
		testutil.WithTx(pg.Pool, t, func(tx pgx.Tx) {
			user := createTestUser(t, tx)
			bookRepo := BookRepo{DB: tx}
			book, err := bookRepo.CreateBook(t.Context(), createParams(user.ID))
			require.NoError(t, err)

			r := TagRepo{DB: tx}
			tag, err := r.CreateTag(t.Context(), "golang")
			require.NoError(t, err)
			require.NoError(t, r.AddTagsToBook(t.Context(), book.ID, []uuid.UUID{tag.ID}))

			require.NoError(t, bookRepo.DeleteBook(t.Context(), book.ID))

			tags, err := r.ListBookTags(t.Context(), book.ID)
			require.NoError(t, err)
			assert.Empty(t, tags, "join rows should cascade with the book")

			// The tag itself survives
			got, err := r.GetTag(t.Context(), tag.ID)
			require.NoError(t, err)
			assert.Equal(t, "golang", got.Name)
		})
	})
}
