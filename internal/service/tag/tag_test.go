package tag

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

// Fake tag repo that records which tag ids get associated
type fakeTagRepo struct {
	repository.TagRepo // panics on anything not overridden

	byName     map[string]models.Tag
	associated map[uuid.UUID][]uuid.UUID
}

func newFakeTagRepo(existing ...string) *fakeTagRepo {
	r := &fakeTagRepo{
		byName:     map[string]models.Tag{},
		associated: map[uuid.UUID][]uuid.UUID{},
	}
	for _, name := range existing {
		r.byName[name] = models.Tag{ID: uuid.New(), Name: name}
	}
	return r
}

func (r *fakeTagRepo) CreateTag(_ context.Context, name string) (models.Tag, error) {
	if _, ok := r.byName[name]; ok {
		return models.Tag{}, apperrors.ErrTagAlreadyExists
	}
	tag := models.Tag{ID: uuid.New(), Name: name}
	r.byName[name] = tag
	return tag, nil
}

func (r *fakeTagRepo) GetTagByName(_ context.Context, name string) (models.Tag, error) {
	tag, ok := r.byName[name]
	if !ok {
		return models.Tag{}, apperrors.ErrTagNotFound
	}
	return tag, nil
}

func (r *fakeTagRepo) AddTagsToBook(_ context.Context, bookID uuid.UUID, tagIDs []uuid.UUID) error {
	r.associated[bookID] = append(r.associated[bookID], tagIDs...)
	return nil
}

func (r *fakeTagRepo) ListBookTags(_ context.Context, bookID uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	for _, id := range r.associated[bookID] {
		for _, tag := range r.byName {
			if tag.ID == id {
				tags = append(tags, tag)
			}
		}
	}
	return tags, nil
}

type fakeBookRepo struct {
	repository.BookRepo

	known map[uuid.UUID]struct{}
}

func (r *fakeBookRepo) GetBook(_ context.Context, id uuid.UUID) (models.Book, error) {
	if _, ok := r.known[id]; !ok {
		return models.Book{}, apperrors.ErrBookNotFound
	}
	return models.Book{ID: id}, nil
}

func Test_AddTagsToBook(t *testing.T) {
	t.Parallel()

	bookID := uuid.New()
	books := &fakeBookRepo{known: map[uuid.UUID]struct{}{bookID: {}}}

	t.Run("associates every tag not only the last", func(t *testing.T) {
		tags := newFakeTagRepo("golang")
		s := &TagService{tags: tags, books: books}

		got, err := s.AddTagsToBook(t.Context(), bookID, []string{"golang", "programming", "compilers"})

		require.NoError(t, err)
		assert.Len(t, got, 3, "all resolved and created tags should be returned")
		assert.Len(t, tags.associated[bookID], 3, "every tag id should be associated with the book")
	})

	t.Run("existing tags are reused", func(t *testing.T) {
		tags := newFakeTagRepo("golang")
		s := &TagService{tags: tags, books: books}

		existing := tags.byName["golang"].ID

		_, err := s.AddTagsToBook(t.Context(), bookID, []string{"golang"})

		require.NoError(t, err)
		require.Len(t, tags.associated[bookID], 1)
		assert.Equal(t, existing, tags.associated[bookID][0], "known tag should not be recreated")
	})

	t.Run("unknown book fails", func(t *testing.T) {
		tags := newFakeTagRepo()
		s := &TagService{tags: tags, books: books}

		_, err := s.AddTagsToBook(t.Context(), uuid.New(), []string{"golang"})

		require.ErrorIs(t, err, apperrors.ErrBookNotFound)
		assert.Empty(t, tags.associated, "nothing should be associated when the book is unknown")
	})
}
