package tag

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type TagService struct {
	tags  repository.TagRepo
	books repository.BookRepo
}

func NewService(storage repository.Storage) *TagService {
	return &TagService{
		tags:  storage.Tag(),
		books: storage.Book(),
	}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	return s.tags.ListTags(ctx)
}

// AddTag creates a tag; fails with apperrors.ErrTagAlreadyExists on a duplicate name
func (s *TagService) AddTag(ctx context.Context, name string) (models.Tag, error) {
	return s.tags.CreateTag(ctx, name)
}

// AddTagsToBook resolves every named tag, creating the missing ones, and
// associates all of them with the book. Returns the book's full tag list.
func (s *TagService) AddTagsToBook(ctx context.Context, bookID uuid.UUID, names []string) ([]models.Tag, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return nil, err
	}

	tagIDs := make([]uuid.UUID, 0, len(names))
	for _, name := range names {
		tag, err := s.tags.GetTagByName(ctx, name)
		if errors.Is(err, apperrors.ErrTagNotFound) {
			tag, err = s.tags.CreateTag(ctx, name)
		}
		if err != nil {
			return nil, err
		}

		tagIDs = append(tagIDs, tag.ID)
	}

	if err := s.tags.AddTagsToBook(ctx, bookID, tagIDs); err != nil {
		return nil, err
	}

	return s.tags.ListBookTags(ctx, bookID)
}

func (s *TagService) UpdateTag(ctx context.Context, id uuid.UUID, patch repository.TagPatch) (models.Tag, error) {
	return s.tags.UpdateTag(ctx, id, patch)
}

func (s *TagService) DeleteTag(ctx context.Context, id uuid.UUID) error {
	return s.tags.DeleteTag(ctx, id)
}
