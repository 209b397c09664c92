package book

import (
	"context"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

// Book details: the record plus its reviews and tags
type BookDetail struct {
	Book    models.Book
	Reviews []models.Review
	Tags    []models.Tag
}

type BookService struct {
	books   repository.BookRepo
	reviews repository.ReviewRepo
	tags    repository.TagRepo
}

func NewService(storage repository.Storage) *BookService {
	return &BookService{
		books:   storage.Book(),
		reviews: storage.Review(),
		tags:    storage.Tag(),
	}
}

func (s *BookService) CreateBook(ctx context.Context, arg repository.CreateBookParams) (models.Book, error) {
	return s.books.CreateBook(ctx, arg)
}

func (s *BookService) GetBook(ctx context.Context, id uuid.UUID) (models.Book, error) {
	return s.books.GetBook(ctx, id)
}

// GetBookDetail loads the book with its reviews and tags
func (s *BookService) GetBookDetail(ctx context.Context, id uuid.UUID) (BookDetail, error) {
	book, err := s.books.GetBook(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}

	reviews, err := s.reviews.ListBookReviews(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}

	tags, err := s.tags.ListBookTags(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}

	return BookDetail{Book: book, Reviews: reviews, Tags: tags}, nil
}

func (s *BookService) ListBooks(ctx context.Context) ([]models.Book, error) {
	return s.books.ListBooks(ctx)
}

func (s *BookService) ListUserBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error) {
	return s.books.ListUserBooks(ctx, userID)
}

func (s *BookService) UpdateBook(ctx context.Context, id uuid.UUID, patch repository.BookPatch) (models.Book, error) {
	return s.books.UpdateBook(ctx, id, patch)
}

func (s *BookService) DeleteBook(ctx context.Context, id uuid.UUID) error {
	return s.books.DeleteBook(ctx, id)
}
