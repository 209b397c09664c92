package review

import (
	"context"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type ReviewService struct {
	reviews repository.ReviewRepo
	books   repository.BookRepo
}

func NewService(storage repository.Storage) *ReviewService {
	return &ReviewService{
		reviews: storage.Review(),
		books:   storage.Book(),
	}
}

// AddReviewToBook attaches a review by the user to the book.
// Returns apperrors.ErrBookNotFound if the book does not exist.
func (s *ReviewService) AddReviewToBook(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, rating int, text string) (models.Review, error) {
	if _, err := s.books.GetBook(ctx, bookID); err != nil {
		return models.Review{}, err
	}

	return s.reviews.CreateReview(ctx, repository.CreateReviewParams{
		Rating:     rating,
		ReviewText: text,
		UserID:     userID,
		BookID:     bookID,
	})
}

func (s *ReviewService) GetReview(ctx context.Context, id uuid.UUID) (models.Review, error) {
	return s.reviews.GetReview(ctx, id)
}

func (s *ReviewService) ListReviews(ctx context.Context) ([]models.Review, error) {
	return s.reviews.ListReviews(ctx)
}

func (s *ReviewService) UpdateReview(ctx context.Context, id uuid.UUID, patch repository.ReviewPatch) (models.Review, error) {
	return s.reviews.UpdateReview(ctx, id, patch)
}

func (s *ReviewService) DeleteReview(ctx context.Context, id uuid.UUID) error {
	return s.reviews.DeleteReview(ctx, id)
}
