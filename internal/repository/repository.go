package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/models"
)

// Storage aggregates every repository and allows to run them in one transaction
type Storage interface {
	User() UserRepo
	Book() BookRepo
	Review() ReviewRepo
	Tag() TagRepo

	InTx(ctx context.Context, fn func(Storage) error) error
}

type CreateUserParams struct {
	Username     string
	Email        string
	FirstName    string
	LastName     string
	PasswordHash string
}

// UserPatch lists the user fields the service layer is allowed to mutate.
// Nil field means "leave unchanged".
type UserPatch struct {
	Role         *string
	IsVerified   *bool
	PasswordHash *string
}

// User repository interface
type UserRepo interface {
	// Create user with the default role and unverified state
	// If user with the email exists already has to return apperrors.ErrUserAlreadyExists
	CreateUser(ctx context.Context, arg CreateUserParams) (models.User, error)

	// Get user by id or email
	// If user not found must return apperrors.ErrUserNotFound
	GetUserByID(ctx context.Context, id uuid.UUID) (models.User, error)
	GetUserByEmail(ctx context.Context, email string) (models.User, error)

	// Apply patch and return the updated user
	// If user not found must return apperrors.ErrUserNotFound
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (models.User, error)
}

type CreateBookParams struct {
	Title         string
	Author        string
	Publisher     string
	PublishedDate string // as sent by the client, "2006-01-02"
	PageCount     int
	Language      string
	UserID        uuid.UUID
}

type BookPatch struct {
	Title     *string
	Author    *string
	Publisher *string
	PageCount *int
	Language  *string
}

// Book repository interface
// Not-found conditions map to apperrors.ErrBookNotFound
type BookRepo interface {
	CreateBook(ctx context.Context, arg CreateBookParams) (models.Book, error)
	GetBook(ctx context.Context, id uuid.UUID) (models.Book, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListUserBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch BookPatch) (models.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type CreateReviewParams struct {
	Rating     int
	ReviewText string
	UserID     uuid.UUID
	BookID     uuid.UUID
}

type ReviewPatch struct {
	Rating     *int
	ReviewText *string
}

// Review repository interface
// Not-found conditions map to apperrors.ErrReviewNotFound
type ReviewRepo interface {
	CreateReview(ctx context.Context, arg CreateReviewParams) (models.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	ListBookReviews(ctx context.Context, bookID uuid.UUID) ([]models.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, patch ReviewPatch) (models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type TagPatch struct {
	Name *string
}

// Tag repository interface
type TagRepo interface {
	// If tag with the name exists already has to return apperrors.ErrTagAlreadyExists
	CreateTag(ctx context.Context, name string) (models.Tag, error)

	GetTag(ctx context.Context, id uuid.UUID) (models.Tag, error)
	GetTagByName(ctx context.Context, name string) (models.Tag, error)
	ListTags(ctx context.Context) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id uuid.UUID, patch TagPatch) (models.Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error

	// Associate tags with a book; existing associations are kept as is
	AddTagsToBook(ctx context.Context, bookID uuid.UUID, tagIDs []uuid.UUID) error
	ListBookTags(ctx context.Context, bookID uuid.UUID) ([]models.Tag, error)
}
