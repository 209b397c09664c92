package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/handlers/authctx"
	"github.com/eniolaomotee/Bookly/internal/handlers/render"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type reviewService interface {
	AddReviewToBook(ctx context.Context, userID uuid.UUID, bookID uuid.UUID, rating int, text string) (models.Review, error)
	GetReview(ctx context.Context, id uuid.UUID) (models.Review, error)
	ListReviews(ctx context.Context) ([]models.Review, error)
	UpdateReview(ctx context.Context, id uuid.UUID, patch repository.ReviewPatch) (models.Review, error)
	DeleteReview(ctx context.Context, id uuid.UUID) error
}

type ReviewHandler struct {
	reviews reviewService
}

func NewReview(reviews reviewService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews}
}

func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	type CreateRequest struct {
		Rating     int    `json:"rating" validate:"required,min=1,max=5"`
		ReviewText string `json:"review_text" validate:"required"`
	}

	user, ok := authctx.UserFromContext(r.Context())
	if !ok {
		render.Error(w, apperrors.ErrAccessTokenRequired)
		return
	}

	bookID, err := pathUUID(r, "book_uid")
	if err != nil {
		render.Error(w, apperrors.ErrBookNotFound)
		return
	}

	data, err := render.BindAndValidate[CreateRequest](w, r)
	if err != nil {
		return
	}

	review, err := h.reviews.AddReviewToBook(r.Context(), user.ID, bookID, data.Rating, data.ReviewText)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSONWithStatus(w, newReviewView(review), http.StatusCreated)
}

func (h *ReviewHandler) List(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListReviews(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newReviewViews(reviews))
}

func (h *ReviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "review_uid")
	if err != nil {
		render.Error(w, apperrors.ErrReviewNotFound)
		return
	}

	review, err := h.reviews.GetReview(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newReviewView(review))
}

func (h *ReviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	type UpdateRequest struct {
		Rating     *int    `json:"rating" validate:"omitempty,min=1,max=5"`
		ReviewText *string `json:"review_text"`
	}

	id, err := pathUUID(r, "review_uid")
	if err != nil {
		render.Error(w, apperrors.ErrReviewNotFound)
		return
	}

	data, err := render.BindAndValidate[UpdateRequest](w, r)
	if err != nil {
		return
	}

	review, err := h.reviews.UpdateReview(r.Context(), id, repository.ReviewPatch{
		Rating:     data.Rating,
		ReviewText: data.ReviewText,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newReviewView(review))
}

func (h *ReviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "review_uid")
	if err != nil {
		render.Error(w, apperrors.ErrReviewNotFound)
		return
	}

	if err := h.reviews.DeleteReview(r.Context(), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
