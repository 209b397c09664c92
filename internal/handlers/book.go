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
	"github.com/eniolaomotee/Bookly/internal/service/book"
)

type bookService interface {
	CreateBook(ctx context.Context, arg repository.CreateBookParams) (models.Book, error)
	GetBookDetail(ctx context.Context, id uuid.UUID) (book.BookDetail, error)
	ListBooks(ctx context.Context) ([]models.Book, error)
	ListUserBooks(ctx context.Context, userID uuid.UUID) ([]models.Book, error)
	UpdateBook(ctx context.Context, id uuid.UUID, patch repository.BookPatch) (models.Book, error)
	DeleteBook(ctx context.Context, id uuid.UUID) error
}

type BookHandler struct {
	books bookService
}

func NewBook(books bookService) *BookHandler {
	return &BookHandler{books: books}
}

func (h *BookHandler) List(w http.ResponseWriter, r *http.Request) {
	books, err := h.books.ListBooks(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newBookViews(books))
}

func (h *BookHandler) ListUser(w http.ResponseWriter, r *http.Request) {
	userID, err := pathUUID(r, "user_uid")
	if err != nil {
		render.Error(w, apperrors.ErrUserNotFound)
		return
	}

	books, err := h.books.ListUserBooks(r.Context(), userID)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newBookViews(books))
}

func (h *BookHandler) Create(w http.ResponseWriter, r *http.Request) {
	type CreateRequest struct {
		Title         string `json:"title" validate:"required"`
		Author        string `json:"author" validate:"required"`
		Publisher     string `json:"publisher" validate:"required"`
		PublishedDate string `json:"published_date" validate:"required,datetime=2006-01-02"`
		PageCount     int    `json:"page_count" validate:"required,min=1"`
		Language      string `json:"language" validate:"required"`
	}

	user, ok := authctx.UserFromContext(r.Context())
	if !ok {
		render.Error(w, apperrors.ErrAccessTokenRequired)
		return
	}

	data, err := render.BindAndValidate[CreateRequest](w, r)
	if err != nil {
		return
	}

	created, err := h.books.CreateBook(r.Context(), repository.CreateBookParams{
		Title:         data.Title,
		Author:        data.Author,
		Publisher:     data.Publisher,
		PublishedDate: data.PublishedDate,
		PageCount:     data.PageCount,
		Language:      data.Language,
		UserID:        user.ID,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSONWithStatus(w, newBookView(created), http.StatusCreated)
}

func (h *BookHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "book_uid")
	if err != nil {
		render.Error(w, apperrors.ErrBookNotFound)
		return
	}

	detail, err := h.books.GetBookDetail(r.Context(), id)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newBookDetailView(detail))
}

func (h *BookHandler) Update(w http.ResponseWriter, r *http.Request) {
	type UpdateRequest struct {
		Title     *string `json:"title"`
		Author    *string `json:"author"`
		Publisher *string `json:"publisher"`
		PageCount *int    `json:"page_count" validate:"omitempty,min=1"`
		Language  *string `json:"language"`
	}

	id, err := pathUUID(r, "book_uid")
	if err != nil {
		render.Error(w, apperrors.ErrBookNotFound)
		return
	}

	data, err := render.BindAndValidate[UpdateRequest](w, r)
	if err != nil {
		return
	}

	updated, err := h.books.UpdateBook(r.Context(), id, repository.BookPatch{
		Title:     data.Title,
		Author:    data.Author,
		Publisher: data.Publisher,
		PageCount: data.PageCount,
		Language:  data.Language,
	})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newBookView(updated))
}

func (h *BookHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "book_uid")
	if err != nil {
		render.Error(w, apperrors.ErrBookNotFound)
		return
	}

	if err := h.books.DeleteBook(r.Context(), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
