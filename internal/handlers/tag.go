package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"

	"github.com/eniolaomotee/Bookly/internal/apperrors"
	"github.com/eniolaomotee/Bookly/internal/handlers/render"
	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/repository"
)

type tagService interface {
	ListTags(ctx context.Context) ([]models.Tag, error)
	AddTag(ctx context.Context, name string) (models.Tag, error)
	AddTagsToBook(ctx context.Context, bookID uuid.UUID, names []string) ([]models.Tag, error)
	UpdateTag(ctx context.Context, id uuid.UUID, patch repository.TagPatch) (models.Tag, error)
	DeleteTag(ctx context.Context, id uuid.UUID) error
}

type TagHandler struct {
	tags tagService
}

func NewTag(tags tagService) *TagHandler {
	return &TagHandler{tags: tags}
}

func (h *TagHandler) List(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tags.ListTags(r.Context())
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newTagViews(tags))
}

func (h *TagHandler) Create(w http.ResponseWriter, r *http.Request) {
	type CreateRequest struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	data, err := render.BindAndValidate[CreateRequest](w, r)
	if err != nil {
		return
	}

	tag, err := h.tags.AddTag(r.Context(), data.Name)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSONWithStatus(w, newTagView(tag), http.StatusCreated)
}

func (h *TagHandler) AddToBook(w http.ResponseWriter, r *http.Request) {
	type AddRequest struct {
		Tags []struct {
			Name string `json:"name" validate:"required,max=50"`
		} `json:"tags" validate:"required,min=1,dive"`
	}

	bookID, err := pathUUID(r, "book_uid")
	if err != nil {
		render.Error(w, apperrors.ErrBookNotFound)
		return
	}

	data, err := render.BindAndValidate[AddRequest](w, r)
	if err != nil {
		return
	}

	names := make([]string, 0, len(data.Tags))
	for _, t := range data.Tags {
		names = append(names, t.Name)
	}

	tags, err := h.tags.AddTagsToBook(r.Context(), bookID, names)
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newTagViews(tags))
}

func (h *TagHandler) Update(w http.ResponseWriter, r *http.Request) {
	type UpdateRequest struct {
		Name string `json:"name" validate:"required,max=50"`
	}

	id, err := pathUUID(r, "tag_uid")
	if err != nil {
		render.Error(w, apperrors.ErrTagNotFound)
		return
	}

	data, err := render.BindAndValidate[UpdateRequest](w, r)
	if err != nil {
		return
	}

	tag, err := h.tags.UpdateTag(r.Context(), id, repository.TagPatch{Name: &data.Name})
	if err != nil {
		render.Error(w, err)
		return
	}

	render.JSON(w, newTagView(tag))
}

func (h *TagHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "tag_uid")
	if err != nil {
		render.Error(w, apperrors.ErrTagNotFound)
		return
	}

	if err := h.tags.DeleteTag(r.Context(), id); err != nil {
		render.Error(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
