package handlers

import (
	"time"

	"github.com/eniolaomotee/Bookly/internal/models"
	"github.com/eniolaomotee/Bookly/internal/service/book"
)

// JSON shapes shared by handlers. Field names are part of the public
// API and must stay stable.

type userView struct {
	UID        string    `json:"uid"`
	Username   string    `json:"username"`
	Email      string    `json:"email"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Role       string    `json:"role"`
	IsVerified bool      `json:"is_verified"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newUserView(u models.User) userView {
	return userView{
		UID:        u.ID.String(),
		Username:   u.Username,
		Email:      u.Email,
		FirstName:  u.FirstName,
		LastName:   u.LastName,
		Role:       u.Role,
		IsVerified: u.IsVerified,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

type bookView struct {
	UID           string    `json:"uid"`
	Title         string    `json:"title"`
	Author        string    `json:"author"`
	Publisher     string    `json:"publisher"`
	PublishedDate string    `json:"published_date"`
	PageCount     int       `json:"page_count"`
	Language      string    `json:"language"`
	UserUID       string    `json:"user_uid"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func newBookView(b models.Book) bookView {
	return bookView{
		UID:           b.ID.String(),
		Title:         b.Title,
		Author:        b.Author,
		Publisher:     b.Publisher,
		PublishedDate: b.PublishedDate.Format("2006-01-02"),
		PageCount:     b.PageCount,
		Language:      b.Language,
		UserUID:       b.UserID.String(),
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
	}
}

func newBookViews(books []models.Book) []bookView {
	views := make([]bookView, 0, len(books))
	for _, b := range books {
		views = append(views, newBookView(b))
	}
	return views
}

type bookDetailView struct {
	bookView
	Reviews []reviewView `json:"reviews"`
	Tags    []tagView    `json:"tags"`
}

func newBookDetailView(d book.BookDetail) bookDetailView {
	return bookDetailView{
		bookView: newBookView(d.Book),
		Reviews:  newReviewViews(d.Reviews),
		Tags:     newTagViews(d.Tags),
	}
}

type reviewView struct {
	UID        string    `json:"uid"`
	Rating     int       `json:"rating"`
	ReviewText string    `json:"review_text"`
	UserUID    string    `json:"user_uid"`
	BookUID    string    `json:"book_uid"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newReviewView(r models.Review) reviewView {
	return reviewView{
		UID:        r.ID.String(),
		Rating:     r.Rating,
		ReviewText: r.ReviewText,
		UserUID:    r.UserID.String(),
		BookUID:    r.BookID.String(),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

func newReviewViews(reviews []models.Review) []reviewView {
	views := make([]reviewView, 0, len(reviews))
	for _, r := range reviews {
		views = append(views, newReviewView(r))
	}
	return views
}

type tagView struct {
	UID       string    `json:"uid"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

func newTagView(t models.Tag) tagView {
	return tagView{UID: t.ID.String(), Name: t.Name, CreatedAt: t.CreatedAt}
}

func newTagViews(tags []models.Tag) []tagView {
	views := make([]tagView, 0, len(tags))
	for _, t := range tags {
		views = append(views, newTagView(t))
	}
	return views
}
