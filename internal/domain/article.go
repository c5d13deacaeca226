package domain

import (
	"time"

	"github.com/google/uuid"
)

// Article is a piece of content owned by the account that created it.
// AuthorID and PublishedAt are fixed at creation.
type Article struct {
	ID          uuid.UUID
	Title       string
	Body        string
	AuthorID    uuid.UUID
	PublishedAt time.Time
	UpdatedAt   time.Time
}

func NewArticle(authorID uuid.UUID, title, body string, now time.Time) *Article {
	return &Article{
		ID:          uuid.New(),
		Title:       title,
		Body:        body,
		AuthorID:    authorID,
		PublishedAt: now,
		UpdatedAt:   now,
	}
}

// Edit replaces the mutable fields of the article.
func (a *Article) Edit(title, body string, now time.Time) {
	a.Title = title
	a.Body = body
	a.UpdatedAt = now
}
