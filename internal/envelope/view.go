package envelope

import (
	"time"

	"github.com/mvaleed/quill/internal/domain"
)

// AccountView is the public shape of an account. The password digest is
// never part of it.
type AccountView struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

func NewAccountView(a *domain.Account) AccountView {
	return AccountView{ID: a.ID.String(), Email: a.Email, Name: a.Name}
}

// ArticleView is the public shape of an article.
type ArticleView struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	AuthorID    string `json:"authorId"`
	PublishedAt string `json:"publishedAt"`
}

func NewArticleView(a *domain.Article) ArticleView {
	return ArticleView{
		ID:          a.ID.String(),
		Title:       a.Title,
		Body:        a.Body,
		AuthorID:    a.AuthorID.String(),
		PublishedAt: a.PublishedAt.Format(time.RFC3339),
	}
}

// NewArticleViews never returns nil so that empty lists encode as [].
func NewArticleViews(articles []domain.Article) []ArticleView {
	out := make([]ArticleView, 0, len(articles))
	for i := range articles {
		out = append(out, NewArticleView(&articles[i]))
	}
	return out
}

// TokenView is returned by a successful login.
type TokenView struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expiresIn"`
}
