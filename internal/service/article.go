package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/event"
	"github.com/mvaleed/quill/internal/storage"
	"github.com/mvaleed/quill/internal/validation"
)

var errArticleNotFound = &domain.NotFoundError{Resource: "Article"}

// ArticleService handles article operations scoped to their author.
type ArticleService struct {
	articles  storage.ArticleRepository
	tx        storage.Transactor
	validator *validation.Validator
	publisher event.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewArticleService(
	articles storage.ArticleRepository,
	tx storage.Transactor,
	validator *validation.Validator,
	publisher event.Publisher,
	logger *slog.Logger,
) *ArticleService {
	return &ArticleService{
		articles:  articles,
		tx:        tx,
		validator: validator,
		publisher: publisher,
		logger:    logger.With("service", "article"),
		now:       utcNow,
	}
}

// ListMine returns the caller's articles in repository order.
func (s *ArticleService) ListMine(ctx context.Context, p domain.Principal) ([]domain.Article, error) {
	if p.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	articles, err := s.articles.ListByAuthor(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}

	return articles, nil
}

// Get returns one of the caller's articles.
func (s *ArticleService) Get(ctx context.Context, p domain.Principal, id string) (*domain.Article, error) {
	return s.findOwned(ctx, p, id)
}

// Create stores a new article authored by the caller.
func (s *ArticleService) Create(ctx context.Context, p domain.Principal, input domain.ArticleInput) (*domain.Article, error) {
	if p.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if errs := s.validator.Article(input); !errs.Empty() {
		return nil, domain.NewValidationError(errs)
	}

	article := domain.NewArticle(p.ID, input.Title, input.Body, s.now())
	if err := s.articles.Save(ctx, article); err != nil {
		return nil, fmt.Errorf("save article: %w", err)
	}

	s.logger.InfoContext(ctx, "article created",
		slog.String("article_id", article.ID.String()),
		slog.String("author_id", p.ID.String()),
	)
	_ = s.publisher.Publish(ctx, domain.ArticleCreatedEvent(article))

	return article, nil
}

// Update replaces the title and body of one of the caller's articles.
// Input is validated before the article is looked up.
func (s *ArticleService) Update(ctx context.Context, p domain.Principal, id string, input domain.ArticleInput) (*domain.Article, error) {
	if p.IsZero() {
		return nil, domain.ErrUnauthorized
	}
	if errs := s.validator.Article(input); !errs.Empty() {
		return nil, domain.NewValidationError(errs)
	}

	var article *domain.Article
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.findOwned(ctx, p, id)
		if err != nil {
			return err
		}

		a.Edit(input.Title, input.Body, s.now())
		if err := s.articles.Save(ctx, a); err != nil {
			return fmt.Errorf("save article: %w", err)
		}

		article = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	_ = s.publisher.Publish(ctx, domain.ArticleUpdatedEvent(article))

	return article, nil
}

// Delete removes one of the caller's articles.
func (s *ArticleService) Delete(ctx context.Context, p domain.Principal, id string) error {
	var deleted *domain.Article
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		a, err := s.findOwned(ctx, p, id)
		if err != nil {
			return err
		}

		if err := s.articles.Delete(ctx, a); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				return errArticleNotFound
			}
			return fmt.Errorf("delete article: %w", err)
		}

		deleted = a
		return nil
	})
	if err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "article deleted", slog.String("article_id", deleted.ID.String()))
	_ = s.publisher.Publish(ctx, domain.ArticleDeletedEvent(deleted))

	return nil
}

// findOwned loads an article and checks that p authored it. Malformed ids,
// unknown ids and foreign articles all yield the same not-found error.
func (s *ArticleService) findOwned(ctx context.Context, p domain.Principal, rawID string) (*domain.Article, error) {
	if p.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	id, ok := domain.ParseID(rawID)
	if !ok {
		return nil, errArticleNotFound
	}

	article, err := s.articles.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, errArticleNotFound
		}
		return nil, fmt.Errorf("get article: %w", err)
	}

	if !Owns(p, article) {
		return nil, errArticleNotFound
	}

	return article, nil
}
