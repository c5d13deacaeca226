package postgres

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/quill/internal/domain"
)

var articleColumns = []string{"id", "title", "body", "author_id", "published_at", "updated_at"}

// ArticleRepository implements storage.ArticleRepository using PostgreSQL.
type ArticleRepository struct {
	pool *pgxpool.Pool
}

// NewArticleRepository creates a new article repository.
func NewArticleRepository(pool *pgxpool.Pool) *ArticleRepository {
	return &ArticleRepository{pool: pool}
}

// GetByID retrieves an article by its ID.
func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, mapError(err, "build article query")
	}

	return scanArticle(getDB(ctx, r.pool).QueryRow(ctx, query, args...))
}

// ListByAuthor returns the author's articles, newest first.
func (r *ArticleRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	query, args, err := psql.Select(articleColumns...).
		From("articles").
		Where(sq.Eq{"author_id": authorID}).
		OrderBy("published_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, mapError(err, "build article list query")
	}

	rows, err := getDB(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, mapError(err, "list articles")
	}
	defer rows.Close()

	articles := make([]domain.Article, 0)
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(err, "list articles")
	}

	return articles, nil
}

// Save inserts the article or updates its mutable fields.
func (r *ArticleRepository) Save(ctx context.Context, a *domain.Article) error {
	query, args, err := psql.Insert("articles").
		Columns(articleColumns...).
		Values(a.ID, a.Title, a.Body, a.AuthorID, a.PublishedAt, a.UpdatedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			updated_at = EXCLUDED.updated_at`).
		ToSql()
	if err != nil {
		return mapError(err, "build article insert")
	}

	_, err = getDB(ctx, r.pool).Exec(ctx, query, args...)
	return mapError(err, "save article")
}

// Delete removes the article.
func (r *ArticleRepository) Delete(ctx context.Context, a *domain.Article) error {
	query, args, err := psql.Delete("articles").
		Where(sq.Eq{"id": a.ID}).
		ToSql()
	if err != nil {
		return mapError(err, "build article delete")
	}

	result, err := getDB(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return mapError(err, "delete article")
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("delete article: %w", domain.ErrNotFound)
	}

	return nil
}

func scanArticle(row scannable) (*domain.Article, error) {
	var a domain.Article

	err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Body,
		&a.AuthorID,
		&a.PublishedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "article")
	}

	return &a, nil
}
