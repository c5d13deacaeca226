// Package storage defines the repository interfaces for data persistence.
//
// Services depend on these interfaces only. Two implementations exist:
// PostgreSQL for deployments and an in-memory store for development and tests.
package storage

import (
	"context"

	"github.com/google/uuid"

	"github.com/mvaleed/quill/internal/domain"
)

// AccountRepository defines the operations for account persistence.
type AccountRepository interface {
	// GetByID retrieves an account by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByEmail retrieves an account by its exact email. Returns ErrNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)

	// Save inserts the account or overwrites the stored copy with the same ID.
	Save(ctx context.Context, account *domain.Account) error
}

// ArticleRepository defines the operations for article persistence.
type ArticleRepository interface {
	// GetByID retrieves an article by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error)

	// ListByAuthor retrieves every article written by authorID.
	ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error)

	// Save inserts the article or updates its title, body and updated_at.
	// AuthorID and PublishedAt are never overwritten.
	Save(ctx context.Context, article *domain.Article) error

	// Delete removes the article. Returns ErrNotFound if it does not exist.
	Delete(ctx context.Context, article *domain.Article) error
}

// Repositories bundles all repositories together.
type Repositories struct {
	Accounts AccountRepository
	Articles ArticleRepository
}

// Transactor provides transaction support for operations that need atomicity.
type Transactor interface {
	// WithTransaction executes fn within a database transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn succeeds, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}
