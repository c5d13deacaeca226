// Package memory implements the storage interfaces in process memory.
// Stored values are copied on the way in and out, so callers never share
// state with the store.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/storage"
)

// Store holds accounts and articles behind a single lock.
type Store struct {
	mu       sync.RWMutex
	accounts map[uuid.UUID]domain.Account
	// accountOrder keeps registration order so email lookups are deterministic.
	accountOrder []uuid.UUID
	articles     map[uuid.UUID]domain.Article
	articleOrder []uuid.UUID
}

func New() *Store {
	return &Store{
		accounts: make(map[uuid.UUID]domain.Account),
		articles: make(map[uuid.UUID]domain.Article),
	}
}

// Repositories returns repositories backed by this store.
func (s *Store) Repositories() *storage.Repositories {
	return &storage.Repositories{
		Accounts: &AccountRepository{store: s},
		Articles: &ArticleRepository{store: s},
	}
}

// WithTransaction runs fn directly. Each repository call is atomic on its own.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// Ping always succeeds unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

// AccountRepository implements storage.AccountRepository.
type AccountRepository struct {
	store *Store
}

func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.accounts[id]
	if !ok {
		return nil, fmt.Errorf("account %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	for _, id := range r.store.accountOrder {
		if a := r.store.accounts[id]; a.Email == email {
			return &a, nil
		}
	}
	return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
}

func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.accounts[a.ID]; !ok {
		r.store.accountOrder = append(r.store.accountOrder, a.ID)
	}
	r.store.accounts[a.ID] = *a
	return nil
}

// ArticleRepository implements storage.ArticleRepository.
type ArticleRepository struct {
	store *Store
}

func (r *ArticleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	a, ok := r.store.articles[id]
	if !ok {
		return nil, fmt.Errorf("article %s: %w", id, domain.ErrNotFound)
	}
	return &a, nil
}

// ListByAuthor returns the author's articles in insertion order.
func (r *ArticleRepository) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := make([]domain.Article, 0)
	for _, id := range r.store.articleOrder {
		if a := r.store.articles[id]; a.AuthorID == authorID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *ArticleRepository) Save(ctx context.Context, a *domain.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.articles[a.ID]
	if !ok {
		r.store.articleOrder = append(r.store.articleOrder, a.ID)
		r.store.articles[a.ID] = *a
		return nil
	}

	existing.Title = a.Title
	existing.Body = a.Body
	existing.UpdatedAt = a.UpdatedAt
	r.store.articles[a.ID] = existing
	return nil
}

func (r *ArticleRepository) Delete(ctx context.Context, a *domain.Article) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.articles[a.ID]; !ok {
		return fmt.Errorf("article %s: %w", a.ID, domain.ErrNotFound)
	}
	delete(r.store.articles, a.ID)
	r.store.articleOrder = slices.DeleteFunc(r.store.articleOrder, func(id uuid.UUID) bool {
		return id == a.ID
	})
	return nil
}
