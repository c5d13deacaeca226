package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mvaleed/quill/internal/domain"
)

// ---------------------------------------------------------------------------
// accountRepositoryMock
// ---------------------------------------------------------------------------

type accountRepositoryMock struct {
	GetByIDFunc    func(ctx context.Context, id uuid.UUID) (*domain.Account, error)
	GetByEmailFunc func(ctx context.Context, email string) (*domain.Account, error)
	SaveFunc       func(ctx context.Context, account *domain.Account) error

	mu            sync.Mutex
	getByIDCalls  []uuid.UUID
	getByEmailArg []string
	saveCalls     []domain.Account
}

func (m *accountRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	m.mu.Lock()
	m.getByIDCalls = append(m.getByIDCalls, id)
	m.mu.Unlock()
	if m.GetByIDFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *accountRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	m.getByEmailArg = append(m.getByEmailArg, email)
	m.mu.Unlock()
	if m.GetByEmailFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByEmailFunc(ctx, email)
}

func (m *accountRepositoryMock) Save(ctx context.Context, account *domain.Account) error {
	m.mu.Lock()
	m.saveCalls = append(m.saveCalls, *account)
	m.mu.Unlock()
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, account)
}

func (m *accountRepositoryMock) GetByIDCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.getByIDCalls...)
}

func (m *accountRepositoryMock) GetByEmailCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.getByEmailArg...)
}

func (m *accountRepositoryMock) SaveCalls() []domain.Account {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Account(nil), m.saveCalls...)
}

// ---------------------------------------------------------------------------
// articleRepositoryMock
// ---------------------------------------------------------------------------

type articleRepositoryMock struct {
	GetByIDFunc      func(ctx context.Context, id uuid.UUID) (*domain.Article, error)
	ListByAuthorFunc func(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error)
	SaveFunc         func(ctx context.Context, article *domain.Article) error
	DeleteFunc       func(ctx context.Context, article *domain.Article) error

	mu           sync.Mutex
	getByIDCalls []uuid.UUID
	listCalls    []uuid.UUID
	saveCalls    []domain.Article
	deleteCalls  []domain.Article
}

func (m *articleRepositoryMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Article, error) {
	m.mu.Lock()
	m.getByIDCalls = append(m.getByIDCalls, id)
	m.mu.Unlock()
	if m.GetByIDFunc == nil {
		return nil, domain.ErrNotFound
	}
	return m.GetByIDFunc(ctx, id)
}

func (m *articleRepositoryMock) ListByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	m.mu.Lock()
	m.listCalls = append(m.listCalls, authorID)
	m.mu.Unlock()
	if m.ListByAuthorFunc == nil {
		return []domain.Article{}, nil
	}
	return m.ListByAuthorFunc(ctx, authorID)
}

func (m *articleRepositoryMock) Save(ctx context.Context, article *domain.Article) error {
	m.mu.Lock()
	m.saveCalls = append(m.saveCalls, *article)
	m.mu.Unlock()
	if m.SaveFunc == nil {
		return nil
	}
	return m.SaveFunc(ctx, article)
}

func (m *articleRepositoryMock) Delete(ctx context.Context, article *domain.Article) error {
	m.mu.Lock()
	m.deleteCalls = append(m.deleteCalls, *article)
	m.mu.Unlock()
	if m.DeleteFunc == nil {
		return nil
	}
	return m.DeleteFunc(ctx, article)
}

func (m *articleRepositoryMock) GetByIDCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.getByIDCalls...)
}

func (m *articleRepositoryMock) ListByAuthorCalls() []uuid.UUID {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uuid.UUID(nil), m.listCalls...)
}

func (m *articleRepositoryMock) SaveCalls() []domain.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Article(nil), m.saveCalls...)
}

func (m *articleRepositoryMock) DeleteCalls() []domain.Article {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.Article(nil), m.deleteCalls...)
}

// ---------------------------------------------------------------------------
// Collaborator fakes
// ---------------------------------------------------------------------------

type passthroughTx struct{}

func (passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeHasher produces readable digests so tests can assert on them.
type fakeHasher struct{}

func (fakeHasher) Hash(plain string) (string, error) {
	return "hashed:" + plain, nil
}

func (fakeHasher) Verify(plain, digest string) bool {
	return digest == "hashed:"+plain
}

type fakeTokens struct {
	ttl time.Duration
	now func() time.Time
}

func (f fakeTokens) GenerateAccessToken(p domain.Principal) (string, time.Time, error) {
	return "token-for-" + p.ID.String(), f.now().Add(f.ttl), nil
}

type publisherMock struct {
	mu     sync.Mutex
	events []domain.Event
}

func (p *publisherMock) Publish(_ context.Context, e domain.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *publisherMock) Close() error { return nil }

func (p *publisherMock) Types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func stubAccount(email string) *domain.Account {
	return domain.NewAccount(email, "Ada Lovelace", "hashed:oldpass123", fixedNow.Add(-24*time.Hour))
}

// accountsByEmail answers GetByEmail from the given accounts.
func accountsByEmail(accounts ...*domain.Account) func(context.Context, string) (*domain.Account, error) {
	return func(_ context.Context, email string) (*domain.Account, error) {
		for _, a := range accounts {
			if a.Email == email {
				cp := *a
				return &cp, nil
			}
		}
		return nil, fmt.Errorf("account: %w", domain.ErrNotFound)
	}
}
