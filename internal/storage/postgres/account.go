package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/quill/internal/domain"
)

const accountColumns = `id, email, name, password_digest, created_at, updated_at`

// AccountRepository implements storage.AccountRepository using PostgreSQL.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

// GetByID retrieves an account by its ID.
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)

	return scanAccount(row)
}

// GetByEmail retrieves an account by its email. The comparison is exact.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE email = $1
		ORDER BY created_at
		LIMIT 1`, email)

	return scanAccount(row)
}

// Save inserts or updates the account.
func (r *AccountRepository) Save(ctx context.Context, a *domain.Account) error {
	db := getDB(ctx, r.pool)

	_, err := db.Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			name = EXCLUDED.name,
			password_digest = EXCLUDED.password_digest,
			updated_at = EXCLUDED.updated_at`,
		a.ID,
		a.Email,
		a.Name,
		a.PasswordDigest,
		a.CreatedAt,
		a.UpdatedAt,
	)

	return mapError(err, "save account")
}

func scanAccount(row scannable) (*domain.Account, error) {
	var a domain.Account

	err := row.Scan(
		&a.ID,
		&a.Email,
		&a.Name,
		&a.PasswordDigest,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, mapError(err, "account")
	}

	return &a, nil
}
