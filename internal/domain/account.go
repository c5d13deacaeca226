package domain

import (
	"time"

	"github.com/google/uuid"
)

// Account is a registered user. Accounts are never deleted.
type Account struct {
	ID             uuid.UUID
	Email          string
	Name           string
	PasswordDigest string // never exposed outside the service layer
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// NewAccount builds an account from already validated input.
func NewAccount(email, name, digest string, now time.Time) *Account {
	return &Account{
		ID:             uuid.New(),
		Email:          email,
		Name:           name,
		PasswordDigest: digest,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

// Principal returns the identity this account authenticates as.
func (a *Account) Principal() Principal {
	return Principal{ID: a.ID, Email: a.Email}
}

// UpdateProfile sets the display name and, when it differs, the email.
// It reports whether the email changed.
func (a *Account) UpdateProfile(email, name string, now time.Time) bool {
	a.Name = name
	changed := email != a.Email
	if changed {
		a.Email = email
	}
	a.UpdatedAt = now
	return changed
}

// SetPasswordDigest replaces the stored digest.
func (a *Account) SetPasswordDigest(digest string, now time.Time) {
	a.PasswordDigest = digest
	a.UpdatedAt = now
}
