// Package service contains the business logic layer.
// Services validate input, enforce ownership, call repositories and publish
// events. They do not know about HTTP, gRPC, or transport details.
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

type passwordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

type tokenIssuer interface {
	GenerateAccessToken(p domain.Principal) (string, time.Time, error)
}

// AccountService handles registration, login and profile operations.
type AccountService struct {
	accounts  storage.AccountRepository
	tx        storage.Transactor
	validator *validation.Validator
	hasher    passwordHasher
	tokens    tokenIssuer
	publisher event.Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewAccountService(
	accounts storage.AccountRepository,
	tx storage.Transactor,
	validator *validation.Validator,
	hasher passwordHasher,
	tokens tokenIssuer,
	publisher event.Publisher,
	logger *slog.Logger,
) *AccountService {
	return &AccountService{
		accounts:  accounts,
		tx:        tx,
		validator: validator,
		hasher:    hasher,
		tokens:    tokens,
		publisher: publisher,
		logger:    logger.With("service", "account"),
		now:       utcNow,
	}
}

func utcNow() time.Time {
	return time.Now().UTC()
}

// Register creates a new account.
func (s *AccountService) Register(ctx context.Context, input domain.RegisterInput) (*domain.Account, error) {
	errs, err := s.validator.Registration(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("validate registration: %w", err)
	}
	if !errs.Empty() {
		return nil, domain.NewValidationError(errs)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := domain.NewAccount(input.Email, input.Name, digest, s.now())
	if err := s.accounts.Save(ctx, account); err != nil {
		return nil, fmt.Errorf("save account: %w", err)
	}

	s.logger.InfoContext(ctx, "account registered", slog.String("account_id", account.ID.String()))
	_ = s.publisher.Publish(ctx, domain.AccountRegisteredEvent(account))

	return account, nil
}

// LoginResult contains the access token issued after a successful login.
type LoginResult struct {
	AccessToken      string
	ExpiresAt        time.Time
	ExpiresInSeconds int64
	Account          *domain.Account
}

// Login checks credentials and issues an access token.
func (s *AccountService) Login(ctx context.Context, input domain.LoginInput) (*LoginResult, error) {
	if errs := s.validator.Login(input); !errs.Empty() {
		return nil, domain.NewValidationError(errs)
	}

	account, err := s.accounts.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrInvalidLogin
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	if !s.hasher.Verify(input.Password, account.PasswordDigest) {
		return nil, domain.ErrInvalidLogin
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(account.Principal())
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	_ = s.publisher.Publish(ctx, domain.AccountLoggedInEvent(account.ID))

	return &LoginResult{
		AccessToken:      token,
		ExpiresAt:        expiresAt,
		ExpiresInSeconds: int64(expiresAt.Sub(s.now()).Seconds()),
		Account:          account,
	}, nil
}

// Profile returns the account p authenticates as.
func (s *AccountService) Profile(ctx context.Context, p domain.Principal) (*domain.Account, error) {
	return s.current(ctx, p)
}

// UpdateProfile changes the display name and email of the caller's account.
func (s *AccountService) UpdateProfile(ctx context.Context, p domain.Principal, input domain.ProfileInput) (*domain.Account, error) {
	var account *domain.Account
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		current, err := s.current(ctx, p)
		if err != nil {
			return err
		}

		errs, err := s.validator.ProfileUpdate(ctx, current, input)
		if err != nil {
			return fmt.Errorf("validate profile: %w", err)
		}
		if !errs.Empty() {
			return domain.NewValidationError(errs)
		}

		emailChanged := current.UpdateProfile(input.Email, input.Name, s.now())
		if err := s.accounts.Save(ctx, current); err != nil {
			return fmt.Errorf("save account: %w", err)
		}

		_ = s.publisher.Publish(ctx, domain.AccountUpdatedEvent(current, emailChanged))
		account = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return account, nil
}

// ChangePassword replaces the caller's password after checking the current one.
func (s *AccountService) ChangePassword(ctx context.Context, p domain.Principal, input domain.PasswordChangeInput) error {
	if errs := s.validator.PasswordChange(input); !errs.Empty() {
		return domain.NewValidationError(errs)
	}

	account, err := s.current(ctx, p)
	if err != nil {
		return err
	}

	if !s.hasher.Verify(input.CurrentPassword, account.PasswordDigest) {
		return domain.ErrInvalidCredential
	}

	digest, err := s.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	account.SetPasswordDigest(digest, s.now())
	if err := s.accounts.Save(ctx, account); err != nil {
		return fmt.Errorf("save account: %w", err)
	}

	s.logger.InfoContext(ctx, "password changed", slog.String("account_id", account.ID.String()))
	_ = s.publisher.Publish(ctx, domain.PasswordChangedEvent(account.ID))

	return nil
}

// current loads the account behind p. A principal whose account no longer
// exists is treated as unauthenticated.
func (s *AccountService) current(ctx context.Context, p domain.Principal) (*domain.Account, error) {
	if p.IsZero() {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.accounts.GetByID(ctx, p.ID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, fmt.Errorf("get account: %w", err)
	}

	return account, nil
}
