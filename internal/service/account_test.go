package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/validation"
)

type accountFixture struct {
	svc       *AccountService
	repo      *accountRepositoryMock
	publisher *publisherMock
}

func newAccountFixture(repo *accountRepositoryMock) accountFixture {
	pub := &publisherMock{}
	svc := NewAccountService(
		repo,
		passthroughTx{},
		validation.New(repo),
		fakeHasher{},
		fakeTokens{ttl: time.Hour, now: fixedClock},
		pub,
		discardLogger(),
	)
	svc.now = fixedClock
	return accountFixture{svc: svc, repo: repo, publisher: pub}
}

func requireValidation(t *testing.T, err error) domain.ErrorMap {
	t.Helper()
	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	require.ErrorIs(t, err, domain.ErrValidation)
	return ve.Errors
}

// ---------------------------------------------------------------------------
// Register
// ---------------------------------------------------------------------------

func TestAccountService_Register(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(&accountRepositoryMock{})

	account, err := f.svc.Register(context.Background(), domain.RegisterInput{
		Email: "ada@example.com", Name: "Ada Lovelace", Password: "password1",
	})
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, account.ID)
	assert.Equal(t, "ada@example.com", account.Email)
	assert.Equal(t, "hashed:password1", account.PasswordDigest)
	assert.Equal(t, fixedNow, account.CreatedAt)

	saved := f.repo.SaveCalls()
	require.Len(t, saved, 1)
	assert.Equal(t, account.ID, saved[0].ID)
	assert.Equal(t, []string{domain.EventAccountRegistered}, f.publisher.Types())
}

func TestAccountService_RegisterValidationFailureWritesNothing(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(&accountRepositoryMock{})

	_, err := f.svc.Register(context.Background(), domain.RegisterInput{
		Email: "bad", Name: "A", Password: "short",
	})

	errs := requireValidation(t, err)
	assert.Equal(t, []string{"email", "name", "password"}, errs.Fields())
	assert.Empty(t, f.repo.SaveCalls())
	assert.Empty(t, f.publisher.Types())
}

func TestAccountService_RegisterTakenEmail(t *testing.T) {
	t.Parallel()

	existing := stubAccount("taken@example.com")
	f := newAccountFixture(&accountRepositoryMock{GetByEmailFunc: accountsByEmail(existing)})

	_, err := f.svc.Register(context.Background(), domain.RegisterInput{
		Email: "taken@example.com", Name: "Someone Else", Password: "password1",
	})

	errs := requireValidation(t, err)
	msg, _ := errs.Get("email")
	assert.Equal(t, "This email is already in use", msg)
	assert.Empty(t, f.repo.SaveCalls())
}

func TestAccountService_RegisterLookupFault(t *testing.T) {
	t.Parallel()

	boom := errors.New("connection reset")
	f := newAccountFixture(&accountRepositoryMock{
		GetByEmailFunc: func(context.Context, string) (*domain.Account, error) { return nil, boom },
	})

	_, err := f.svc.Register(context.Background(), domain.RegisterInput{
		Email: "ada@example.com", Name: "Ada", Password: "password1",
	})

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.repo.SaveCalls())
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

func TestAccountService_Login(t *testing.T) {
	t.Parallel()

	existing := stubAccount("ada@example.com")
	f := newAccountFixture(&accountRepositoryMock{GetByEmailFunc: accountsByEmail(existing)})

	res, err := f.svc.Login(context.Background(), domain.LoginInput{Email: "ada@example.com", Password: "oldpass123"})
	require.NoError(t, err)

	assert.Equal(t, "token-for-"+existing.ID.String(), res.AccessToken)
	assert.Equal(t, int64(3600), res.ExpiresInSeconds)
	assert.Equal(t, existing.ID, res.Account.ID)
	assert.Equal(t, []string{domain.EventAccountLoggedIn}, f.publisher.Types())
}

func TestAccountService_LoginFailures(t *testing.T) {
	t.Parallel()

	existing := stubAccount("ada@example.com")

	tests := []struct {
		name  string
		input domain.LoginInput
	}{
		{name: "unknown email", input: domain.LoginInput{Email: "nobody@example.com", Password: "oldpass123"}},
		{name: "wrong password", input: domain.LoginInput{Email: "ada@example.com", Password: "wrongpass1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newAccountFixture(&accountRepositoryMock{GetByEmailFunc: accountsByEmail(existing)})
			_, err := f.svc.Login(context.Background(), tt.input)

			assert.ErrorIs(t, err, domain.ErrInvalidLogin)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}

func TestAccountService_LoginBlankInput(t *testing.T) {
	t.Parallel()

	f := newAccountFixture(&accountRepositoryMock{})
	_, err := f.svc.Login(context.Background(), domain.LoginInput{})

	errs := requireValidation(t, err)
	assert.Equal(t, []string{"email", "password"}, errs.Fields())
	assert.Empty(t, f.repo.GetByEmailCalls())
}

// ---------------------------------------------------------------------------
// Profile
// ---------------------------------------------------------------------------

func TestAccountService_Profile(t *testing.T) {
	t.Parallel()

	existing := stubAccount("ada@example.com")
	f := newAccountFixture(&accountRepositoryMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Account, error) {
			if id == existing.ID {
				cp := *existing
				return &cp, nil
			}
			return nil, domain.ErrNotFound
		},
	})

	got, err := f.svc.Profile(context.Background(), existing.Principal())
	require.NoError(t, err)
	assert.Equal(t, existing.Email, got.Email)

	_, err = f.svc.Profile(context.Background(), domain.Principal{ID: uuid.New()})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = f.svc.Profile(context.Background(), domain.Principal{})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// ---------------------------------------------------------------------------
// UpdateProfile
// ---------------------------------------------------------------------------

func profileRepo(accounts ...*domain.Account) *accountRepositoryMock {
	return &accountRepositoryMock{
		GetByIDFunc: func(_ context.Context, id uuid.UUID) (*domain.Account, error) {
			for _, a := range accounts {
				if a.ID == id {
					cp := *a
					return &cp, nil
				}
			}
			return nil, domain.ErrNotFound
		},
		GetByEmailFunc: accountsByEmail(accounts...),
	}
}

func TestAccountService_UpdateProfileUnchangedEmailSkipsLookup(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	f := newAccountFixture(profileRepo(me))

	got, err := f.svc.UpdateProfile(context.Background(), me.Principal(), domain.ProfileInput{
		Email: "me@example.com", Name: "Grace Hopper",
	})
	require.NoError(t, err)

	assert.Equal(t, "Grace Hopper", got.Name)
	assert.Equal(t, "me@example.com", got.Email)
	assert.Equal(t, fixedNow, got.UpdatedAt)
	assert.Empty(t, f.repo.GetByEmailCalls())
	require.Len(t, f.repo.SaveCalls(), 1)

	events := f.publisher.events
	require.Len(t, events, 1)
	assert.Equal(t, false, events[0].Data["email_changed"])
}

func TestAccountService_UpdateProfileTakenEmail(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	other := stubAccount("other@example.com")
	f := newAccountFixture(profileRepo(me, other))

	_, err := f.svc.UpdateProfile(context.Background(), me.Principal(), domain.ProfileInput{
		Email: "other@example.com", Name: "Me Myself",
	})

	errs := requireValidation(t, err)
	msg, _ := errs.Get("email")
	assert.Equal(t, "This email is already in use", msg)
	assert.Equal(t, []string{"other@example.com"}, f.repo.GetByEmailCalls())
	assert.Empty(t, f.repo.SaveCalls())
}

func TestAccountService_UpdateProfileNewEmail(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	f := newAccountFixture(profileRepo(me))

	got, err := f.svc.UpdateProfile(context.Background(), me.Principal(), domain.ProfileInput{
		Email: "new@example.com", Name: "Ada Lovelace",
	})
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", got.Email)
	saved := f.repo.SaveCalls()
	require.Len(t, saved, 1)
	assert.Equal(t, "new@example.com", saved[0].Email)
	assert.Equal(t, me.PasswordDigest, saved[0].PasswordDigest)
}

func TestAccountService_UpdateProfileComparesAgainstStoredEmail(t *testing.T) {
	t.Parallel()

	// The token still carries the address the account had when it was issued.
	me := stubAccount("current@example.com")
	principal := domain.Principal{ID: me.ID, Email: "stale@example.com"}
	f := newAccountFixture(profileRepo(me))

	_, err := f.svc.UpdateProfile(context.Background(), principal, domain.ProfileInput{
		Email: "current@example.com", Name: "Ada Lovelace",
	})
	require.NoError(t, err)
	assert.Empty(t, f.repo.GetByEmailCalls())
}

// ---------------------------------------------------------------------------
// ChangePassword
// ---------------------------------------------------------------------------

func TestAccountService_ChangePassword(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	f := newAccountFixture(profileRepo(me))

	err := f.svc.ChangePassword(context.Background(), me.Principal(), domain.PasswordChangeInput{
		CurrentPassword: "oldpass123", NewPassword: "newpass123", ConfirmPassword: "newpass123",
	})
	require.NoError(t, err)

	saved := f.repo.SaveCalls()
	require.Len(t, saved, 1)
	assert.Equal(t, "hashed:newpass123", saved[0].PasswordDigest)
	assert.Equal(t, me.Email, saved[0].Email)
	assert.Equal(t, []string{domain.EventAccountPasswordChanged}, f.publisher.Types())
}

func TestAccountService_ChangePasswordWrongCurrent(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	f := newAccountFixture(profileRepo(me))

	err := f.svc.ChangePassword(context.Background(), me.Principal(), domain.PasswordChangeInput{
		CurrentPassword: "notmine123", NewPassword: "newpass123", ConfirmPassword: "newpass123",
	})

	require.ErrorIs(t, err, domain.ErrInvalidCredential)
	assert.NotErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, f.repo.SaveCalls())
}

func TestAccountService_ChangePasswordValidatesBeforeLoading(t *testing.T) {
	t.Parallel()

	me := stubAccount("me@example.com")
	f := newAccountFixture(profileRepo(me))

	err := f.svc.ChangePassword(context.Background(), me.Principal(), domain.PasswordChangeInput{
		CurrentPassword: "oldpass123", NewPassword: "newpass123", ConfirmPassword: "different1",
	})

	errs := requireValidation(t, err)
	assert.Equal(t, []string{"confirm_password"}, errs.Fields())
	assert.Empty(t, f.repo.GetByIDCalls())
	assert.Empty(t, f.repo.SaveCalls())
}
