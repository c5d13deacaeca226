// Package validation turns request input into field-keyed error maps.
package validation

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mvaleed/quill/internal/domain"
)

const (
	titleMinLen    = 3
	titleMaxLen    = 255
	bodyMinLen     = 10
	nameMinLen     = 2
	nameMaxLen     = 50
	passwordMinLen = 8
)

var namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)

// EmailLookup finds an account by its exact email. It returns
// domain.ErrNotFound when no account uses the address.
type EmailLookup interface {
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
}

// Validator checks inputs. Expected failures are returned as an ErrorMap;
// the error return is reserved for lookup faults.
type Validator struct {
	accounts EmailLookup
}

func New(accounts EmailLookup) *Validator {
	return &Validator{accounts: accounts}
}

// Article validates the input of an article create or update.
func (v *Validator) Article(in domain.ArticleInput) domain.ErrorMap {
	var errs domain.ErrorMap

	switch n := utf8.RuneCountInString(in.Title); {
	case isBlank(in.Title):
		errs.Add("title", "Title cannot be blank")
	case n < titleMinLen:
		errs.Add("title", fmt.Sprintf("Title must be at least %d characters long", titleMinLen))
	case n > titleMaxLen:
		errs.Add("title", fmt.Sprintf("Title cannot be longer than %d characters", titleMaxLen))
	}

	switch {
	case isBlank(in.Body):
		errs.Add("body", "Body cannot be blank")
	case utf8.RuneCountInString(in.Body) < bodyMinLen:
		errs.Add("body", fmt.Sprintf("Body must be at least %d characters long", bodyMinLen))
	}

	return errs
}

// Registration validates a new account. The uniqueness lookup runs only when
// the email is otherwise well formed.
func (v *Validator) Registration(ctx context.Context, in domain.RegisterInput) (domain.ErrorMap, error) {
	var errs domain.ErrorMap

	if err := v.checkEmail(ctx, &errs, in.Email, true); err != nil {
		return domain.ErrorMap{}, err
	}
	checkName(&errs, in.Name)
	checkPassword(&errs, "password", "Password is required", in.Password)

	return errs, nil
}

// ProfileUpdate validates a profile change for current. The uniqueness lookup
// is skipped when the submitted email equals the current one.
func (v *Validator) ProfileUpdate(ctx context.Context, current *domain.Account, in domain.ProfileInput) (domain.ErrorMap, error) {
	var errs domain.ErrorMap

	lookup := current == nil || in.Email != current.Email
	if err := v.checkEmail(ctx, &errs, in.Email, lookup); err != nil {
		return domain.ErrorMap{}, err
	}
	checkName(&errs, in.Name)

	return errs, nil
}

// PasswordChange validates a password change. It never touches storage.
func (v *Validator) PasswordChange(in domain.PasswordChangeInput) domain.ErrorMap {
	var errs domain.ErrorMap

	if isBlank(in.CurrentPassword) {
		errs.Add("current_password", "Current password is required")
	}

	checkPassword(&errs, "new_password", "New password is required", in.NewPassword)
	if !errs.Has("new_password") && in.NewPassword == in.CurrentPassword {
		errs.Add("new_password", "New password must be different from current password")
	}

	switch {
	case isBlank(in.ConfirmPassword):
		errs.Add("confirm_password", "Password confirmation is required")
	case in.ConfirmPassword != in.NewPassword:
		errs.Add("confirm_password", "Password confirmation must match new password")
	}

	return errs
}

// Login validates the presence of credentials.
func (v *Validator) Login(in domain.LoginInput) domain.ErrorMap {
	var errs domain.ErrorMap
	if isBlank(in.Email) {
		errs.Add("email", "Email is required")
	}
	if isBlank(in.Password) {
		errs.Add("password", "Password is required")
	}
	return errs
}

func (v *Validator) checkEmail(ctx context.Context, errs *domain.ErrorMap, email string, lookup bool) error {
	switch {
	case isBlank(email):
		errs.Add("email", "Email is required")
		return nil
	case !IsEmail(email):
		errs.Add("email", "Invalid email address")
		return nil
	case !lookup:
		return nil
	}

	_, err := v.accounts.GetByEmail(ctx, email)
	switch {
	case err == nil:
		errs.Add("email", "This email is already in use")
	case errors.Is(err, domain.ErrNotFound):
	default:
		return fmt.Errorf("lookup email: %w", err)
	}
	return nil
}

func checkName(errs *domain.ErrorMap, name string) {
	switch n := utf8.RuneCountInString(name); {
	case isBlank(name):
		errs.Add("name", "Name is required")
	case n < nameMinLen:
		errs.Add("name", fmt.Sprintf("Name must be at least %d characters long", nameMinLen))
	case n > nameMaxLen:
		errs.Add("name", fmt.Sprintf("Name cannot be longer than %d characters", nameMaxLen))
	case !namePattern.MatchString(name):
		errs.Add("name", "Name can only contain letters, spaces, hyphens and apostrophes")
	}
}

// checkPassword reports blankMsg for a blank password. The strength rules use
// the same messages for every password field.
func checkPassword(errs *domain.ErrorMap, field, blankMsg, password string) {
	switch {
	case isBlank(password):
		errs.Add(field, blankMsg)
	case utf8.RuneCountInString(password) < passwordMinLen:
		errs.Add(field, fmt.Sprintf("Password must be at least %d characters long", passwordMinLen))
	case !hasLetterAndDigit(password):
		errs.Add(field, "Password must contain at least one letter and one number")
	}
}

// IsEmail reports whether s is a bare address with a dotted domain.
func IsEmail(s string) bool {
	addr, err := mail.ParseAddress(s)
	if err != nil || addr.Address != s {
		return false
	}
	at := strings.LastIndexByte(s, '@')
	domainPart := s[at+1:]
	dot := strings.LastIndexByte(domainPart, '.')
	return dot > 0 && dot < len(domainPart)-1
}

// hasLetterAndDigit requires an ASCII letter and digit. Underscore is the one
// word character outside both classes and is rejected.
func hasLetterAndDigit(s string) bool {
	var letter, digit bool
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
			letter = true
		case r >= '0' && r <= '9':
			digit = true
		case r == '_':
			return false
		}
	}
	return letter && digit
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
