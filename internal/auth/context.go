package auth

import (
	"context"

	"github.com/mvaleed/quill/internal/domain"
)

type principalKey struct{}

// WithPrincipal stores the authenticated identity in ctx.
func WithPrincipal(ctx context.Context, p domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

// PrincipalFrom returns the identity stored by WithPrincipal.
func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(domain.Principal)
	if !ok || p.IsZero() {
		return domain.Principal{}, false
	}
	return p, true
}
