package http

import (
	"net/http"
	"strings"

	"github.com/mvaleed/quill/internal/auth"
	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
)

// authMiddleware validates bearer tokens and stores the principal in context.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Expect "Bearer <token>"
		parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
			s.writeEnvelope(w, envelope.Unauthorized(envelope.MsgUnauthorized))
			return
		}

		claims, err := s.tokens.ValidateAccessToken(strings.TrimSpace(parts[1]))
		if err != nil {
			s.writeEnvelope(w, envelope.Unauthorized(envelope.MsgUnauthorized))
			return
		}

		ctx := auth.WithPrincipal(r.Context(), claims.Principal())
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// principal returns the caller set by authMiddleware. Handlers behind the
// middleware always have one; the zero value makes services answer
// ErrUnauthorized otherwise.
func principal(r *http.Request) domain.Principal {
	p, _ := auth.PrincipalFrom(r.Context())
	return p
}
