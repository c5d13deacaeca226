package http

import (
	"net/http"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.health.Ping(r.Context()); err != nil {
		s.logger.WarnContext(r.Context(), "health check failed", "error", err)
		s.writeEnvelope(w, envelope.Failure(http.StatusServiceUnavailable, "Service unavailable", nil))
		return
	}
	s.writeEnvelope(w, envelope.OK("", map[string]string{"status": "ok"}))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req domain.RegisterInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	account, err := s.accounts.Register(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.Success(http.StatusCreated, envelope.MsgRegistered, envelope.NewAccountView(account)))
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req domain.LoginInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	result, err := s.accounts.Login(r.Context(), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgLoggedIn, envelope.TokenView{
		Token:     result.AccessToken,
		ExpiresIn: result.ExpiresInSeconds,
	}))
}
