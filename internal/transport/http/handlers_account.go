package http

import (
	"net/http"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
)

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	account, err := s.accounts.Profile(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgProfile, envelope.NewAccountView(account)))
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	var req domain.ProfileInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	account, err := s.accounts.UpdateProfile(r.Context(), principal(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgProfileUpdated, envelope.NewAccountView(account)))
}

func (s *Server) handleChangePassword(w http.ResponseWriter, r *http.Request) {
	var req domain.PasswordChangeInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	if err := s.accounts.ChangePassword(r.Context(), principal(r), req); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgPasswordChanged, nil))
}
