package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
)

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.articles.ListMine(r.Context(), principal(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgArticles, envelope.NewArticleViews(articles)))
}

func (s *Server) handleGetArticle(w http.ResponseWriter, r *http.Request) {
	article, err := s.articles.Get(r.Context(), principal(r), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgArticle, envelope.NewArticleView(article)))
}

func (s *Server) handleCreateArticle(w http.ResponseWriter, r *http.Request) {
	var req domain.ArticleInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	article, err := s.articles.Create(r.Context(), principal(r), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.Created(envelope.NewArticleView(article)))
}

func (s *Server) handleUpdateArticle(w http.ResponseWriter, r *http.Request) {
	var req domain.ArticleInput
	if err := s.readJSON(w, r, &req); err != nil {
		s.writeError(w, r, err)
		return
	}

	article, err := s.articles.Update(r.Context(), principal(r), chi.URLParam(r, "id"), req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.OK(envelope.MsgArticleUpdated, envelope.NewArticleView(article)))
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	if err := s.articles.Delete(r.Context(), principal(r), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeEnvelope(w, envelope.NoContent())
}
