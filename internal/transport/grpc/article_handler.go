package grpc

import (
	"context"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
	"github.com/mvaleed/quill/internal/service"
)

type articleHandler struct {
	articles *service.ArticleService
	errs     errorReporter
}

func (h *articleHandler) ListArticles(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	articles, err := h.articles.ListMine(ctx, principal(ctx))
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodListArticles, err)
	}

	return h.reply(ctx, methodListArticles, envelope.OK(envelope.MsgArticles, envelope.NewArticleViews(articles)))
}

func (h *articleHandler) GetArticle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	article, err := h.articles.Get(ctx, principal(ctx), stringField(req, "id"))
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodGetArticle, err)
	}

	return h.reply(ctx, methodGetArticle, envelope.OK(envelope.MsgArticle, envelope.NewArticleView(article)))
}

func (h *articleHandler) CreateArticle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.ArticleInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodCreateArticle, err)
	}

	article, err := h.articles.Create(ctx, principal(ctx), in)
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodCreateArticle, err)
	}

	return h.reply(ctx, methodCreateArticle, envelope.Created(envelope.NewArticleView(article)))
}

// UpdateArticle takes the article id in the "id" field next to title and body.
func (h *articleHandler) UpdateArticle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.ArticleInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodUpdateArticle, err)
	}

	article, err := h.articles.Update(ctx, principal(ctx), stringField(req, "id"), in)
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodUpdateArticle, err)
	}

	return h.reply(ctx, methodUpdateArticle, envelope.OK(envelope.MsgArticleUpdated, envelope.NewArticleView(article)))
}

func (h *articleHandler) DeleteArticle(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	if err := h.articles.Delete(ctx, principal(ctx), stringField(req, "id")); err != nil {
		return nil, h.errs.statusFor(ctx, methodDeleteArticle, err)
	}

	return h.reply(ctx, methodDeleteArticle, envelope.NoContent())
}

func (h *articleHandler) reply(ctx context.Context, method string, resp envelope.Response) (*structpb.Struct, error) {
	out, err := encodeEnvelope(resp.Body)
	if err != nil {
		return nil, h.errs.statusFor(ctx, method, err)
	}
	return out, nil
}
