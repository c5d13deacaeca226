package grpc

import (
	"context"
	"net/http"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/mvaleed/quill/internal/domain"
	"github.com/mvaleed/quill/internal/envelope"
	"github.com/mvaleed/quill/internal/service"
)

type accountHandler struct {
	accounts *service.AccountService
	errs     errorReporter
}

func (h *accountHandler) Register(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.RegisterInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodRegister, err)
	}

	account, err := h.accounts.Register(ctx, in)
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodRegister, err)
	}

	return h.reply(ctx, methodRegister, envelope.Success(http.StatusCreated, envelope.MsgRegistered, envelope.NewAccountView(account)))
}

func (h *accountHandler) Login(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.LoginInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodLogin, err)
	}

	result, err := h.accounts.Login(ctx, in)
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodLogin, err)
	}

	return h.reply(ctx, methodLogin, envelope.OK(envelope.MsgLoggedIn, envelope.TokenView{
		Token:     result.AccessToken,
		ExpiresIn: result.ExpiresInSeconds,
	}))
}

func (h *accountHandler) GetProfile(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	account, err := h.accounts.Profile(ctx, principal(ctx))
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodGetProfile, err)
	}

	return h.reply(ctx, methodGetProfile, envelope.OK(envelope.MsgProfile, envelope.NewAccountView(account)))
}

func (h *accountHandler) UpdateProfile(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.ProfileInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodUpdateProfile, err)
	}

	account, err := h.accounts.UpdateProfile(ctx, principal(ctx), in)
	if err != nil {
		return nil, h.errs.statusFor(ctx, methodUpdateProfile, err)
	}

	return h.reply(ctx, methodUpdateProfile, envelope.OK(envelope.MsgProfileUpdated, envelope.NewAccountView(account)))
}

func (h *accountHandler) ChangePassword(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	var in domain.PasswordChangeInput
	if err := decodeRequest(req, &in); err != nil {
		return nil, h.errs.statusFor(ctx, methodChangePassword, err)
	}

	if err := h.accounts.ChangePassword(ctx, principal(ctx), in); err != nil {
		return nil, h.errs.statusFor(ctx, methodChangePassword, err)
	}

	return h.reply(ctx, methodChangePassword, envelope.OK(envelope.MsgPasswordChanged, nil))
}

func (h *accountHandler) reply(ctx context.Context, method string, resp envelope.Response) (*structpb.Struct, error) {
	out, err := encodeEnvelope(resp.Body)
	if err != nil {
		return nil, h.errs.statusFor(ctx, method, err)
	}
	return out, nil
}
