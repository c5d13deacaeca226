// Package grpc provides the gRPC transport layer for the article service.
//
// Messages are google.protobuf.Struct values carrying the same JSON shapes as
// the HTTP API, so no generated code is needed. Successful calls return the
// response envelope; failures return a status whose code follows the envelope
// status and whose details hold the envelope.
package grpc

import (
	"context"
	"log/slog"
	"net"
	"strings"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mvaleed/quill/internal/auth"
	"github.com/mvaleed/quill/internal/envelope"
	"github.com/mvaleed/quill/internal/service"
)

// TokenValidator turns a bearer token into claims.
type TokenValidator interface {
	ValidateAccessToken(token string) (*auth.Claims, error)
}

// Server wraps the gRPC server with dependencies
type Server struct {
	grpcServer *grpc.Server
	tokens     TokenValidator
	logger     *slog.Logger
}

// NewServer creates a new gRPC server with all handlers registered
func NewServer(
	accounts *service.AccountService,
	articles *service.ArticleService,
	tokens TokenValidator,
	logger *slog.Logger,
	opts ...grpc.ServerOption,
) *Server {
	s := &Server{
		tokens: tokens,
		logger: logger.With("component", "grpc"),
	}

	opts = append(opts, grpc.ChainUnaryInterceptor(
		s.loggingInterceptor,
		s.recoveryInterceptor,
		s.authInterceptor,
	))
	grpcServer := grpc.NewServer(opts...)

	grpcServer.RegisterService(&accountServiceDesc, &accountHandler{accounts: accounts, errs: s})
	grpcServer.RegisterService(&articleServiceDesc, &articleHandler{articles: articles, errs: s})

	s.grpcServer = grpcServer
	return s
}

// Serve starts the gRPC server on the given listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpcServer.Serve(listener)
}

// GracefulStop gracefully stops the gRPC server
func (s *Server) GracefulStop() {
	s.grpcServer.GracefulStop()
}

// loggingInterceptor logs all incoming requests
func (s *Server) loggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	start := time.Now()

	resp, err := handler(ctx, req)

	s.logger.InfoContext(ctx, "grpc request",
		slog.String("method", info.FullMethod),
		slog.String("code", status.Code(err).String()),
		slog.Duration("duration", time.Since(start)),
	)

	return resp, err
}

// recoveryInterceptor recovers from panics
func (s *Server) recoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "grpc panic recovered",
				slog.String("method", info.FullMethod),
				slog.Any("panic", r),
			)
			err = status.Error(codes.Internal, envelope.MsgInternal)
		}
	}()

	return handler(ctx, req)
}

// authInterceptor validates bearer tokens for protected methods and stores
// the principal in context.
func (s *Server) authInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	if isPublicMethod(info.FullMethod) {
		return handler(ctx, req)
	}

	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return nil, status.Error(codes.Unauthenticated, envelope.MsgUnauthorized)
	}

	values := md.Get("authorization")
	if len(values) == 0 {
		return nil, status.Error(codes.Unauthenticated, envelope.MsgUnauthorized)
	}

	token := values[0]
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = token[7:]
	}

	claims, err := s.tokens.ValidateAccessToken(strings.TrimSpace(token))
	if err != nil {
		return nil, status.Error(codes.Unauthenticated, envelope.MsgUnauthorized)
	}

	return handler(auth.WithPrincipal(ctx, claims.Principal()), req)
}

// isPublicMethod returns true if the method doesn't require authentication
func isPublicMethod(method string) bool {
	switch method {
	case methodRegister, methodLogin:
		return true
	}
	return false
}
