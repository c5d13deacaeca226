package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	accountServiceName = "quill.v1.AccountService"
	articleServiceName = "quill.v1.ArticleService"
)

// Full method names.
const (
	methodRegister       = "/" + accountServiceName + "/Register"
	methodLogin          = "/" + accountServiceName + "/Login"
	methodGetProfile     = "/" + accountServiceName + "/GetProfile"
	methodUpdateProfile  = "/" + accountServiceName + "/UpdateProfile"
	methodChangePassword = "/" + accountServiceName + "/ChangePassword"

	methodListArticles  = "/" + articleServiceName + "/ListArticles"
	methodGetArticle    = "/" + articleServiceName + "/GetArticle"
	methodCreateArticle = "/" + articleServiceName + "/CreateArticle"
	methodUpdateArticle = "/" + articleServiceName + "/UpdateArticle"
	methodDeleteArticle = "/" + articleServiceName + "/DeleteArticle"
)

// AccountServiceServer is the server API for quill.v1.AccountService.
type AccountServiceServer interface {
	Register(context.Context, *structpb.Struct) (*structpb.Struct, error)
	Login(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateProfile(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ChangePassword(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

// ArticleServiceServer is the server API for quill.v1.ArticleService.
type ArticleServiceServer interface {
	ListArticles(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetArticle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	CreateArticle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	UpdateArticle(context.Context, *structpb.Struct) (*structpb.Struct, error)
	DeleteArticle(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

var accountServiceDesc = grpc.ServiceDesc{
	ServiceName: accountServiceName,
	HandlerType: (*AccountServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodRegister, "Register", AccountServiceServer.Register),
		unary(methodLogin, "Login", AccountServiceServer.Login),
		unary(methodGetProfile, "GetProfile", AccountServiceServer.GetProfile),
		unary(methodUpdateProfile, "UpdateProfile", AccountServiceServer.UpdateProfile),
		unary(methodChangePassword, "ChangePassword", AccountServiceServer.ChangePassword),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quill/v1/account.proto",
}

var articleServiceDesc = grpc.ServiceDesc{
	ServiceName: articleServiceName,
	HandlerType: (*ArticleServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unary(methodListArticles, "ListArticles", ArticleServiceServer.ListArticles),
		unary(methodGetArticle, "GetArticle", ArticleServiceServer.GetArticle),
		unary(methodCreateArticle, "CreateArticle", ArticleServiceServer.CreateArticle),
		unary(methodUpdateArticle, "UpdateArticle", ArticleServiceServer.UpdateArticle),
		unary(methodDeleteArticle, "DeleteArticle", ArticleServiceServer.DeleteArticle),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "quill/v1/article.proto",
}

// unary builds the method descriptor that generated code would contain for a
// Struct -> Struct call.
func unary[S any](
	fullMethod, name string,
	call func(S, context.Context, *structpb.Struct) (*structpb.Struct, error),
) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			if interceptor == nil {
				return call(srv.(S), ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: fullMethod,
			}
			handler := func(ctx context.Context, req any) (any, error) {
				return call(srv.(S), ctx, req.(*structpb.Struct))
			}
			return interceptor(ctx, in, info, handler)
		},
	}
}
