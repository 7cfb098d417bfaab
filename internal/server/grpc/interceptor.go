package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/api"
)

type ctxKey string

const authorizationKey ctxKey = "authorization"

// authorizedMethods read the raw authorization value. Its validity is
// decided by the session service, not here.
var authorizedMethods = map[string]bool{
	api.HabitAuthService_Logout_FullMethodName:     true,
	api.HabitAuthService_GetProfile_FullMethodName: true,
	api.HabitAuthService_WhoAmI_FullMethodName:     true,
	api.HabitAuthService_CheckToken_FullMethodName: true,
}

func (s *GRPCServer) authorizationInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (interface{}, error) {

	if authorizedMethods[info.FullMethod] {

		var rawAuth string
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			values := md.Get(common.AuthorizationHeaderName)
			if len(values) > 0 {
				rawAuth = values[0]
			}
		}
		if len(rawAuth) == 0 {
			return nil, toStatus(common.ErrMalformedHeader)
		}

		ctx = context.WithValue(ctx, authorizationKey, rawAuth)
	}

	return handler(ctx, req)
}

func authorizationFromContext(ctx context.Context) string {
	v, _ := ctx.Value(authorizationKey).(string)
	return v
}
