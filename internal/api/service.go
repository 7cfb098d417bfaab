package api

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const ServiceName = "habitauth.v1.HabitAuthService"

const (
	HabitAuthService_Register_FullMethodName   = "/" + ServiceName + "/Register"
	HabitAuthService_Login_FullMethodName      = "/" + ServiceName + "/Login"
	HabitAuthService_Logout_FullMethodName     = "/" + ServiceName + "/Logout"
	HabitAuthService_GetProfile_FullMethodName = "/" + ServiceName + "/GetProfile"
	HabitAuthService_WhoAmI_FullMethodName     = "/" + ServiceName + "/WhoAmI"
	HabitAuthService_CheckToken_FullMethodName = "/" + ServiceName + "/CheckToken"
	HabitAuthService_Ping_FullMethodName       = "/" + ServiceName + "/Ping"
)

// HabitAuthServiceServer is the server API for HabitAuthService.
type HabitAuthServiceServer interface {
	Register(context.Context, *RegisterRequest) (*TokenResponse, error)
	Login(context.Context, *LoginRequest) (*TokenResponse, error)
	Logout(context.Context, *LogoutRequest) (*LogoutResponse, error)
	GetProfile(context.Context, *ProfileRequest) (*ProfileResponse, error)
	WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error)
	CheckToken(context.Context, *CheckTokenRequest) (*CheckTokenResponse, error)
	Ping(context.Context, *PingRequest) (*PingResponse, error)
}

// UnimplementedHabitAuthServiceServer can be embedded to have forward
// compatible implementations.
type UnimplementedHabitAuthServiceServer struct{}

func (UnimplementedHabitAuthServiceServer) Register(context.Context, *RegisterRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Register not implemented")
}
func (UnimplementedHabitAuthServiceServer) Login(context.Context, *LoginRequest) (*TokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Login not implemented")
}
func (UnimplementedHabitAuthServiceServer) Logout(context.Context, *LogoutRequest) (*LogoutResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Logout not implemented")
}
func (UnimplementedHabitAuthServiceServer) GetProfile(context.Context, *ProfileRequest) (*ProfileResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetProfile not implemented")
}
func (UnimplementedHabitAuthServiceServer) WhoAmI(context.Context, *WhoAmIRequest) (*WhoAmIResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method WhoAmI not implemented")
}
func (UnimplementedHabitAuthServiceServer) CheckToken(context.Context, *CheckTokenRequest) (*CheckTokenResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckToken not implemented")
}
func (UnimplementedHabitAuthServiceServer) Ping(context.Context, *PingRequest) (*PingResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method Ping not implemented")
}

func RegisterHabitAuthServiceServer(s grpc.ServiceRegistrar, srv HabitAuthServiceServer) {
	s.RegisterService(&HabitAuthService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodHandler.
func unaryHandler[Req, Resp any](fullMethod string, call func(HabitAuthServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(HabitAuthServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(HabitAuthServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// HabitAuthService_ServiceDesc is the grpc.ServiceDesc for HabitAuthService.
var HabitAuthService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*HabitAuthServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Register",
			Handler:    unaryHandler(HabitAuthService_Register_FullMethodName, HabitAuthServiceServer.Register),
		},
		{
			MethodName: "Login",
			Handler:    unaryHandler(HabitAuthService_Login_FullMethodName, HabitAuthServiceServer.Login),
		},
		{
			MethodName: "Logout",
			Handler:    unaryHandler(HabitAuthService_Logout_FullMethodName, HabitAuthServiceServer.Logout),
		},
		{
			MethodName: "GetProfile",
			Handler:    unaryHandler(HabitAuthService_GetProfile_FullMethodName, HabitAuthServiceServer.GetProfile),
		},
		{
			MethodName: "WhoAmI",
			Handler:    unaryHandler(HabitAuthService_WhoAmI_FullMethodName, HabitAuthServiceServer.WhoAmI),
		},
		{
			MethodName: "CheckToken",
			Handler:    unaryHandler(HabitAuthService_CheckToken_FullMethodName, HabitAuthServiceServer.CheckToken),
		},
		{
			MethodName: "Ping",
			Handler:    unaryHandler(HabitAuthService_Ping_FullMethodName, HabitAuthServiceServer.Ping),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "habitauth/api",
}

// HabitAuthServiceClient is the client API for HabitAuthService. Every call
// uses the JSON codec.
type HabitAuthServiceClient interface {
	Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error)
	Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error)
	GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error)
	WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error)
	CheckToken(ctx context.Context, in *CheckTokenRequest, opts ...grpc.CallOption) (*CheckTokenResponse, error)
	Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error)
}

type habitAuthServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewHabitAuthServiceClient(cc grpc.ClientConnInterface) HabitAuthServiceClient {
	return &habitAuthServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in any, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *habitAuthServiceClient) Register(ctx context.Context, in *RegisterRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, HabitAuthService_Register_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) Login(ctx context.Context, in *LoginRequest, opts ...grpc.CallOption) (*TokenResponse, error) {
	return invoke[TokenResponse](ctx, c.cc, HabitAuthService_Login_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) Logout(ctx context.Context, in *LogoutRequest, opts ...grpc.CallOption) (*LogoutResponse, error) {
	return invoke[LogoutResponse](ctx, c.cc, HabitAuthService_Logout_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) GetProfile(ctx context.Context, in *ProfileRequest, opts ...grpc.CallOption) (*ProfileResponse, error) {
	return invoke[ProfileResponse](ctx, c.cc, HabitAuthService_GetProfile_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) WhoAmI(ctx context.Context, in *WhoAmIRequest, opts ...grpc.CallOption) (*WhoAmIResponse, error) {
	return invoke[WhoAmIResponse](ctx, c.cc, HabitAuthService_WhoAmI_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) CheckToken(ctx context.Context, in *CheckTokenRequest, opts ...grpc.CallOption) (*CheckTokenResponse, error) {
	return invoke[CheckTokenResponse](ctx, c.cc, HabitAuthService_CheckToken_FullMethodName, in, opts)
}

func (c *habitAuthServiceClient) Ping(ctx context.Context, in *PingRequest, opts ...grpc.CallOption) (*PingResponse, error) {
	return invoke[PingResponse](ctx, c.cc, HabitAuthService_Ping_FullMethodName, in, opts)
}
