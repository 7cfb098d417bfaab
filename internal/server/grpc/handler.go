package grpc

import (
	"context"
	"errors"
	"net"

	"google.golang.org/grpc/peer"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/api"
)

func (s *GRPCServer) Register(ctx context.Context, req *api.RegisterRequest) (*api.TokenResponse, error) {

	s.logger.Info(ctx, "Registration request", "username", req.Username)

	if err := s.allow(ctx, "register:"+clientKey(ctx, req.Username)); err != nil {
		return nil, err
	}

	token, err := s.sessions.Register(ctx, req.Username, req.Password, req.Email)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.TokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt.Unix()}, nil
}

func (s *GRPCServer) Login(ctx context.Context, req *api.LoginRequest) (*api.TokenResponse, error) {

	if err := s.allow(ctx, "login:"+clientKey(ctx, req.Username)); err != nil {
		return nil, err
	}

	token, err := s.sessions.Login(ctx, req.Username, req.Password)
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.TokenResponse{Token: token.Token, ExpiresAt: token.ExpiresAt.Unix()}, nil
}

func (s *GRPCServer) Logout(ctx context.Context, req *api.LogoutRequest) (*api.LogoutResponse, error) {

	if err := s.sessions.Logout(ctx, authorizationFromContext(ctx)); err != nil {
		return nil, toStatus(err)
	}

	return &api.LogoutResponse{Status: "Logged out"}, nil
}

func (s *GRPCServer) GetProfile(ctx context.Context, req *api.ProfileRequest) (*api.ProfileResponse, error) {

	user, err := s.sessions.GetProfile(ctx, authorizationFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.ProfileResponse{
		ID:       user.ID,
		Username: user.UserName,
		Email:    user.Email,
		JoinedAt: user.JoinedAt.Unix(),
		XP:       user.XP,
	}, nil
}

func (s *GRPCServer) WhoAmI(ctx context.Context, req *api.WhoAmIRequest) (*api.WhoAmIResponse, error) {

	p, err := s.sessions.ResolveSession(ctx, authorizationFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.WhoAmIResponse{UserID: p.UserID, Username: p.UserName, ExpiresAt: p.ExpiresAt.Unix()}, nil
}

func (s *GRPCServer) CheckToken(ctx context.Context, req *api.CheckTokenRequest) (*api.CheckTokenResponse, error) {

	expiresAt, err := s.sessions.CheckExpiry(ctx, authorizationFromContext(ctx))
	if err != nil {
		return nil, toStatus(err)
	}

	return &api.CheckTokenResponse{ExpiresAt: expiresAt.Unix()}, nil
}

func (s *GRPCServer) Ping(ctx context.Context, req *api.PingRequest) (*api.PingResponse, error) {

	return &api.PingResponse{Status: "OK"}, nil

}

// allow consumes one attempt for key. An unreachable limiter is logged and
// the request proceeds.
func (s *GRPCServer) allow(ctx context.Context, key string) error {
	err := s.limiter.Allow(ctx, key)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrRateLimited):
		s.logger.Warn(ctx, "rate limited", "key", key)
		return toStatus(err)
	default:
		s.logger.Warn(ctx, "rate limiter unavailable", "error", err)
		return nil
	}
}

// clientKey identifies the calling client by its peer host. Calls without a
// peer, such as in-process ones, fall back to the given name.
func clientKey(ctx context.Context, fallback string) string {
	p, ok := peer.FromContext(ctx)
	if !ok || p.Addr == nil {
		return fallback
	}
	addr := p.Addr.String()
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
