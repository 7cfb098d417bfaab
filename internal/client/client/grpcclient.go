// Package client is the CLI's gRPC client for the habitauth service. It keeps
// the current session token in memory and attaches it to protected calls.
package client

import (
	"context"
	"fmt"
	"sync"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/dmitrijs2005/habitauth/internal/common"
	"github.com/dmitrijs2005/habitauth/internal/api"
)

type GRPCClient struct {
	endpointURL string
	timeout     time.Duration
	conn        *grpc.ClientConn
	client      api.HabitAuthServiceClient

	mu    sync.RWMutex
	token string
}

func withAuthorization(ctx context.Context, token string) context.Context {
	md, _ := metadata.FromOutgoingContext(ctx)
	md = md.Copy()
	if md == nil {
		md = metadata.MD{}
	}
	md.Set(common.AuthorizationHeaderName, common.BearerPrefix+token)

	return metadata.NewOutgoingContext(ctx, md)
}

func (s *GRPCClient) authorizationInterceptor(
	ctx context.Context,
	method string,
	req, reply interface{},
	cc *grpc.ClientConn,
	invoker grpc.UnaryInvoker,
	opts ...grpc.CallOption,
) error {

	if token := s.Token(); token != "" {
		ctx = withAuthorization(ctx, token)
	}

	return invoker(ctx, method, req, reply, cc, opts...)
}

// NewHabitAuthClient connects lazily to endpointURL. Extra dial options are
// appended after the defaults.
func NewHabitAuthClient(endpointURL string, timeout time.Duration, opts ...grpc.DialOption) (*GRPCClient, error) {
	c := &GRPCClient{endpointURL: endpointURL, timeout: timeout}

	dialOpts := append([]grpc.DialOption{
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithUnaryInterceptor(c.authorizationInterceptor),
	}, opts...)

	conn, err := grpc.NewClient(endpointURL, dialOpts...)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	c.client = api.NewHabitAuthServiceClient(conn)
	return c, nil
}

func (s *GRPCClient) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *GRPCClient) LoggedIn() bool {
	return s.Token() != ""
}

func (s *GRPCClient) setToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

func (s *GRPCClient) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Register creates the account and keeps the returned session token.
func (s *GRPCClient) Register(ctx context.Context, userName, password, email string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Register(ctx, &api.RegisterRequest{Username: userName, Password: password, Email: email})
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.Token)
	return nil
}

func (s *GRPCClient) Login(ctx context.Context, userName, password string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.Login(ctx, &api.LoginRequest{Username: userName, Password: password})
	if err != nil {
		return s.mapError(err)
	}

	s.setToken(resp.Token)
	return nil
}

// Logout revokes the current token on the server and forgets it locally.
func (s *GRPCClient) Logout(ctx context.Context) error {
	if !s.LoggedIn() {
		return ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Logout(ctx, &api.LogoutRequest{}); err != nil {
		return s.mapError(err)
	}

	s.setToken("")
	return nil
}

func (s *GRPCClient) Profile(ctx context.Context) (*api.ProfileResponse, error) {
	if !s.LoggedIn() {
		return nil, ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.GetProfile(ctx, &api.ProfileRequest{})
	if err != nil {
		return nil, s.mapError(err)
	}
	return resp, nil
}

// CheckToken returns the expiry embedded in the current token.
func (s *GRPCClient) CheckToken(ctx context.Context) (time.Time, error) {
	if !s.LoggedIn() {
		return time.Time{}, ErrNotLoggedIn
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	resp, err := s.client.CheckToken(ctx, &api.CheckTokenRequest{})
	if err != nil {
		return time.Time{}, s.mapError(err)
	}
	return time.Unix(resp.ExpiresAt, 0), nil
}

func (s *GRPCClient) Ping(ctx context.Context) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if _, err := s.client.Ping(ctx, &api.PingRequest{}); err != nil {
		return s.mapError(err)
	}
	return nil
}

func (s *GRPCClient) Close() error {
	return s.conn.Close()
}

func (s *GRPCClient) mapError(err error) error {
	if err == nil {
		return nil
	}
	st, _ := status.FromError(err)
	switch st.Code() {
	case codes.Unauthenticated, codes.PermissionDenied:
		return fmt.Errorf("%w: %s", ErrUnauthorized, st.Message())
	case codes.AlreadyExists:
		return ErrAlreadyExists
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", ErrInvalidInput, st.Message())
	case codes.ResourceExhausted:
		return ErrRateLimited
	case codes.Unavailable, codes.DeadlineExceeded:
		return ErrUnavailable
	default:
		return fmt.Errorf("rpc error: %w", err)
	}
}
