package grpc

import (
	"context"
	"net"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/api"
	"github.com/dmitrijs2005/habitauth/internal/server/models"
	"github.com/dmitrijs2005/habitauth/internal/server/ratelimit"
)

// sessionSvc is the part of services.SessionService the transport needs.
type sessionSvc interface {
	Register(ctx context.Context, username, password, email string) (*models.Token, error)
	Login(ctx context.Context, username, password string) (*models.Token, error)
	Logout(ctx context.Context, rawAuth string) error
	ResolveSession(ctx context.Context, rawAuth string) (*models.Principal, error)
	GetProfile(ctx context.Context, rawAuth string) (*models.User, error)
	CheckExpiry(ctx context.Context, rawAuth string) (time.Time, error)
}

type GRPCServer struct {
	api.UnimplementedHabitAuthServiceServer
	address  string
	sessions sessionSvc
	limiter  ratelimit.Limiter
	health   *health.Server
	logger   logging.Logger
}

func NewGRPCServer(a string, l logging.Logger, ss sessionSvc, limiter ratelimit.Limiter) *GRPCServer {
	if limiter == nil {
		limiter = ratelimit.Nop{}
	}
	return &GRPCServer{
		address:  a,
		logger:   l.With("module", "grpc_server"),
		sessions: ss,
		limiter:  limiter,
		health:   health.NewServer(),
	}
}

// newServer builds the grpc.Server with the service, the interceptors and
// the standard health service registered.
func (s *GRPCServer) newServer() *grpc.Server {
	srv := grpc.NewServer(grpc.ChainUnaryInterceptor(s.authorizationInterceptor))

	api.RegisterHabitAuthServiceServer(srv, s)
	healthpb.RegisterHealthServer(srv, s.health)
	s.health.SetServingStatus(api.ServiceName, healthpb.HealthCheckResponse_SERVING)

	return srv
}

func (s *GRPCServer) Run(ctx context.Context) error {

	// announces address
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	return s.Serve(ctx, listen)
}

// Serve accepts connections on listen until ctx is cancelled, then stops
// gracefully.
func (s *GRPCServer) Serve(ctx context.Context, listen net.Listener) error {
	srv := s.newServer()

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping gRPC server...")
		s.health.Shutdown()
		srv.GracefulStop()
	}()

	s.logger.Info(ctx, "Starting gRPC server", "address", listen.Addr().String())

	// starts accepting incoming connections
	if err := srv.Serve(listen); err != nil {
		return err
	}

	return nil
}
