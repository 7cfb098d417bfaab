// Package server initializes and runs the habitauth server: it opens the
// database, applies migrations, wires the session services and serves them
// over gRPC while the maintenance scheduler runs in the background.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/config"
	"github.com/dmitrijs2005/habitauth/internal/server/maintenance"
	"github.com/dmitrijs2005/habitauth/internal/server/ratelimit"
	"github.com/dmitrijs2005/habitauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/habitauth/internal/server/services"

	gs "github.com/dmitrijs2005/habitauth/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	redis     *redis.Client
	sessions  *services.SessionService
	limiter   ratelimit.Limiter
	scheduler *maintenance.Scheduler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	db, err := repomanager.OpenPostgres(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	app := &App{config: c, logger: logger, db: db}

	app.limiter = ratelimit.Nop{}
	if c.RedisAddr != "" {
		app.redis = redis.NewClient(&redis.Options{Addr: c.RedisAddr})
		app.limiter = ratelimit.NewRedisLimiter(app.redis, c.LoginRateLimit, c.LoginRateWindow)
	}

	app.sessions = services.NewSessionService(db, rm, c, logger)

	jobsLogger := logger.With("module", "maintenance_jobs")
	app.scheduler = maintenance.NewScheduler(c,
		[]maintenance.Job{
			maintenance.TokenCleanup(db, rm, time.Now, jobsLogger),
			maintenance.ResetPotentialHabits(db, rm, jobsLogger),
		},
		[]maintenance.Job{
			maintenance.ResetDailyHabits(db, rm, jobsLogger),
		},
		logger)

	return app, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) {

	s := gs.NewGRPCServer(app.config.EndpointAddrGRPC, app.logger, app.sessions, app.limiter)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or the gRPC server fails,
// then stops the scheduler and releases the store connections.
func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	if err := app.scheduler.Start(ctx); err != nil {
		app.logger.Error(ctx, "scheduler start failed", "error", err)
		app.close(ctx)
		return
	}

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startGRPCServer(ctx, cancelFunc)
	}()

	wg.Wait()

	app.scheduler.Stop()
	app.close(ctx)
	app.logger.Info(context.Background(), "App stopped")
}

func (app *App) close(ctx context.Context) {
	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Warn(ctx, "redis close failed", "error", err)
		}
	}
	if err := app.db.Close(); err != nil {
		app.logger.Warn(ctx, "db close failed", "error", err)
	}
}
