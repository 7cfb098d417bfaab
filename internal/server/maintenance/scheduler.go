// Package maintenance runs the server's time-driven background work: an
// interval tick for token cleanup and transient resets, and a daily tick for
// the full periodic reset.
package maintenance

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/config"
)

// Job is a named unit of maintenance work. Jobs must be idempotent since they
// run concurrently with request handling and without store locks.
type Job struct {
	Name string
	Run  func(ctx context.Context) error
}

// Scheduler fires the interval jobs every cfg.MaintenanceInterval and the
// daily jobs at cfg.DailyResetHour:cfg.DailyResetMinute local time. Jobs of a
// tick run in order; a failing or panicking job is logged and the remaining
// jobs and later ticks still run. A tick that would overlap a still-running
// one of the same cadence is skipped. Each job run is bounded by
// cfg.MaintenanceJobTimeout; a job that hits it counts as failed.
type Scheduler struct {
	cron         *cron.Cron
	intervalSpec string
	dailySpec    string
	intervalJobs []Job
	dailyJobs    []Job
	jobTimeout   time.Duration
	log          logging.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
}

func NewScheduler(cfg *config.Config, intervalJobs, dailyJobs []Job, log logging.Logger) *Scheduler {
	log = log.With("module", "maintenance")
	cl := cronLogger{log: log}

	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		intervalSpec: fmt.Sprintf("@every %s", cfg.MaintenanceInterval),
		dailySpec:    fmt.Sprintf("%d %d * * *", cfg.DailyResetMinute, cfg.DailyResetHour),
		intervalJobs: intervalJobs,
		dailyJobs:    dailyJobs,
		jobTimeout:   cfg.MaintenanceJobTimeout,
		log:          log,
	}
}

// Start registers both cadences and starts the timer. ctx bounds every job
// run; it is cancelled by Stop.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	ctx, cancel := context.WithCancel(ctx)

	if _, err := s.cron.AddFunc(s.intervalSpec, func() { s.RunInterval(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("interval schedule %q: %w", s.intervalSpec, err)
	}
	if _, err := s.cron.AddFunc(s.dailySpec, func() { s.RunDaily(ctx) }); err != nil {
		cancel()
		return fmt.Errorf("daily schedule %q: %w", s.dailySpec, err)
	}

	s.cancel = cancel
	s.started = true
	s.cron.Start()

	s.log.Info(ctx, "maintenance scheduler started", "interval", s.intervalSpec, "daily", s.dailySpec)
	return nil
}

// Stop halts the timer, cancels the context of running jobs and waits for
// them to return.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.cancel()
	<-s.cron.Stop().Done()
	s.started = false
	s.log.Info(context.Background(), "maintenance scheduler stopped")
}

// RunInterval runs the interval jobs once, in order.
func (s *Scheduler) RunInterval(ctx context.Context) {
	s.runJobs(ctx, "interval", s.intervalJobs)
}

// RunDaily runs the daily jobs once, in order.
func (s *Scheduler) RunDaily(ctx context.Context) {
	s.runJobs(ctx, "daily", s.dailyJobs)
}

func (s *Scheduler) runJobs(ctx context.Context, tick string, jobs []Job) {
	for _, job := range jobs {
		if ctx.Err() != nil {
			s.log.Warn(ctx, "maintenance tick aborted", "tick", tick, "error", ctx.Err())
			return
		}
		s.runJob(ctx, tick, job)
	}
}

func (s *Scheduler) runJob(ctx context.Context, tick string, job Job) {
	start := time.Now()

	defer func() {
		if p := recover(); p != nil {
			s.log.Error(ctx, "maintenance job panicked", "tick", tick, "job", job.Name, "panic", p)
		}
	}()

	if s.jobTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.jobTimeout)
		defer cancel()
	}

	if err := job.Run(ctx); err != nil {
		s.log.Error(ctx, "maintenance job failed", "tick", tick, "job", job.Name, "error", err)
		return
	}

	s.log.Debug(ctx, "maintenance job done", "tick", tick, "job", job.Name, "took", time.Since(start))
}

// cronLogger routes the cron library's own messages into logging.Logger.
type cronLogger struct {
	log logging.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...interface{}) {
	c.log.Debug(context.Background(), msg, keysAndValues...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	c.log.Error(context.Background(), msg, append(keysAndValues, "error", err)...)
}
