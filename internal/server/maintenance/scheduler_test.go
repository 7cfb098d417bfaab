package maintenance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/habitauth/internal/logging"
	"github.com/dmitrijs2005/habitauth/internal/server/config"
)

type recorder struct {
	mu   sync.Mutex
	runs []string
}

func (r *recorder) job(name string, err error) Job {
	return Job{Name: name, Run: func(ctx context.Context) error {
		r.mu.Lock()
		r.runs = append(r.runs, name)
		r.mu.Unlock()
		return err
	}}
}

func (r *recorder) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.runs...)
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return cfg
}

func TestRunInterval_OrderAndFailureIsolation(t *testing.T) {
	rec := &recorder{}
	panicking := Job{Name: "panics", Run: func(ctx context.Context) error { panic("kaboom") }}

	s := NewScheduler(testConfig(),
		[]Job{rec.job("cleanup", errors.New("db down")), panicking, rec.job("reset", nil)},
		nil, logging.Nop())

	require.NotPanics(t, func() { s.RunInterval(context.Background()) })
	assert.Equal(t, []string{"cleanup", "reset"}, rec.names())

	// a failed tick does not poison the next one
	s.RunInterval(context.Background())
	assert.Equal(t, []string{"cleanup", "reset", "cleanup", "reset"}, rec.names())
}

func TestRunDaily(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(testConfig(), []Job{rec.job("interval", nil)}, []Job{rec.job("daily", nil)}, logging.Nop())

	s.RunDaily(context.Background())
	assert.Equal(t, []string{"daily"}, rec.names())
}

func TestRunJobs_StopsOnCancelledContext(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(testConfig(), []Job{rec.job("a", nil), rec.job("b", nil)}, nil, logging.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s.RunInterval(ctx)
	assert.Empty(t, rec.names())
}

func TestNewScheduler_Specs(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceInterval = 90 * time.Second
	cfg.DailyResetHour = 3
	cfg.DailyResetMinute = 30

	s := NewScheduler(cfg, nil, nil, logging.Nop())
	assert.Equal(t, "@every 1m30s", s.intervalSpec)
	assert.Equal(t, "30 3 * * *", s.dailySpec)
}

func TestStartStop(t *testing.T) {
	s := NewScheduler(testConfig(), nil, nil, logging.Nop())

	require.NoError(t, s.Start(context.Background()))
	assert.Len(t, s.cron.Entries(), 2)
	assert.Error(t, s.Start(context.Background()))

	s.Stop()
	s.Stop()
}

func TestStart_BadSpec(t *testing.T) {
	cfg := testConfig()
	cfg.DailyResetHour = 99

	s := NewScheduler(cfg, nil, nil, logging.Nop())
	assert.Error(t, s.Start(context.Background()))
}

func TestStart_IntervalFires(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceInterval = time.Second

	rec := &recorder{}
	s := NewScheduler(cfg, []Job{rec.job("tick", nil)}, nil, logging.Nop())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return len(rec.names()) > 0 }, 3*time.Second, 50*time.Millisecond)
}

func TestStop_CancelsRunningJob(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceInterval = time.Second

	started := make(chan struct{})
	var once sync.Once
	waiting := Job{Name: "waits", Run: func(ctx context.Context) error {
		once.Do(func() { close(started) })
		<-ctx.Done()
		return ctx.Err()
	}}

	s := NewScheduler(cfg, []Job{waiting}, nil, logging.Nop())
	require.NoError(t, s.Start(context.Background()))

	select {
	case <-started:
	case <-time.After(3 * time.Second):
		t.Fatal("job did not start")
	}

	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(3 * time.Second):
		t.Fatal("Stop did not return while a job was running")
	}
}

func TestRunJob_TimeoutLetsLaterJobsRun(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceJobTimeout = 50 * time.Millisecond

	rec := &recorder{}
	var hungErr error
	hung := Job{Name: "hung", Run: func(ctx context.Context) error {
		<-ctx.Done()
		hungErr = ctx.Err()
		return hungErr
	}}

	s := NewScheduler(cfg, []Job{hung, rec.job("reset", nil)}, nil, logging.Nop())
	s.RunInterval(context.Background())

	assert.ErrorIs(t, hungErr, context.DeadlineExceeded)
	assert.Equal(t, []string{"reset"}, rec.names())
}

func TestStart_LaterTicksFireAfterHungJob(t *testing.T) {
	cfg := testConfig()
	cfg.MaintenanceInterval = time.Second
	cfg.MaintenanceJobTimeout = 200 * time.Millisecond

	rec := &recorder{}
	hung := Job{Name: "hung", Run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	s := NewScheduler(cfg, []Job{hung, rec.job("reset", nil)}, nil, logging.Nop())
	require.NoError(t, s.Start(context.Background()))
	defer s.Stop()

	assert.Eventually(t, func() bool { return len(rec.names()) >= 2 }, 4500*time.Millisecond, 50*time.Millisecond)
}
