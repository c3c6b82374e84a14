// Package scheduler runs the subscription maintenance jobs using gocron v2.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"

	"github.com/tiffin-inc/tiffin/internal/application/subscription/usecases"
	"github.com/tiffin-inc/tiffin/internal/shared/biztime"
	"github.com/tiffin-inc/tiffin/internal/shared/logger"
)

const (
	jobExpire    = "subscription-expire"
	jobAutoRenew = "subscription-auto-renew"

	defaultInterval = 24 * time.Hour
	runTimeout      = 10 * time.Minute
)

// BatchJob processes one batch of subscriptions per call.
type BatchJob interface {
	Execute(ctx context.Context) (*usecases.BatchResult, error)
}

// SchedulerManager owns a single gocron scheduler for all background jobs.
// Runs of the same job never overlap; Stop cancels runs in flight.
type SchedulerManager struct {
	scheduler gocron.Scheduler
	logger    logger.Interface

	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	started bool
}

func NewSchedulerManager(log logger.Interface) (*SchedulerManager, error) {
	s, err := gocron.NewScheduler(gocron.WithLocation(biztime.Location()))
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &SchedulerManager{scheduler: s, logger: log, ctx: ctx, cancel: cancel}, nil
}

func (m *SchedulerManager) RegisterExpiryJob(job BatchJob, interval time.Duration) error {
	return m.register(jobExpire, job, interval)
}

func (m *SchedulerManager) RegisterAutoRenewJob(job BatchJob, interval time.Duration) error {
	return m.register(jobAutoRenew, job, interval)
}

func (m *SchedulerManager) register(name string, job BatchJob, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultInterval
	}
	_, err := m.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(m.run, name, job),
		gocron.WithName(name),
		gocron.WithTags("subscription"),
		gocron.WithStartAt(gocron.WithStartImmediately()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return err
	}
	m.logger.Infow("job registered", "job", name, "every", interval.String())
	return nil
}

func (m *SchedulerManager) run(name string, job BatchJob) {
	ctx, cancel := context.WithTimeout(m.ctx, runTimeout)
	defer cancel()

	start := time.Now()
	res, err := job.Execute(ctx)
	took := time.Since(start)
	switch {
	case err != nil && m.ctx.Err() != nil:
		m.logger.Debugw("job interrupted by shutdown", "job", name)
	case err != nil:
		m.logger.Errorw("job failed", "job", name, "error", err, "took", took)
	case res.Processed == 0:
		m.logger.Debugw("job idle", "job", name, "took", took)
	default:
		m.logger.Infow("job finished",
			"job", name,
			"processed", res.Processed,
			"succeeded", res.Succeeded,
			"skipped", res.Skipped,
			"failed", res.Failed,
			"took", took,
		)
	}
}

func (m *SchedulerManager) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.started {
		return
	}
	m.scheduler.Start()
	m.started = true
	m.logger.Infow("scheduler started", "jobs", len(m.scheduler.Jobs()))
}

// Stop cancels running jobs and waits for them to return. A stopped manager
// cannot be restarted.
func (m *SchedulerManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.started {
		return nil
	}
	m.cancel()
	err := m.scheduler.Shutdown()
	m.started = false
	if err != nil {
		m.logger.Errorw("scheduler shutdown failed", "error", err)
		return err
	}
	m.logger.Infow("scheduler stopped")
	return nil
}

func (m *SchedulerManager) IsStarted() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.started
}

func (m *SchedulerManager) Jobs() []gocron.Job {
	return m.scheduler.Jobs()
}
