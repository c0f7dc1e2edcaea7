// Package scheduler runs background maintenance (catalog refresh) on cron
// specs.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"internmatch-engine/internal/logger"
)

type Task func(ctx context.Context) error

type Scheduler struct {
	cron    *cron.Cron
	log     *logger.Logger
	timeout time.Duration

	mu    sync.Mutex
	tasks map[string]Task
}

// New returns a stopped scheduler. Each run gets its own context bounded by
// timeout (0 means no bound).
func New(log *logger.Logger, timeout time.Duration) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithChain(cron.Recover(cron.DiscardLogger), cron.SkipIfStillRunning(cron.DiscardLogger))),
		log:     log,
		timeout: timeout,
		tasks:   make(map[string]Task),
	}
}

// Add registers task under spec ("@every 15m", "0 */6 * * *"). An empty
// spec is a no-op so callers can pass the config value straight through.
func (s *Scheduler) Add(ctx context.Context, name, spec string, task Task) error {
	if spec == "" {
		s.log.Info("scheduler task disabled", "task", name)
		return nil
	}
	_, err := s.cron.AddFunc(spec, func() { s.run(ctx, name, task) })
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	s.mu.Lock()
	s.tasks[name] = task
	s.mu.Unlock()
	s.log.Info("scheduler task added", "task", name, "spec", spec)
	return nil
}

// RunNow runs a registered task synchronously.
func (s *Scheduler) RunNow(ctx context.Context, name string) error {
	s.mu.Lock()
	task, ok := s.tasks[name]
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("unknown task %q", name)
	}
	return s.run(ctx, name, task)
}

func (s *Scheduler) run(ctx context.Context, name string, task Task) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}
	start := time.Now()
	err := task(ctx)
	if err != nil {
		s.log.Error("scheduled task failed", "task", name, "error", err, "dur_ms", time.Since(start).Milliseconds())
		return err
	}
	s.log.Debug("scheduled task done", "task", name, "dur_ms", time.Since(start).Milliseconds())
	return nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop stops firing and waits for running tasks.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
