// ABOUTME: Periodic trigger for pipeline runs with a warm-up delay after startup
// ABOUTME: Overlapping ticks are skipped and panics inside a run are recovered and logged

package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"time"

	"ai-news-api/core/interfaces"
	"ai-news-api/core/pipeline"
)

// Runner executes one pipeline cycle
type Runner interface {
	Run(ctx context.Context) (pipeline.RunResult, error)
}

// Config holds scheduler timing
type Config struct {
	Interval    time.Duration
	WarmupDelay time.Duration
}

// Scheduler fires a run after WarmupDelay and then every Interval
type Scheduler struct {
	runner Runner
	cfg    Config
	logger interfaces.Logger

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	running bool
}

// New creates a scheduler
func New(runner Runner, cfg Config, logger interfaces.Logger) (*Scheduler, error) {
	if cfg.Interval <= 0 {
		return nil, fmt.Errorf("scheduler interval must be positive, got %s", cfg.Interval)
	}
	if cfg.WarmupDelay < 0 {
		cfg.WarmupDelay = 0
	}
	if logger == nil {
		logger = interfaces.NopLogger{}
	}
	return &Scheduler{runner: runner, cfg: cfg, logger: logger}, nil
}

// Start begins scheduling. Calling Start on a running scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		return
	}

	ctx, s.cancel = context.WithCancel(ctx)
	s.running = true

	s.wg.Add(1)
	go s.loop(ctx)

	s.logger.Info("Scheduler started", map[string]interface{}{
		"interval":     s.cfg.Interval.String(),
		"warmup_delay": s.cfg.WarmupDelay.String(),
	})
}

// Stop cancels any in-flight run and waits for it to return
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info("Scheduler stopped", nil)
}

func (s *Scheduler) loop(ctx context.Context) {
	defer s.wg.Done()

	warmup := time.NewTimer(s.cfg.WarmupDelay)
	defer warmup.Stop()

	select {
	case <-ctx.Done():
		return
	case <-warmup.C:
		s.fire(ctx)
	}

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fire(ctx)
		}
	}
}

// fire runs the pipeline without blocking the tick loop
func (s *Scheduler) fire(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.RunOnce(ctx)
	}()
}

// RunOnce executes one run synchronously, absorbing every failure
func (s *Scheduler) RunOnce(ctx context.Context) {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("Pipeline run panicked", map[string]interface{}{
				"panic": fmt.Sprint(rec),
				"stack": string(debug.Stack()),
			})
		}
	}()

	_, err := s.runner.Run(ctx)
	switch {
	case err == nil:
	case errors.Is(err, pipeline.ErrRunInProgress):
		s.logger.Info("Skipping tick, previous run still in progress", nil)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		s.logger.Info("Pipeline run cancelled", map[string]interface{}{
			"error": err.Error(),
		})
	default:
		s.logger.Error("Pipeline run failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
}
