package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Scheduler runs the cleanup job on a fixed interval. An interval <= 0
// disables the loop entirely.
type Scheduler struct {
	cleanup  *CleanupJob
	interval time.Duration
	logger   *slog.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	ticker   *time.Ticker

	mu        sync.Mutex
	isRunning bool
}

func NewScheduler(cleanup *CleanupJob, interval time.Duration, logger *slog.Logger) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cleanup:  cleanup,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start begins the cleanup loop in the background. The first pass runs
// immediately so a long-stopped instance prunes on boot.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.interval <= 0 {
		s.logger.Info("Background cleanup is disabled")
		return
	}
	if s.isRunning {
		return
	}
	s.isRunning = true
	s.ticker = time.NewTicker(s.interval)

	go func() {
		s.runSafely()
		for {
			select {
			case <-s.ticker.C:
				s.runSafely()
			case <-s.ctx.Done():
				s.logger.Info("Cleanup job stopped")
				return
			}
		}
	}()

	s.logger.Info("Background cleanup started", slog.Duration("interval", s.interval))
}

func (s *Scheduler) runSafely() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic recovered in background job", slog.Any("panic", r))
		}
	}()

	if err := s.cleanup.Run(); err != nil {
		s.logger.Error("Error executing cleanup job", slog.Any("error", err))
	}
}

// Stop halts the loop. Safe to call before Start or more than once.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		s.cancel()
		return
	}
	s.ticker.Stop()
	s.cancel()
	s.isRunning = false
	s.logger.Info("Background cleanup stopped")
}

// IsRunning reports whether the loop is active.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isRunning
}
