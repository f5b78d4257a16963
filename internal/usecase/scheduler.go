package usecase

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"FundPulse/internal/domain/models"
	drepo "FundPulse/internal/domain/repository"
	"FundPulse/pkg/logger"
)

// Cycle is one unit of scheduled work.
type Cycle interface {
	RunCycle(ctx context.Context) (*models.MarketSummary, error)
}

// Scheduler runs a Cycle on a fixed interval. A tick that fires while a cycle
// is still running is skipped and counted, cycles never overlap.
type Scheduler struct {
	cycle    Cycle
	interval time.Duration
	metrics  drepo.Metrics
	log      *logger.Logger

	inFlight atomic.Bool
	wg       sync.WaitGroup
}

func NewScheduler(cycle Cycle, interval time.Duration, metrics drepo.Metrics, log *logger.Logger) *Scheduler {
	return &Scheduler{cycle: cycle, interval: interval, metrics: metrics, log: log}
}

// Run fires the first cycle immediately, then one per interval, until ctx is
// done. It waits for the in-flight cycle before returning.
func (s *Scheduler) Run(ctx context.Context) error {
	s.log.Info("scheduler started", logger.Duration("interval", s.interval))
	s.Trigger(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.log.Info("scheduler stopped")
			return nil
		case <-ticker.C:
			s.Trigger(ctx)
		}
	}
}

// Trigger starts a cycle in the background unless one is already running.
// It reports whether a cycle was started.
func (s *Scheduler) Trigger(ctx context.Context) bool {
	if !s.inFlight.CompareAndSwap(false, true) {
		s.metrics.RecordSkippedTick()
		s.log.Warn("cycle still running, tick skipped")
		return false
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer s.inFlight.Store(false)
		// Failures are logged and counted by the cycle itself.
		_, _ = s.cycle.RunCycle(ctx)
	}()
	return true
}

// Busy reports whether a cycle is running.
func (s *Scheduler) Busy() bool { return s.inFlight.Load() }

// Wait blocks until the running cycle, if any, has finished.
func (s *Scheduler) Wait() { s.wg.Wait() }
