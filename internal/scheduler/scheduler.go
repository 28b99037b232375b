// Package scheduler drives repeated monitoring cycles on a randomized
// interval, guaranteeing that cycles never overlap.
package scheduler

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/platea/sector-monitor/internal/models"
)

// CycleRunner runs one full monitoring cycle over all events.
type CycleRunner interface {
	CheckAll(ctx context.Context) []models.CycleResult
}

// Scheduler re-randomizes the idle delay before every cycle, drawn
// uniformly from [intervalMin, intervalMax], so the polling cadence has
// no fixed period. A compare-and-swap guard drops triggers that fire
// while a cycle is still running.
type Scheduler struct {
	log         *slog.Logger
	runner      CycleRunner
	intervalMin time.Duration
	intervalMax time.Duration

	running atomic.Bool
	cancel  context.CancelFunc
	done    chan struct{}
	started sync.Once
	stopped sync.Once
}

// New creates a Scheduler.
func New(log *slog.Logger, runner CycleRunner, intervalMin, intervalMax time.Duration) *Scheduler {
	return &Scheduler{
		log:         log,
		runner:      runner,
		intervalMin: intervalMin,
		intervalMax: intervalMax,
		done:        make(chan struct{}),
	}
}

// Start launches the background loop. It returns immediately; cycles run
// on the scheduler's own goroutine until Stop is called or the parent
// context is cancelled.
func (s *Scheduler) Start(ctx context.Context) {
	s.started.Do(func() {
		runCtx, cancel := context.WithCancel(ctx)
		s.cancel = cancel

		s.log.InfoContext(ctx, "Scheduler starting",
			"interval_min", s.intervalMin, "interval_max", s.intervalMax)

		go s.loop(runCtx)
	})
}

// loop sleeps a freshly drawn interval, runs one cycle, repeats.
func (s *Scheduler) loop(ctx context.Context) {
	defer close(s.done)

	for {
		interval := randomDuration(s.intervalMin, s.intervalMax)
		s.log.DebugContext(ctx, "Next cycle scheduled", "in", interval)

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			s.log.InfoContext(ctx, "Scheduler loop stopped", "reason", ctx.Err())
			return
		case <-timer.C:
		}

		s.trigger(ctx)
	}
}

// trigger runs one cycle unless another one is already in flight, in
// which case the trigger is dropped.
func (s *Scheduler) trigger(ctx context.Context) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.WarnContext(ctx, "Previous cycle still running, dropping trigger")
		return
	}
	defer s.running.Store(false)

	s.runner.CheckAll(ctx)
}

// RunOnce runs exactly one cycle synchronously, honoring the same
// overlap guard as the background loop. Returns false when a cycle was
// already in flight and nothing ran.
func (s *Scheduler) RunOnce(ctx context.Context) ([]models.CycleResult, bool) {
	if !s.running.CompareAndSwap(false, true) {
		s.log.WarnContext(ctx, "Cycle already in flight, one-shot run skipped")
		return nil, false
	}
	defer s.running.Store(false)

	return s.runner.CheckAll(ctx), true
}

// Stop cancels the loop and waits for an in-flight cycle to finish. Safe
// to call more than once; a Scheduler that was never started stops
// immediately.
func (s *Scheduler) Stop() {
	s.stopped.Do(func() {
		if s.cancel == nil {
			close(s.done)
			return
		}
		s.cancel()
		<-s.done
		s.log.Info("Scheduler stopped")
	})
}

// randomDuration draws uniformly from [min, max].
func randomDuration(minDur, maxDur time.Duration) time.Duration {
	if maxDur <= minDur {
		return minDur
	}

	return minDur + rand.N(maxDur-minDur)
}
