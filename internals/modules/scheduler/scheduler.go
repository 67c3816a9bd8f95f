package scheduler

import (
	"context"
	"sync"
	"time"

	"uptime-monitor/config"
	"uptime-monitor/internals/modules/check"

	"github.com/rs/zerolog"
)

type CheckRepository interface {
	ListIDs(ctx context.Context) ([]string, error)
	Get(ctx context.Context, id string) (check.Check, error)
}

type Executor interface {
	Execute(ctx context.Context, c check.Check)
}

// Scheduler probes every stored check once per interval.
type Scheduler struct {
	// lifecycle
	ctx      context.Context
	interval time.Duration
	wg       sync.WaitGroup

	// services
	repo     CheckRepository
	guard    Guard
	executor Executor

	// misc
	logger *zerolog.Logger
}

func NewScheduler(
	ctx context.Context,
	schedulerConfig *config.SchedulerConfig,
	repo CheckRepository,
	guard Guard,
	executor Executor,
	logger *zerolog.Logger,
) *Scheduler {

	return &Scheduler{
		ctx:      ctx,
		interval: schedulerConfig.Interval,
		repo:     repo,
		guard:    guard,
		executor: executor,
		logger:   logger,
	}
}

// Run runs a cycle right away and then one per interval until the context
// is cancelled. Cycles never wait for each other.
func (sc *Scheduler) Run() {
	if sc.interval <= 0 {
		panic("scheduler interval must be > 0")
	}
	sc.logger.Info().Dur("interval", sc.interval).Msg("Scheduler started")
	ticker := time.NewTicker(sc.interval)
	defer func() {
		ticker.Stop()
		sc.logger.Info().Msg("Scheduler stopped")
	}()

	sc.startCycle()

	for {
		select {
		case <-sc.ctx.Done():
			return

		case <-ticker.C:
			sc.startCycle()
		}
	}
}

// Wait blocks until every cycle and every probe they dispatched has finished.
func (sc *Scheduler) Wait() {
	sc.wg.Wait()
}

func (sc *Scheduler) startCycle() {
	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		sc.RunCycle()
	}()
}

// RunCycle loads every check and dispatches a probe for each valid one that
// is not already being probed. It returns the number dispatched.
func (sc *Scheduler) RunCycle() int {
	ids, err := sc.repo.ListIDs(sc.ctx)
	if err != nil {
		sc.logger.Error().Err(err).Msg("failed to list checks")
		return 0
	}
	if len(ids) == 0 {
		sc.logger.Debug().Msg("no checks to process")
		return 0
	}

	dispatched := 0
	for _, id := range ids {
		c, err := sc.repo.Get(sc.ctx, id)
		if err != nil {
			sc.logger.Error().Err(err).Str("check_id", id).Msg("failed to read check")
			continue
		}

		if err := check.Validate(&c); err != nil {
			sc.logger.Warn().Err(err).Str("check_id", id).Msg("skipping invalid check")
			continue
		}

		if sc.dispatch(c) {
			dispatched++
		}
	}

	sc.logger.Info().Int("checks", len(ids)).Int("dispatched", dispatched).Msg("cycle dispatched")
	return dispatched
}

func (sc *Scheduler) dispatch(c check.Check) bool {
	// probes outlive shutdown and end on their own timeout
	probeCtx := context.WithoutCancel(sc.ctx)

	ok, err := sc.guard.TryAcquire(probeCtx, c.ID)
	if err != nil {
		sc.logger.Error().Err(err).Str("check_id", c.ID).Msg("in-flight guard unavailable")
		return false
	}
	if !ok {
		sc.logger.Debug().Str("check_id", c.ID).Msg("probe still in flight, skipped")
		return false
	}

	sc.wg.Add(1)
	go func() {
		defer sc.wg.Done()
		defer sc.guard.Release(probeCtx, c.ID)
		sc.executor.Execute(probeCtx, c)
	}()
	return true
}
