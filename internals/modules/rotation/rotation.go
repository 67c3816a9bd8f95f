package rotation

import (
	"context"
	"sync/atomic"
	"time"

	"uptime-monitor/config"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"
)

type LogFiles interface {
	List(includeArchives bool) ([]string, error)
	Rotate(id string, at time.Time) (string, error)
}

// Rotator periodically archives every active check log and empties it.
type Rotator struct {
	// lifecycle
	ctx      context.Context
	interval time.Duration

	// services
	logs LogFiles

	// misc
	now    func() time.Time
	logger *zerolog.Logger
}

func NewRotator(
	ctx context.Context,
	rotationConfig *config.RotationConfig,
	logs LogFiles,
	logger *zerolog.Logger,
) *Rotator {

	return &Rotator{
		ctx:      ctx,
		interval: rotationConfig.Interval,
		logs:     logs,
		now:      time.Now,
		logger:   logger,
	}
}

// Run rotates right away and then once per interval until the context is
// cancelled.
func (r *Rotator) Run() {
	if r.interval <= 0 {
		panic("rotation interval must be > 0")
	}
	r.logger.Info().Dur("interval", r.interval).Msg("Rotator started")
	ticker := time.NewTicker(r.interval)
	defer func() {
		ticker.Stop()
		r.logger.Info().Msg("Rotator stopped")
	}()

	r.RotateAll(r.now())

	for {
		select {
		case <-r.ctx.Done():
			return

		case <-ticker.C:
			r.RotateAll(r.now())
		}
	}
}

// RotateAll archives every active log concurrently and returns how many
// were rotated. A failing file never stops the others.
func (r *Rotator) RotateAll(now time.Time) int {
	ids, err := r.logs.List(false)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to list check logs")
		return 0
	}
	if len(ids) == 0 {
		r.logger.Debug().Msg("no logs to rotate")
		return 0
	}

	var rotated atomic.Int64
	var wg conc.WaitGroup
	for _, id := range ids {
		wg.Go(func() {
			archiveID, err := r.logs.Rotate(id, now)
			if err != nil {
				r.logger.Error().Err(err).Str("check_id", id).Msg("failed to rotate log")
				return
			}
			rotated.Add(1)
			r.logger.Debug().Str("check_id", id).Str("archive", archiveID).Msg("log rotated")
		})
	}

	// a panicking rotation is reported instead of taking the process down
	if recovered := wg.WaitAndRecover(); recovered != nil {
		r.logger.Error().Str("panic", recovered.String()).Msg("log rotation panicked")
	}

	count := int(rotated.Load())
	r.logger.Info().Int("logs", len(ids)).Int("rotated", count).Msg("rotation finished")
	return count
}
