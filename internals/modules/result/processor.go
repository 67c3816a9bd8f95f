package result

import (
	"context"
	"encoding/json"
	"time"

	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/modules/executor"

	"github.com/rs/zerolog"
)

type CheckRepository interface {
	Update(ctx context.Context, c check.Check) error
}

type LogAppender interface {
	Append(id string, line []byte) error
}

type Alerter interface {
	Dispatch(ctx context.Context, c check.Check)
}

// Processor turns probe outcomes into state, log lines and alerts.
type Processor struct {
	repo    CheckRepository
	logs    LogAppender
	alerter Alerter
	now     func() time.Time
	logger  *zerolog.Logger
}

func NewProcessor(repo CheckRepository, logs LogAppender, alerter Alerter, logger *zerolog.Logger) *Processor {
	return &Processor{
		repo:    repo,
		logs:    logs,
		alerter: alerter,
		now:     time.Now,
		logger:  logger,
	}
}

// WithClock replaces the time source.
func (p *Processor) WithClock(now func() time.Time) *Processor {
	p.now = now
	return p
}

// HandleOutcome logs, persists and, on a state change, alerts, in that order.
// A failed log append does not stop the rest; a failed update does.
func (p *Processor) HandleOutcome(ctx context.Context, c check.Check, o executor.Outcome) {
	nowMs := p.now().UnixMilli()
	ev := Evaluate(c, o, nowMs)

	entry := LogEntry{
		Check:   ev.Updated,
		Outcome: o,
		State:   ev.State,
		Alert:   ev.Alert,
		Time:    nowMs,
	}

	if line, err := json.Marshal(entry); err != nil {
		p.logger.Error().Err(err).Str("check_id", c.ID).Msg("failed to encode log entry")
	} else if err := p.logs.Append(c.ID, line); err != nil {
		p.logger.Error().Err(err).Str("check_id", c.ID).Msg("failed to append check log")
	}

	if err := p.repo.Update(ctx, ev.Updated); err != nil {
		p.logger.Error().
			Err(err).
			Str("check_id", c.ID).
			Str("state", string(ev.State)).
			Msg("failed to persist check state")
		return
	}

	if ev.Alert {
		p.logger.Info().
			Str("check_id", c.ID).
			Str("from", string(c.ComparableState())).
			Str("to", string(ev.State)).
			Time("previously_checked", c.LastCheckedAt()).
			Msg("state changed")
		p.alerter.Dispatch(ctx, ev.Updated)
	}
}
