package result

import (
	"uptime-monitor/internals/modules/check"
	"uptime-monitor/internals/modules/executor"
)

// LogEntry is one line of a check's log file.
type LogEntry struct {
	Check   check.Check      `json:"check"`
	Outcome executor.Outcome `json:"outcome"`
	State   check.State      `json:"state"`
	Alert   bool             `json:"alert"`
	Time    int64            `json:"time"`
}

// Evaluation is the pure part of processing an outcome.
type Evaluation struct {
	Updated check.Check
	State   check.State
	Alert   bool
}

// Evaluate derives the new state of c from o. An alert is warranted only
// when c was probed before and its state changed.
func Evaluate(c check.Check, o executor.Outcome, nowMs int64) Evaluation {
	state := check.StateDown
	if o.Error == nil && c.HasSuccessCode(o.ResponseCode) {
		state = check.StateUp
	}

	alert := c.HasBeenChecked() && state != c.ComparableState()

	updated := c
	updated.State = state
	updated.LastChecked = nowMs

	return Evaluation{Updated: updated, State: state, Alert: alert}
}
