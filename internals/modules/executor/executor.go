package executor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"uptime-monitor/internals/modules/check"
	"uptime-monitor/pkg/httpclient"

	"github.com/rs/zerolog"
)

// OutcomeHandler receives exactly one Outcome per executed probe.
type OutcomeHandler interface {
	HandleOutcome(ctx context.Context, c check.Check, o Outcome)
}

type Executor struct {
	handler    OutcomeHandler
	httpSem    chan struct{}
	httpClient *http.Client
	logger     *zerolog.Logger
}

func NewExecutor(maxConcurrent int, handler OutcomeHandler, logger *zerolog.Logger) *Executor {
	return &Executor{
		handler:    handler,
		httpSem:    make(chan struct{}, maxConcurrent),
		httpClient: httpclient.NewHttpClient(),
		logger:     logger,
	}
}

// Execute probes c and hands the outcome to the handler. It blocks while the
// concurrency limit is reached and returns early, without an outcome, only
// if ctx is cancelled while waiting for a slot.
func (ex *Executor) Execute(ctx context.Context, c check.Check) {
	select {
	case ex.httpSem <- struct{}{}:
	case <-ctx.Done():
		ex.logger.Warn().Str("check_id", c.ID).Msg("probe abandoned while waiting for a slot")
		return
	}
	defer func() { <-ex.httpSem }()

	outcome := ex.Probe(ctx, c)

	ex.logger.Debug().
		Str("check_id", c.ID).
		Int("response_code", outcome.ResponseCode).
		Int64("latency_ms", outcome.LatencyMs).
		Bool("failed", outcome.Error != nil).
		Msg("probe finished")

	ex.handler.HandleOutcome(ctx, c, outcome)
}

// Probe sends one request for c and waits for whichever comes first: the
// response, a transport error, or the check's timeout.
func (ex *Executor) Probe(ctx context.Context, c check.Check) Outcome {
	timeout := time.Duration(c.TimeoutSeconds) * time.Second
	start := time.Now()

	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := buildRequest(reqCtx, c)
	if err != nil {
		return Outcome{Error: &ProbeError{Kind: ErrTransport, Message: err.Error()}}
	}

	responses := make(chan int, 1)
	failures := make(chan error, 1)

	go func() {
		resp, err := ex.httpClient.Do(req)
		if err != nil {
			failures <- err
			return
		}
		// The status line decides the outcome; the body is drained afterwards.
		responses <- resp.StatusCode
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4<<10))
		resp.Body.Close()
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	outcome := Resolve(responses, failures, timer.C)
	outcome.LatencyMs = time.Since(start).Milliseconds()
	return outcome
}

// Resolve commits to the first event among a response code, a transport
// error and the timer. Whatever arrives afterwards is ignored, so a probe
// always yields exactly one Outcome.
func Resolve(responses <-chan int, failures <-chan error, expired <-chan time.Time) Outcome {
	select {
	case code := <-responses:
		return Outcome{ResponseCode: code}
	case err := <-failures:
		return Outcome{Error: classifyError(err)}
	case <-expired:
		return Outcome{Error: &ProbeError{Kind: ErrTimeout, Message: "timeout"}}
	}
}

func buildRequest(ctx context.Context, c check.Check) (*http.Request, error) {
	target, err := url.Parse(c.Target())
	if err != nil {
		return nil, fmt.Errorf("parse target: %w", err)
	}
	if target.Hostname() == "" {
		return nil, fmt.Errorf("parse target: missing host in %q", c.Target())
	}

	return http.NewRequestWithContext(ctx, strings.ToUpper(string(c.Method)), target.String(), nil)
}

func classifyError(err error) *ProbeError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProbeError{Kind: ErrTimeout, Message: "timeout"}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &ProbeError{Kind: ErrTimeout, Message: err.Error()}
	}

	return &ProbeError{Kind: ErrTransport, Message: err.Error()}
}
